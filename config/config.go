package config

import (
	"time"

	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/logger"
	"github.com/openfunnel/mailtriage/internal/tracing"
)

type AppConfig struct {
	APIPort     string `env:"PORT" envDefault:"11333"`
	APIKey      string `env:"API_KEY,required"`
	RabbitMQURL string `env:"RABBITMQ_URL"`
	Logger      *logger.Config
	Tracing     *tracing.JaegerConfig
}

type DatabaseConfig struct {
	Host            string `env:"TRIAGE_POSTGRES_HOST,required"`
	Port            string `env:"TRIAGE_POSTGRES_PORT,required"`
	User            string `env:"TRIAGE_POSTGRES_USER,required"`
	DBName          string `env:"TRIAGE_POSTGRES_DB_NAME,required"`
	Password        string `env:"TRIAGE_POSTGRES_PASSWORD,required"`
	MaxConn         int    `env:"TRIAGE_POSTGRES_DB_MAX_CONN"`
	MaxIdleConn     int    `env:"TRIAGE_POSTGRES_DB_MAX_IDLE_CONN"`
	ConnMaxLifetime int    `env:"TRIAGE_POSTGRES_DB_CONN_MAX_LIFETIME"`
	LogLevel        string `env:"TRIAGE_POSTGRES_LOG_LEVEL" envDefault:"WARN"`
	SSLMode         string `env:"TRIAGE_POSTGRES_SSL_MODE" envDefault:"require"`
}

type MailboxConfig struct {
	Provider enum.MailboxProvider `env:"MAILBOX_PROVIDER" envDefault:"gmail"`

	// Gmail provider
	GmailCredentialsFile string `env:"GMAIL_CREDENTIALS_FILE" envDefault:"credentials.json"`
	GmailTokenFile       string `env:"GMAIL_TOKEN_FILE" envDefault:"token.json"`

	// Generic IMAP/SMTP provider
	ImapServer   string `env:"IMAP_SERVER"`
	ImapPort     int    `env:"IMAP_PORT" envDefault:"993"`
	ImapUsername string `env:"IMAP_USERNAME"`
	ImapPassword string `env:"IMAP_PASSWORD"`
	ImapFolder   string `env:"IMAP_FOLDER" envDefault:"INBOX"`
	ImapTLS      bool   `env:"IMAP_TLS" envDefault:"true"`
	SmtpServer   string `env:"SMTP_SERVER"`
	SmtpPort     int    `env:"SMTP_PORT" envDefault:"587"`
	FromAddress  string `env:"SMTP_FROM_ADDRESS"`
}

type AIConfig struct {
	Url     string `env:"AI_API_URL,required"`
	ApiKey  string `env:"AI_API_KEY"`
	Model   string `env:"AI_MODEL" envDefault:"gemini-1.5-pro-latest"`
	Timeout int    `env:"AI_TIMEOUT_SECONDS" envDefault:"60"`
}

type TriageConfig struct {
	PollInterval       time.Duration `env:"TRIAGE_POLL_INTERVAL" envDefault:"30s"`
	FollowupStaleness  time.Duration `env:"TRIAGE_FOLLOWUP_STALENESS" envDefault:"72h"`
	DefaultReplyChoice string        `env:"TRIAGE_DEFAULT_REPLY_VARIANT" envDefault:"short"`
	CompanyName        string        `env:"TRIAGE_COMPANY_NAME" envDefault:"Our Company"`
	SenderName         string        `env:"TRIAGE_SENDER_NAME" envDefault:"The Team"`
	Industry           string        `env:"TRIAGE_COMPANY_INDUSTRY" envDefault:"our industry"`
}
