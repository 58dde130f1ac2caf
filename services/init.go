package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/openfunnel/mailtriage/config"
	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/logger"
	"github.com/openfunnel/mailtriage/internal/repository"
	"github.com/openfunnel/mailtriage/services/ai"
	"github.com/openfunnel/mailtriage/services/events"
	"github.com/openfunnel/mailtriage/services/gmail"
	"github.com/openfunnel/mailtriage/services/imapbox"
	"github.com/openfunnel/mailtriage/services/triage"
)

type Services struct {
	MailboxService interfaces.MailboxService
	AIService      interfaces.AIService
	EventPublisher interfaces.EventPublisher
	TriageService  interfaces.TriageService
}

func InitServices(ctx context.Context, cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	mailbox, err := initMailbox(ctx, cfg.MailboxConfig)
	if err != nil {
		return nil, err
	}

	var publisher interfaces.EventPublisher
	if cfg.AppConfig.RabbitMQURL != "" {
		publisher, err = events.NewRabbitMQPublisher(cfg.AppConfig.RabbitMQURL, log)
		if err != nil {
			return nil, err
		}
	} else {
		publisher = events.NewNoopPublisher()
	}

	aiService := ai.NewAIService(cfg.AIConfig)
	selector := triage.NewStaticSelector(enum.DecodeReplyVariant(cfg.TriageConfig.DefaultReplyChoice), "")

	services := Services{
		MailboxService: mailbox,
		AIService:      aiService,
		EventPublisher: publisher,
		TriageService:  triage.NewTriageService(cfg.TriageConfig, log, mailbox, aiService, repos, publisher, selector),
	}

	return &services, nil
}

func initMailbox(ctx context.Context, cfg *config.MailboxConfig) (interfaces.MailboxService, error) {
	switch cfg.Provider {
	case enum.MailboxProviderGmail:
		return gmail.NewGmailService(ctx, cfg)
	case enum.MailboxProviderIMAP:
		return imapbox.NewIMAPService(cfg), nil
	default:
		return nil, errors.Errorf("unsupported mailbox provider %q", cfg.Provider)
	}
}
