package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/openfunnel/mailtriage/config"
	"github.com/openfunnel/mailtriage/internal/database"
	"github.com/openfunnel/mailtriage/internal/repository"
	"github.com/openfunnel/mailtriage/server"
	"github.com/openfunnel/mailtriage/services/gmail"
)

func main() {
	app := &cli.App{
		Name:  "mailtriage",
		Usage: "Unattended mailbox triage service",
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(c *cli.Context) error {
					cfg := mustConfig()
					db := mustDatabase(cfg)

					if err := repository.MigrateDB(db); err != nil {
						log.Fatalf("Database migration failed: %v", err)
					}
					log.Println("Database migration completed successfully")
					return nil
				},
			},
			{
				Name:  "server",
				Usage: "Start the application server",
				Action: func(c *cli.Context) error {
					cfg := mustConfig()
					db := mustDatabase(cfg)

					log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
					log.Println("MailTriage starting up...")

					srv, err := server.NewServer(cfg, db)
					if err != nil {
						log.Fatalf("Server setup failed: %v", err)
					}

					if err := srv.Run(); err != nil {
						log.Fatalf("Server startup failed: %v", err)
					}

					log.Println("Shutdown complete")
					return nil
				},
			},
			{
				Name:  "auth",
				Usage: "Run the interactive Gmail OAuth flow and store the token",
				Action: func(c *cli.Context) error {
					cfg := mustConfig()

					if err := gmail.Authorize(context.Background(), cfg.MailboxConfig); err != nil {
						log.Fatalf("Gmail authorization failed: %v", err)
					}
					log.Println("Gmail authorization completed successfully")
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func mustConfig() *config.Config {
	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("Config initialization failed: %v", err)
	}
	if cfg == nil {
		log.Fatalf("config is empty")
	}
	return cfg
}

func mustDatabase(cfg *config.Config) *gorm.DB {
	db, err := database.NewConnection(&database.DatabaseConfig{
		DBName:          cfg.DatabaseConfig.DBName,
		Host:            cfg.DatabaseConfig.Host,
		Port:            cfg.DatabaseConfig.Port,
		User:            cfg.DatabaseConfig.User,
		Password:        cfg.DatabaseConfig.Password,
		MaxConn:         cfg.DatabaseConfig.MaxConn,
		MaxIdleConn:     cfg.DatabaseConfig.MaxIdleConn,
		ConnMaxLifetime: cfg.DatabaseConfig.ConnMaxLifetime,
		LogLevel:        cfg.DatabaseConfig.LogLevel,
		SSLMode:         cfg.DatabaseConfig.SSLMode,
	})
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	return db
}
