package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"hotelpms/internal/config"
	"hotelpms/internal/database"
	"hotelpms/internal/domain/notification"
	"hotelpms/internal/pkg/logger"
)

const cleanupInterval = 24 * time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	if cfg.RabbitMQURL == "" {
		log.Fatal("RABBITMQ_URL is required")
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("db migrate failed")
	}

	var mailer notification.Mailer
	if cfg.SMTP.Enabled() {
		mailer = notification.NewSMTPMailer(cfg.SMTP)
		log.WithField("host", cfg.SMTP.Host).Info("sending email over SMTP")
	} else {
		mailer = notification.NewLogMailer(log)
		log.Warn("SMTP_HOST not set, emails are only logged")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo := notification.NewRepository(db)

	cleanup := notification.NewCleanupService(repo, log)
	if _, err := cleanup.CleanupOldEmailLogs(ctx, cfg.EmailLogRetentionDays); err != nil {
		log.WithError(err).Warn("initial email log cleanup failed")
	}
	cleanup.ScheduleCleanup(ctx, cleanupInterval, cfg.EmailLogRetentionDays)

	worker := notification.NewWorker(repo, mailer, log)
	consumer := notification.NewConsumer(cfg.RabbitMQURL, cfg.NotifyQueue, worker.Handle, log)

	log.WithField("queue", cfg.NotifyQueue).Info("notifier started")
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("consumer stopped")
	}
	log.Info("notifier stopped")
}
