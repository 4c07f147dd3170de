package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"hotelpms/internal/config"
	"hotelpms/internal/database"
	"hotelpms/internal/domain/booking"
	"hotelpms/internal/pkg/logger"
)

// noshow_sweep marks confirmed bookings whose guest never arrived. Run it once
// a day from cron.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	svc := booking.NewService(booking.NewRepository(db), nil, log)
	marked, err := svc.MarkNoShows(ctx, cfg.NoShowGraceDays)
	if err != nil {
		log.WithError(err).WithField("marked", marked).Fatal("no-show sweep failed")
	}

	log.WithFields(logrus.Fields{
		"marked":     marked,
		"grace_days": cfg.NoShowGraceDays,
	}).Info("no-show sweep completed")
}
