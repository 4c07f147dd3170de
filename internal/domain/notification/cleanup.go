package notification

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// CleanupService prunes old email log rows.
type CleanupService struct {
	repo *Repository
	log  *logrus.Logger
}

func NewCleanupService(repo *Repository, log *logrus.Logger) *CleanupService {
	return &CleanupService{repo: repo, log: log}
}

// CleanupOldEmailLogs removes log rows older than daysToKeep.
func (c *CleanupService) CleanupOldEmailLogs(ctx context.Context, daysToKeep int) (int64, error) {
	start := time.Now()

	deleted, err := c.repo.DeleteOlderThan(ctx, time.Duration(daysToKeep)*24*time.Hour)
	if err != nil {
		c.log.WithError(err).Error("email log cleanup failed")
		return 0, err
	}

	c.log.WithFields(logrus.Fields{
		"deleted":  deleted,
		"duration": time.Since(start).String(),
	}).Info("email log cleanup completed")
	return deleted, nil
}

// ScheduleCleanup runs the cleanup every interval until ctx is done.
func (c *CleanupService) ScheduleCleanup(ctx context.Context, interval time.Duration, daysToKeep int) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				_, _ = c.CleanupOldEmailLogs(ctx, daysToKeep)
			case <-ctx.Done():
				c.log.Info("email log cleanup stopped")
				return
			}
		}
	}()
	c.log.WithField("interval", interval.String()).Info("email log cleanup scheduled")
}
