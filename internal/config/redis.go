package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// NewRedisClient connects to REDIS_ADDR. It returns nil when redis is not
// configured or does not answer a ping; callers then run without the
// dashboard cache and the portal rate limiter.
func NewRedisClient(cfg *Config, log *logrus.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		log.Info("redis not configured, caching and rate limiting disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", cfg.RedisAddr).Warn("redis unreachable, caching and rate limiting disabled")
		_ = client.Close()
		return nil
	}
	return client
}
