package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr          = ":8080"
	defaultDatabaseURL       = "hotelpms.db"
	defaultJWTAccessTTL      = "12h"
	defaultJWTSecret         = "change-me-jwt-secret"
	defaultNotifyQueue       = "booking_events"
	defaultDashboardCacheTTL = "60s"
	defaultRateLimitCapacity = "30"
	defaultRateLimitInterval = "2s"
	defaultSMTPPort          = "587"
	defaultNoShowGraceDays   = "1"
	defaultEmailLogRetention = "90"
	defaultLogLevel          = "info"
)

type Config struct {
	AppEnv   string
	HTTPAddr string
	LogLevel string

	DatabaseURL string

	JWTSecret    string
	JWTAccessTTL time.Duration

	RabbitMQURL string
	NotifyQueue string

	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	DashboardCacheTTL time.Duration

	RateLimitEnabled  bool
	RateLimitCapacity int
	// one token is added back every RateLimitInterval
	RateLimitInterval time.Duration

	SMTP SMTPConfig

	CORSAllowedOrigins []string
	NoShowGraceDays    int

	// days of email log kept by the notifier worker
	EmailLogRetentionDays int
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" }

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from the current environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))
	cfg.RabbitMQURL = strings.TrimSpace(os.Getenv("RABBITMQ_URL"))
	cfg.NotifyQueue = strings.TrimSpace(getEnv("NOTIFY_QUEUE", defaultNotifyQueue))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RateLimitEnabled = parseBoolEnv("RATE_LIMIT_ENABLED", "true")
	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))

	cfg.SMTP = SMTPConfig{
		Host:     strings.TrimSpace(os.Getenv("SMTP_HOST")),
		User:     strings.TrimSpace(os.Getenv("SMTP_USER")),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     strings.TrimSpace(getEnv("SMTP_FROM", "reservas@hotelpms.local")),
	}

	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL); err != nil {
		return nil, err
	}
	if cfg.DashboardCacheTTL, err = parseDurationEnv("DASHBOARD_CACHE_TTL", defaultDashboardCacheTTL); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", "0"); err != nil {
		return nil, err
	}
	if cfg.RateLimitCapacity, err = parseIntEnv("RATE_LIMIT_CAPACITY", defaultRateLimitCapacity); err != nil {
		return nil, err
	}
	if cfg.RateLimitInterval, err = parseDurationEnv("RATE_LIMIT_REFILL_INTERVAL", defaultRateLimitInterval); err != nil {
		return nil, err
	}
	if cfg.SMTP.Port, err = parseIntEnv("SMTP_PORT", defaultSMTPPort); err != nil {
		return nil, err
	}
	if cfg.NoShowGraceDays, err = parseIntEnv("NOSHOW_GRACE_DAYS", defaultNoShowGraceDays); err != nil {
		return nil, err
	}

	if cfg.EmailLogRetentionDays, err = parseIntEnv("EMAIL_LOG_RETENTION_DAYS", defaultEmailLogRetention); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWTAccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be > 0")
	}
	if cfg.DashboardCacheTTL < 0 {
		return fmt.Errorf("DASHBOARD_CACHE_TTL must be >= 0")
	}
	if cfg.RateLimitCapacity <= 0 {
		return fmt.Errorf("RATE_LIMIT_CAPACITY must be > 0")
	}
	if cfg.RateLimitInterval <= 0 {
		return fmt.Errorf("RATE_LIMIT_REFILL_INTERVAL must be > 0")
	}
	if cfg.NoShowGraceDays < 0 {
		return fmt.Errorf("NOSHOW_GRACE_DAYS must be >= 0")
	}
	if cfg.EmailLogRetentionDays < 1 {
		return fmt.Errorf("EMAIL_LOG_RETENTION_DAYS must be >= 1")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	if isProdLike(cfg.AppEnv) {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.RabbitMQURL == "" {
			return fmt.Errorf("in prod/release RABBITMQ_URL must be set")
		}
	}

	return nil
}

func (c *Config) IsProd() bool { return isProdLike(c.AppEnv) }

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
