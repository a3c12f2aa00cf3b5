package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	LogLevel   string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string

	JWTSecret            string
	VerificationTokenTTL time.Duration
	SessionTokenTTL      time.Duration

	// AppBaseURL prefixes the verification link sent by email.
	AppBaseURL string
	// VerifyRedirectURL, when set, makes /user/verify redirect instead of answering JSON.
	VerifyRedirectURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	MailFrom     string
	MailQueue    int

	KafkaBrokers []string
	KafkaTopic   string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnv("PORT", "5003"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		MySQLDSN:          getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/workouts?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:           getEnvInt("REDIS_DB", 0),
		RedisPass:         os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AppBaseURL:        strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:5003"), "/"),
		VerifyRedirectURL: os.Getenv("VERIFY_REDIRECT_URL"),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          os.Getenv("EMAIL"),
		SMTPPassword:      os.Getenv("EMAIL_PASSWORD"),
		MailFrom:          getEnv("MAIL_FROM", os.Getenv("EMAIL")),
		MailQueue:         getEnvInt("MAIL_QUEUE_SIZE", 100),
		KafkaBrokers:      splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnv("KAFKA_TOPIC", "workout-events"),
		SwaggerHost:       os.Getenv("SWAGGER_HOST"),
	}

	var err error
	if cfg.VerificationTokenTTL, err = time.ParseDuration(getEnv("VERIFICATION_TOKEN_TTL", "1h")); err != nil {
		return nil, fmt.Errorf("parse VERIFICATION_TOKEN_TTL: %w", err)
	}
	if cfg.SessionTokenTTL, err = time.ParseDuration(getEnv("SESSION_TOKEN_TTL", "1h")); err != nil {
		return nil, fmt.Errorf("parse SESSION_TOKEN_TTL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string
	if len(c.JWTSecret) < 16 {
		errs = append(errs, "JWT_SECRET must be at least 16 chars")
	}
	if c.VerificationTokenTTL <= 0 {
		errs = append(errs, "VERIFICATION_TOKEN_TTL must be > 0")
	}
	if c.SessionTokenTTL <= 0 {
		errs = append(errs, "SESSION_TOKEN_TTL must be > 0")
	}
	if c.SMTPHost != "" && c.MailFrom == "" {
		errs = append(errs, "MAIL_FROM or EMAIL is required when SMTP_HOST is set")
	}
	if c.MailQueue <= 0 {
		errs = append(errs, "MAIL_QUEUE_SIZE must be > 0")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// VerificationLink builds the URL embedded in verification emails.
func (c *Config) VerificationLink(token string) string {
	return c.AppBaseURL + "/user/verify?token=" + token
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func splitCSV(v string) []string {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
