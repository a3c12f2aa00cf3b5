package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("APP_BASE_URL", "https://gym.example.com/")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5003", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.VerificationTokenTTL)
	assert.Equal(t, time.Hour, cfg.SessionTokenTTL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "https://gym.example.com/user/verify?token=abc", cfg.VerificationLink("abc"))
}

func TestLoad_RejectsMissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("SESSION_TOKEN_TTL", "forever")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_TOKEN_TTL")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{SMTPHost: "smtp.example.com"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.Contains(t, err.Error(), "MAIL_FROM")
	assert.Contains(t, err.Error(), "MAIL_QUEUE_SIZE")
}
