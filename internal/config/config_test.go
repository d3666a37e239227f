package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "stagelink")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "stagelink")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestNew_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Postgres.Host)
	assert.Equal(t, 5432, cfg.Postgres.Port)
	assert.Equal(t, "disable", cfg.Postgres.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 10, cfg.RateLimit.BookingLimit)
	assert.Equal(t, time.Minute, cfg.RateLimit.BookingWindow)
}

func TestNew_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_TOKEN_TTL", "2h")
	t.Setenv("BOOKING_RATE_LIMIT", "5")
	t.Setenv("BOOKING_RATE_WINDOW", "30s")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 5, cfg.RateLimit.BookingLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.BookingWindow)
}

func TestNew_MissingJWTSecret(t *testing.T) {
	t.Setenv("POSTGRES_USER", "stagelink")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "stagelink")
	t.Setenv("JWT_SECRET", "")

	_, err := New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestNew_InvalidPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "not-a-port")

	_, err := New()
	require.Error(t, err)
}
