package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.PostgresURL)
	assert.Empty(t, cfg.Redis.URL)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "singate.validations", cfg.AuditTopic)
	assert.NotEmpty(t, cfg.JWTSigningKey)
	assert.Equal(t, 60, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.False(t, cfg.RateLimit.Disabled)
	assert.Equal(t, 100, cfg.RecentLimit)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("SINGATE_ADDR", ":9999")
	t.Setenv("SINGATE_KAFKA_BROKERS", "broker-1:9092, broker-2:9092,")
	t.Setenv("SINGATE_RATELIMIT_LIMIT", "5")
	t.Setenv("SINGATE_RATELIMIT_WINDOW", "30s")
	t.Setenv("SINGATE_RATELIMIT_DISABLED", "true")
	t.Setenv("SINGATE_JWT_SIGNING_KEY", "prod-key")

	cfg := FromEnv()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5, cfg.RateLimit.Limit)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.True(t, cfg.RateLimit.Disabled)
	assert.Equal(t, "prod-key", cfg.JWTSigningKey)
}

func TestFromEnv_BadNumbersFallBack(t *testing.T) {
	t.Setenv("SINGATE_RATELIMIT_LIMIT", "not-a-number")
	t.Setenv("SINGATE_RATELIMIT_WINDOW", "soon")

	cfg := FromEnv()

	assert.Equal(t, 60, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}
