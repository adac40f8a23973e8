package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures everything the server needs from the environment.
// Backends are optional: an empty Postgres or Redis URL selects the
// in-memory fallback, empty Kafka brokers disable audit publishing.
type Config struct {
	Addr string

	PostgresURL string
	Redis       RedisConfig

	KafkaBrokers []string
	AuditTopic   string

	JWTSigningKey string
	DigestKey     string

	RateLimit RateLimitConfig

	RecentLimit int
}

// RedisConfig holds connection settings for the optional Redis backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// RateLimitConfig controls the per-IP sliding window on the validate
// endpoint.
type RateLimitConfig struct {
	Disabled bool
	Limit    int
	Window   time.Duration
}

// FromEnv builds a Config from SINGATE_* environment variables so main stays
// lean. Defaults favour local development.
func FromEnv() Config {
	cfg := Config{
		Addr:        envOr("SINGATE_ADDR", ":8080"),
		PostgresURL: os.Getenv("SINGATE_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("SINGATE_REDIS_URL"),
			PoolSize:     envInt("SINGATE_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("SINGATE_REDIS_MIN_IDLE", 2),
			DialTimeout:  envDuration("SINGATE_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("SINGATE_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("SINGATE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		AuditTopic:    envOr("SINGATE_AUDIT_TOPIC", "singate.validations"),
		JWTSigningKey: os.Getenv("SINGATE_JWT_SIGNING_KEY"),
		DigestKey:     os.Getenv("SINGATE_DIGEST_KEY"),
		RateLimit: RateLimitConfig{
			Disabled: os.Getenv("SINGATE_RATELIMIT_DISABLED") == "true",
			Limit:    envInt("SINGATE_RATELIMIT_LIMIT", 60),
			Window:   envDuration("SINGATE_RATELIMIT_WINDOW", time.Minute),
		},
		RecentLimit: envInt("SINGATE_RECENT_LIMIT", 100),
	}

	if brokers := os.Getenv("SINGATE_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}

	if cfg.JWTSigningKey == "" {
		// Development default - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
