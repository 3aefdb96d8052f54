// Package config builds process configuration from the environment so main
// stays lean. Every knob has a development default; production deployments
// override through the environment.
package config

import (
	"os"
	"strings"
	"time"

	platformstrings "courze/pkg/platform/strings"
)

// Config captures everything the server process needs to wire itself.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string

	// DatabaseURL is the PostgreSQL connection string. Empty selects the
	// in-memory stores (useful for local development and tests).
	DatabaseURL string

	// RedisURL enables the course cache and the payout retry queue when set.
	RedisURL string

	// KafkaBrokers enables the ledger event stream when non-empty.
	KafkaBrokers []string

	// JWTSigningKey verifies principal bearer tokens.
	JWTSigningKey string

	// CourseCacheTTL bounds memory held by the immutable-course cache.
	CourseCacheTTL time.Duration

	// ShutdownTimeout caps graceful shutdown.
	ShutdownTimeout time.Duration
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	cfg := Config{
		Addr:            envOr("COURZE_ADDR", ":8080"),
		DatabaseURL:     os.Getenv("COURZE_DATABASE_URL"),
		RedisURL:        os.Getenv("COURZE_REDIS_URL"),
		JWTSigningKey:   envOr("COURZE_JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		CourseCacheTTL:  durationOr("COURZE_COURSE_CACHE_TTL", time.Hour),
		ShutdownTimeout: durationOr("COURZE_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
	if brokers := os.Getenv("COURZE_KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = platformstrings.DedupeAndTrim(strings.Split(brokers, ","))
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
