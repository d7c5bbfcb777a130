// Package config loads application configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	ActorID  string

	// Database. When DatabaseURL is empty the application falls back to a
	// local SQLite database at SQLitePath.
	DatabaseURL string
	SQLitePath  string

	// Redis
	RedisURL        string
	AvailabilityTTL time.Duration
	CacheEnabled    bool

	// RabbitMQ
	RabbitMQURL string

	// Outbox
	OutboxPollInterval     time.Duration
	OutboxBatchSize        int
	OutboxMaxRetries       int
	OutboxStatsInterval    time.Duration
	OutboxRetentionDays    int
	OutboxCleanupInterval  time.Duration
	OutboxProcessorEnabled bool

	// Publisher circuit breaker
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration

	// Worker
	WorkerQueueName string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		ActorID:  getEnv("RANDEVU_ACTOR_ID", "00000000-0000-0000-0000-000000000001"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("RANDEVU_SQLITE_PATH", "randevu.db"),

		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379/0"),
		AvailabilityTTL: getDurationEnv("AVAILABILITY_CACHE_TTL", 30*time.Second),
		CacheEnabled:    getBoolEnv("CACHE_ENABLED", false),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		OutboxPollInterval:     getDurationEnv("OUTBOX_POLL_INTERVAL", 100*time.Millisecond),
		OutboxBatchSize:        getIntEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:       getIntEnv("OUTBOX_MAX_RETRIES", 5),
		OutboxStatsInterval:    getDurationEnv("OUTBOX_STATS_INTERVAL", 30*time.Second),
		OutboxRetentionDays:    getIntEnv("OUTBOX_RETENTION_DAYS", 14),
		OutboxCleanupInterval:  getDurationEnv("OUTBOX_CLEANUP_INTERVAL", 24*time.Hour),
		OutboxProcessorEnabled: getBoolEnv("OUTBOX_PROCESSOR_ENABLED", true),

		BreakerMaxFailures: uint32(getIntEnv("PUBLISHER_BREAKER_MAX_FAILURES", 5)),
		BreakerOpenTimeout: getDurationEnv("PUBLISHER_BREAKER_OPEN_TIMEOUT", 30*time.Second),

		WorkerQueueName: getEnv("WORKER_QUEUE_NAME", "randevu.consumer"),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsePostgres reports whether a PostgreSQL connection string is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

// UseBroker reports whether a RabbitMQ connection string is configured.
func (c *Config) UseBroker() bool {
	return c.RabbitMQURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
