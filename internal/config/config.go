package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/krestenlaust/fappen/pkg/config"
)

// Config holds all configuration for the widget service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"FAPPEN_HTTP_PORT" envDefault:"8080"`

	// Stregsystem upstream
	StregsystemAPIURL string `env:"STREGSYSTEM_API_URL" envDefault:"https://stregsystem.fklub.dk/api"`
	RoomID            int    `env:"STREGSYSTEM_ROOM_ID" envDefault:"10"`

	// Redis (session carts)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Session cart TTL in hours
	SessionTTL int `env:"SESSION_TTL_HOURS" envDefault:"6"`

	// Postgres (sale receipt journal)
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"fappen"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"fappen_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"fappen"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Tracing
	TracingEnabled bool   `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := pkgconfig.Load[Config]()
	if err != nil {
		return nil, fmt.Errorf("load fappen config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SessionTTLDuration returns the session TTL as a duration.
func (c *Config) SessionTTLDuration() time.Duration {
	return time.Duration(c.SessionTTL) * time.Hour
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.StregsystemAPIURL == "" {
		return fmt.Errorf("STREGSYSTEM_API_URL is required")
	}
	if c.RoomID < 0 {
		return fmt.Errorf("invalid room id: %d", c.RoomID)
	}
	if c.SessionTTL < 1 {
		return fmt.Errorf("session TTL must be at least 1 hour, got %d", c.SessionTTL)
	}
	return nil
}
