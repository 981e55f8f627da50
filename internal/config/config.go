package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Config holds the configuration for the peerstore engine and CLI.
// Environment variables are parsed from the PEERSTORE_ prefix, e.g.
// PEERSTORE_MEDIUM_DRIVER, PEERSTORE_REDIS_ADDR.
type Config struct {
	// MediumDriver selects the key-value substrate: mem, sqlite or redis.
	MediumDriver string `envconfig:"MEDIUM_DRIVER" default:"sqlite"`

	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string `envconfig:"SQLITE_PATH" default:"peerstore.db"`

	// Redis connection for the redis driver.
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// QuotaBytes caps the mem driver's total storage. Zero means
	// unlimited. Other drivers ignore it.
	QuotaBytes int `envconfig:"QUOTA_BYTES" default:"0"`

	// EventBuffer sizes the in-process mutation bus.
	EventBuffer int `envconfig:"EVENT_BUFFER" default:"16"`

	// ProductAPIURL is the base URL of the upstream product/community
	// service (read-only, never persisted through the engine).
	ProductAPIURL string `envconfig:"PRODUCT_API_URL" default:"http://localhost:8080"`

	// LogLevel is a zerolog level name (debug, info, warn, ...).
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// ResolveDefaults validates the driver selection.
func (c *Config) ResolveDefaults() error {
	allowed := map[string]bool{"mem": true, "sqlite": true, "redis": true}
	if !allowed[c.MediumDriver] {
		return fmt.Errorf("unsupported MEDIUM_DRIVER: %s", c.MediumDriver)
	}
	if c.MediumDriver == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("PEERSTORE_SQLITE_PATH is required when MEDIUM_DRIVER=sqlite")
	}
	return nil
}

// New creates a new Config by parsing PEERSTORE_-prefixed environment
// variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("PEERSTORE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("medium_driver", cfg.MediumDriver).
		Str("sqlite_path", cfg.SQLitePath).
		Str("redis_addr", cfg.RedisAddr).
		Int("quota_bytes", cfg.QuotaBytes).
		Str("product_api_url", cfg.ProductAPIURL).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config wired to the in-process medium.
func NewForTesting() *Config {
	return &Config{
		MediumDriver: "mem",
		EventBuffer:  16,
	}
}
