// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting. Values come from environment variables,
// optionally seeded from a .env file during development.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	DatabaseURL     string        `envconfig:"DATABASE_URL" required:"true"`
	DefaultPageSize int           `envconfig:"DEFAULT_PAGE_SIZE" default:"50"`
	MaxPageSize     int           `envconfig:"MAX_PAGE_SIZE" default:"100"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads configuration from the environment. A missing .env file is not
// an error; a missing DATABASE_URL is.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env config: %w", err)
	}
	if cfg.DefaultPageSize < 1 || cfg.MaxPageSize < cfg.DefaultPageSize {
		return Config{}, fmt.Errorf("invalid page size limits: default=%d max=%d", cfg.DefaultPageSize, cfg.MaxPageSize)
	}
	return cfg, nil
}
