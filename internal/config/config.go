package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	RawLogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	RedisURL    string `env:"REDIS_URL" envDefault:"localhost:6379"`
	DataDir     string `env:"DATA_DIR" envDefault:"./data"`
	Catalog     string `env:"CATALOG" envDefault:"base"`
	// IngestWorkers is how many queue workers the API runs; 0 disables the feed.
	IngestWorkers int `env:"INGEST_WORKERS" envDefault:"2"`

	LogLevel slog.Level
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.IngestWorkers < 0 {
		return nil, fmt.Errorf("INGEST_WORKERS must not be negative, got %d", cfg.IngestWorkers)
	}
	cfg.LogLevel = parseLogLevel(cfg.RawLogLevel)
	return &cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
