package config

import (
	"log/slog"
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENVIRONMENT", "LOG_LEVEL", "REDIS_URL", "DATA_DIR", "CATALOG", "INGEST_WORKERS"} {
		t.Setenv(key, "") // restores the value after the test
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.Catalog != "base" {
		t.Errorf("Expected catalog base, got %s", cfg.Catalog)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("Expected info level, got %v", cfg.LogLevel)
	}
	if cfg.IngestWorkers != 2 {
		t.Errorf("Expected 2 ingest workers, got %d", cfg.IngestWorkers)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("DATA_DIR", "/srv/data")
	t.Setenv("CATALOG", "mother-of-dragons")
	t.Setenv("INGEST_WORKERS", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" || cfg.Environment != "production" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.RedisURL != "redis://cache:6379/1" || cfg.DataDir != "/srv/data" || cfg.Catalog != "mother-of-dragons" {
		t.Errorf("Unexpected config %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelWarn {
		t.Errorf("Expected warn level, got %v", cfg.LogLevel)
	}
	if cfg.IngestWorkers != 0 {
		t.Errorf("Expected feed disabled, got %d workers", cfg.IngestWorkers)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"not a number": "many",
		"negative":     "-1",
	}
	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("INGEST_WORKERS", value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected an error for INGEST_WORKERS=%q", value)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
