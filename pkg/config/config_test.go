package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8090" {
		t.Errorf("Port = %s, want 8090", cfg.Port)
	}
	if cfg.Ingest.Workers != 4 {
		t.Errorf("Ingest.Workers = %d, want 4", cfg.Ingest.Workers)
	}
	if cfg.Ingest.MaxRetries != 2 {
		t.Errorf("Ingest.MaxRetries = %d, want 2", cfg.Ingest.MaxRetries)
	}
	if cfg.Ingest.Timeout != 15*time.Second {
		t.Errorf("Ingest.Timeout = %s, want 15s", cfg.Ingest.Timeout)
	}
	if cfg.Database.Enabled {
		t.Error("Database.Enabled should default to false without DATABASE_URL")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("INGEST_WORKERS", "8")
	t.Setenv("INGEST_TIMEOUT", "30s")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/screener")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Ingest.Workers != 8 {
		t.Errorf("Ingest.Workers = %d, want 8", cfg.Ingest.Workers)
	}
	if cfg.Ingest.Timeout != 30*time.Second {
		t.Errorf("Ingest.Timeout = %s, want 30s", cfg.Ingest.Timeout)
	}
	if !cfg.Database.Enabled {
		t.Error("Database.Enabled should be true when DATABASE_URL is set")
	}
}

func TestLoad_InvalidWorkers(t *testing.T) {
	t.Setenv("INGEST_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail with INGEST_WORKERS=0")
	}
}

func TestGetEnvAsDuration_Fallback(t *testing.T) {
	t.Setenv("TEST_DURATION", "not-a-duration")

	got := getEnvAsDuration("TEST_DURATION", "5s")
	if got != 5*time.Second {
		t.Errorf("getEnvAsDuration fallback = %s, want 5s", got)
	}
}
