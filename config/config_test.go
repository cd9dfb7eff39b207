package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("SESSION_TTL_MINUTES", "")
	t.Setenv("STORE_DRIVER", "")

	cfg := Load()
	if cfg.HTTPAddr != ":8050" {
		t.Errorf("HTTPAddr: got %q, want %q", cfg.HTTPAddr, ":8050")
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL: got %v, want 30m", cfg.SessionTTL)
	}
	if cfg.StoreEnabled() {
		t.Error("store should be disabled by default")
	}
	if cfg.DatasetSource != SourceFile {
		t.Errorf("DatasetSource: got %q, want %q", cfg.DatasetSource, SourceFile)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9000")
	t.Setenv("SESSION_TTL_MINUTES", "5")
	t.Setenv("MAX_RETRIES", "not-a-number")

	cfg := Load()
	if cfg.HTTPAddr != ":9000" {
		t.Errorf("HTTPAddr: got %q, want %q", cfg.HTTPAddr, ":9000")
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("SessionTTL: got %v, want 5m", cfg.SessionTTL)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries: got %d, want fallback 3", cfg.MaxRetries)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		StoreDriver:      "postgres",
		PostgresHost:     "db",
		PostgresPort:     "5432",
		PostgresUser:     "u",
		PostgresPassword: "p",
		PostgresDB:       "launches",
		PostgresSSLMode:  "disable",
	}
	want := "host=db port=5432 user=u password=p dbname=launches sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN: got %q, want %q", got, want)
	}

	cfg.StoreDSN = "postgres://elsewhere/db"
	if got := cfg.DSN(); got != "postgres://elsewhere/db" {
		t.Errorf("explicit STORE_DSN should win, got %q", got)
	}

	sqlite := &Config{StoreDriver: "sqlite", StoreDSN: "launches.db"}
	if got := sqlite.DSN(); got != "launches.db" {
		t.Errorf("sqlite DSN: got %q, want %q", got, "launches.db")
	}
}
