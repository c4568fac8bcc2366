package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("WRITE_TIMEOUT", "")
	t.Setenv("AUDIT_RETENTION_DAYS", "")
	t.Setenv("BULK_WORKERS", "")

	cfg := Load()
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.DatabasePath != "campuslog.db" {
		t.Fatalf("expected default database path, got %q", cfg.DatabasePath)
	}
	if cfg.GinMode != "release" {
		t.Fatalf("expected release mode, got %q", cfg.GinMode)
	}
	if cfg.WriteTimeout != 5*time.Second {
		t.Fatalf("expected 5s write timeout, got %v", cfg.WriteTimeout)
	}
	if cfg.AuditRetentionDays != 180 {
		t.Fatalf("expected 180 retention days, got %d", cfg.AuditRetentionDays)
	}
	if cfg.BulkWorkers != 4 {
		t.Fatalf("expected 4 bulk workers, got %d", cfg.BulkWorkers)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("WRITE_TIMEOUT", "2s")
	t.Setenv("AUDIT_RETENTION_DAYS", "30")
	t.Setenv("BULK_WORKERS", "8")

	cfg := Load()
	if cfg.ListenAddr != "127.0.0.1:9000" {
		t.Fatalf("expected overridden listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.WriteTimeout != 2*time.Second {
		t.Fatalf("expected 2s write timeout, got %v", cfg.WriteTimeout)
	}
	if cfg.AuditRetentionDays != 30 {
		t.Fatalf("expected 30 retention days, got %d", cfg.AuditRetentionDays)
	}
	if cfg.BulkWorkers != 8 {
		t.Fatalf("expected 8 bulk workers, got %d", cfg.BulkWorkers)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("WRITE_TIMEOUT", "soon")
	t.Setenv("AUDIT_RETENTION_DAYS", "-1")
	t.Setenv("BULK_WORKERS", "zero")

	cfg := Load()
	if cfg.WriteTimeout != 5*time.Second {
		t.Fatalf("expected fallback write timeout, got %v", cfg.WriteTimeout)
	}
	if cfg.AuditRetentionDays != 180 {
		t.Fatalf("expected fallback retention days, got %d", cfg.AuditRetentionDays)
	}
	if cfg.BulkWorkers != 4 {
		t.Fatalf("expected fallback bulk workers, got %d", cfg.BulkWorkers)
	}
}
