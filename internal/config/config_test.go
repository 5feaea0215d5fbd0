package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != DriverSQLite || cfg.Server.Port != "8080" {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
verifier:
  base_url: http://file.example
  timeout: 5s
storage:
  driver: redis
redis:
  addr: localhost:6379
  prefix: "qc:"
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VERIFY_URL", "http://env.example")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Verifier.BaseURL != "http://env.example" {
		t.Fatalf("expected env override, got %q", cfg.Verifier.BaseURL)
	}
	if cfg.Redis.DB != 2 || cfg.Redis.Prefix != "qc:" || cfg.Storage.Driver != DriverRedis {
		t.Fatalf("unexpected redis config %+v", cfg.Redis)
	}
	if got := TTLDuration(cfg.Verifier.Timeout, time.Minute); got != 5*time.Second {
		t.Fatalf("expected 5s timeout, got %v", got)
	}
	// Untouched defaults survive the file.
	if cfg.Progress.Ceiling != 90 {
		t.Fatalf("expected default ceiling, got %v", cfg.Progress.Ceiling)
	}
}

func TestValidateRejectsBadStorage(t *testing.T) {
	cfg := Default()
	cfg.Storage.Driver = "etcd"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown driver error")
	}

	cfg = Default()
	cfg.Storage.Driver = DriverRedis
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected missing redis addr error")
	}
}

func TestRequireVerifier(t *testing.T) {
	cfg := Default()
	if err := cfg.RequireVerifier(); err == nil {
		t.Fatalf("expected missing verifier error")
	}
	cfg.Verifier.BaseURL = "http://localhost:3000"
	if err := cfg.RequireVerifier(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback for garbage, got %v", got)
	}
}
