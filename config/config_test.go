package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	data := []byte(`
server:
  port: 3000
  frontendOrigin: http://localhost:5173
database:
  uri: mongodb://localhost:27017/tech-mastery
session:
  secret: s3cret
  ttl: 24h
redis:
  addr: localhost:6379
sandbox:
  wallTime: 5s
  memoryMb: 128
  maxOutputBytes: 1024
`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("unexpected port: %d", cfg.Server.Port)
	}
	if cfg.Database.URI != "mongodb://localhost:27017/tech-mastery" {
		t.Errorf("unexpected database uri: %s", cfg.Database.URI)
	}
	if cfg.Session.Secret != "s3cret" || cfg.Session.TTL != "24h" {
		t.Errorf("unexpected session config: %+v", cfg.Session)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unexpected redis addr: %s", cfg.Redis.Addr)
	}
	if cfg.Sandbox.MemoryMB != 128 || cfg.Sandbox.MaxOutputBytes != 1024 {
		t.Errorf("unexpected sandbox config: %+v", cfg.Sandbox)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDuration(t *testing.T) {
	if got := Duration("", time.Minute); got != time.Minute {
		t.Errorf("empty string should fall back, got %v", got)
	}
	if got := Duration("10s", time.Minute); got != 10*time.Second {
		t.Errorf("expected 10s, got %v", got)
	}
	if got := Duration("not-a-duration", time.Minute); got != time.Minute {
		t.Errorf("invalid string should fall back, got %v", got)
	}
}
