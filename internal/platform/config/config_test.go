package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ADDR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8000" || cfg.MongoDatabase != "assessment_db" || cfg.EmployeeCollection != "employees" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.AccessTokenTTL() != 30*time.Minute {
		t.Fatalf("unexpected token ttl %v", cfg.AccessTokenTTL())
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing JWT_SECRET to fail validation")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "addr: \":9000\"\nmongo_db: from_file\nmongo_timeout: 3s\njwt_secret: file-secret\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_ADDR", ":7000")
	t.Setenv("MONGO_DB", "")
	t.Setenv("MONGO_TIMEOUT", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Fatalf("env must override file, got %q", cfg.Addr)
	}
	if cfg.MongoDatabase != "from_file" || cfg.MongoTimeout != 3*time.Second || cfg.JWTSecret != "file-secret" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestLoadRejectsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("addr: [unclosed"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	base := defaults()
	base.JWTSecret = "secret"

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"small body limit", func(c *Config) { c.MaxBodyBytes = 10 }},
		{"zero token ttl", func(c *Config) { c.AccessTokenExpireMinutes = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"short production secret", func(c *Config) { c.Environment = "production" }},
	}
	for _, tc := range tests {
		cfg := base
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation error", tc.name)
		}
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("expected base config to be valid, got %v", err)
	}
}
