package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored: %v", err)
	}
	if cfg.Courses.System != nil || cfg.Store.Path != nil || cfg.Log.Level != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[courses]
system = "points"
credits = "0.5"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Courses.System == nil || *cfg.Courses.System != "points" {
		t.Fatalf("unexpected system: %v", cfg.Courses.System)
	}
	if cfg.Courses.Credits == nil || *cfg.Courses.Credits != "0.5" {
		t.Fatalf("unexpected credits: %v", cfg.Courses.Credits)
	}
	if cfg.Log.Level == nil || *cfg.Log.Level != "debug" {
		t.Fatalf("unexpected log level: %v", cfg.Log.Level)
	}
	if cfg.Log.Format != nil || cfg.Store.Path != nil {
		t.Fatalf("expected unset values to stay nil")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[courses]\nsytem = \"points\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected unknown key error")
	}
}

func TestApplyEnvOverridesFile(t *testing.T) {
	t.Setenv(EnvDBPath, "/tmp/other.db")
	t.Setenv(EnvLogFormat, "")
	file := "json"
	cfg := FileConfig{Log: LogConfig{Format: &file}}
	ApplyEnv(&cfg)
	if cfg.Store.Path == nil || *cfg.Store.Path != "/tmp/other.db" {
		t.Fatalf("expected env db path, got %v", cfg.Store.Path)
	}
	if cfg.Log.Format == nil || *cfg.Log.Format != "json" {
		t.Fatalf("expected empty env var to keep file value")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
		t.Fatalf("expected missing .env to be ignored: %v", err)
	}
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(EnvLogLevel+"=warn\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv(EnvLogLevel, "")
	if err := os.Unsetenv(EnvLogLevel); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv(EnvLogLevel); got != "warn" {
		t.Fatalf("expected warn from .env, got %q", got)
	}
}
