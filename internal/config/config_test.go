package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/nyaya/internal/analyzer"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Endpoint != analyzer.DefaultEndpoint {
		t.Errorf("expected default endpoint, got %q", cfg.Endpoint)
	}
	if cfg.Timeout != 0 {
		t.Errorf("expected no timeout, got %v", cfg.Timeout)
	}
	if cfg.Lang != "en" {
		t.Errorf("expected lang 'en', got %q", cfg.Lang)
	}
	if cfg.History.DB != "" {
		t.Errorf("expected history disabled, got %q", cfg.History.DB)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected log level 'info', got %q", cfg.Log.Level)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
endpoint: http://api.example.test/api/v1/analyze
timeout: 45s
lang: ta
history:
  db: /tmp/nyaya.db
log:
  level: debug
`)

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Endpoint != "http://api.example.test/api/v1/analyze" {
		t.Errorf("unexpected endpoint %q", cfg.Endpoint)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("expected 45s, got %v", cfg.Timeout)
	}
	if cfg.Lang != "ta" {
		t.Errorf("expected 'ta', got %q", cfg.Lang)
	}
	if cfg.History.DB != "/tmp/nyaya.db" {
		t.Errorf("unexpected history db %q", cfg.History.DB)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected 'debug', got %q", cfg.Log.Level)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "lang: ta\nhistory:\n  db: from-file.db\n")
	t.Setenv("NYAYA_LANG", "bn")
	t.Setenv("NYAYA_HISTORY_DB", "from-env.db")

	cfg, err := Load(viper.New(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Lang != "bn" {
		t.Errorf("expected env lang 'bn', got %q", cfg.Lang)
	}
	if cfg.History.DB != "from-env.db" {
		t.Errorf("expected env history db, got %q", cfg.History.DB)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoad_NegativeTimeout(t *testing.T) {
	path := writeConfig(t, "timeout: -5s\n")

	_, err := Load(viper.New(), path)
	if err == nil {
		t.Error("expected error for negative timeout")
	}
}

func TestValidate_EmptyEndpoint(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty endpoint")
	}
}
