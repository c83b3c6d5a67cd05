package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "http://localhost:8000" {
		t.Errorf("unexpected default base URL %q", cfg.API.BaseURL)
	}
	if cfg.Jobs.PageLimit != 50 || cfg.Admin.FeedbackLimit != 10 {
		t.Errorf("unexpected default limits: %+v", cfg)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("unexpected default timeout %v", cfg.Timeout())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api:\n  base_url: https://jobs.example.com\n  timeout: 10s\njobs:\n  page_limit: 25\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "https://jobs.example.com" {
		t.Errorf("expected file base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.Timeout() != 10*time.Second {
		t.Errorf("expected 10s timeout, got %v", cfg.Timeout())
	}
	if cfg.Jobs.PageLimit != 25 {
		t.Errorf("expected page_limit 25, got %d", cfg.Jobs.PageLimit)
	}
	// Untouched sections keep their defaults.
	if cfg.Admin.FeedbackLimit != 10 {
		t.Errorf("expected default feedback limit, got %d", cfg.Admin.FeedbackLimit)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("JOBDETECTOR_API__BASE_URL", "https://env.example.com")
	t.Setenv("JOBDETECTOR_LOG__LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.API.BaseURL != "https://env.example.com" {
		t.Errorf("expected env base URL, got %q", cfg.API.BaseURL)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected env log level, got %q", cfg.Log.Level)
	}
}

func TestMissingExplicitFileIsAnError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestInvalidTimeoutRejected(t *testing.T) {
	t.Setenv("JOBDETECTOR_API__TIMEOUT", "soon")
	if _, err := Load(""); err == nil {
		t.Error("expected error for unparsable timeout")
	}
}
