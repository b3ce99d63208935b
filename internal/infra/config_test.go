package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:5555" {
		t.Errorf("api.base_url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("api.timeout = %v", cfg.API.Timeout)
	}
	if cfg.History.Limit != 50 {
		t.Errorf("history.limit = %d", cfg.History.Limit)
	}
	if cfg.Warmup.Attempts != 4 || cfg.Warmup.Deadline != 3*time.Second {
		t.Errorf("warmup = %+v", cfg.Warmup)
	}
	if cfg.Theme.Path != ".alert-console-theme" {
		t.Errorf("theme.path = %q", cfg.Theme.Path)
	}
	if cfg.Metrics.Addr != "" {
		t.Errorf("metrics.addr = %q, want disabled by default", cfg.Metrics.Addr)
	}
	if cfg.Logger.Level != "info" || cfg.Logger.Format != "console" {
		t.Errorf("logger = %+v", cfg.Logger)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend:5555")
	t.Setenv("HISTORY_LIMIT", "10")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.API.BaseURL != "http://backend:5555" {
		t.Errorf("api.base_url = %q, want env override", cfg.API.BaseURL)
	}
	if cfg.History.Limit != 10 {
		t.Errorf("history.limit = %d, want env override", cfg.History.Limit)
	}
}

func TestEndpointHelpers(t *testing.T) {
	if got := RulePath(7); got != "/api/alert-rules/7" {
		t.Errorf("RulePath = %q", got)
	}
	if got := RuleTogglePath(7); got != "/api/alert-rules/7/toggle" {
		t.Errorf("RuleTogglePath = %q", got)
	}
	if got := HistoryPath(50); got != "/api/alert-history?limit=50" {
		t.Errorf("HistoryPath = %q", got)
	}
}
