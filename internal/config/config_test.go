package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var envVars = []string{
	"BIOTOPE_PORT", "BIOTOPE_METRICS_PORT", "BIOTOPE_API_TOKEN",
	"BIOTOPE_RATE_LIMIT_PER_MINUTE", "BIOTOPE_HERMES_URL",
	"BIOTOPE_MARGALEF_WEIGHT", "BIOTOPE_PIELOU_WEIGHT", "BIOTOPE_CLAMP_STARS",
	"BIOTOPE_LOG_LEVEL", "BIOTOPE_LOG_FORMAT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8700 {
		t.Errorf("expected port 8700, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected metrics port 8701, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.RateLimitPerMinute != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimitPerMinute)
	}
	if cfg.Hermes.URL != "" {
		t.Errorf("expected events disabled by default, got %s", cfg.Hermes.URL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got '%s'", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "auto" {
		t.Errorf("expected log format 'auto', got '%s'", cfg.Logging.Format)
	}

	w := cfg.Scoring.Weights
	if math.Abs(w.Margalef-0.55) > 0.001 || math.Abs(w.Pielou-0.45) > 0.001 {
		t.Errorf("unexpected default weights %+v", w)
	}
	if cfg.Scoring.MargalefCeiling != 5 {
		t.Errorf("expected margalef ceiling 5, got %g", cfg.Scoring.MargalefCeiling)
	}
	if cfg.Scoring.ClampStars {
		t.Error("expected clamp_stars=false by default")
	}
	if cfg.ShutdownTimeout() != 10*time.Second {
		t.Errorf("expected ShutdownTimeout 10s, got %v", cfg.ShutdownTimeout())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BIOTOPE_PORT", "9000")
	t.Setenv("BIOTOPE_METRICS_PORT", "9001")
	t.Setenv("BIOTOPE_API_TOKEN", "secret-token")
	t.Setenv("BIOTOPE_HERMES_URL", "nats://nats:4222")
	t.Setenv("BIOTOPE_MARGALEF_WEIGHT", "0.6")
	t.Setenv("BIOTOPE_PIELOU_WEIGHT", "0.4")
	t.Setenv("BIOTOPE_CLAMP_STARS", "true")
	t.Setenv("BIOTOPE_LOG_LEVEL", "debug")
	t.Setenv("BIOTOPE_LOG_FORMAT", "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 9001 {
		t.Errorf("expected metrics port 9001, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Server.APIToken != "secret-token" {
		t.Errorf("expected api token 'secret-token', got '%s'", cfg.Server.APIToken)
	}
	if cfg.Hermes.URL != "nats://nats:4222" {
		t.Errorf("expected hermes URL, got '%s'", cfg.Hermes.URL)
	}
	opts := cfg.EngineOptions()
	if opts.Weights.Margalef != 0.6 || opts.Weights.Pielou != 0.4 {
		t.Errorf("expected env weights, got %+v", opts.Weights)
	}
	if !opts.ClampStars {
		t.Error("expected clamp_stars from env")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "biotope.yaml")
	data := `
server:
  port: 8080
scoring:
  weights:
    margalef: 0.5
    pielou: 0.5
  margalef_ceiling: 8
  clamp_stars: true
logging:
  level: warn
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Server.MetricsPort != 8701 {
		t.Errorf("expected default metrics port to survive, got %d", cfg.Server.MetricsPort)
	}
	if cfg.Scoring.MargalefCeiling != 8 || !cfg.Scoring.ClampStars {
		t.Errorf("unexpected scoring config %+v", cfg.Scoring)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "auto" {
		t.Errorf("unexpected logging config %+v", cfg.Logging)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"weights", func(c *Config) { c.Scoring.Weights.Pielou = 0.9 }},
		{"ceiling", func(c *Config) { c.Scoring.MargalefCeiling = 0 }},
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	clearEnv(t)
	defaults, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	example, err := Load("../../biotope.example.yaml")
	if err != nil {
		t.Fatalf("Load example failed: %v", err)
	}
	if *example != *defaults {
		t.Errorf("example config drifted from defaults:\n got %+v\nwant %+v", *example, *defaults)
	}
}
