package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Hermes  HermesConfig  `yaml:"hermes"`
	Scoring ScoringConfig `yaml:"scoring"`
	Logging LoggingConfig `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	APIToken           string `yaml:"api_token"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
	MaxUploadBytes     int64  `yaml:"max_upload_bytes"`
	ShutdownTimeoutMs  int    `yaml:"shutdown_timeout_ms"`
}

type HermesConfig struct {
	URL string `yaml:"url"`
}

type ScoringConfig struct {
	Weights         ScoringWeights `yaml:"weights"`
	MargalefCeiling float64        `yaml:"margalef_ceiling"`
	ClampStars      bool           `yaml:"clamp_stars"`
}

type ScoringWeights struct {
	Margalef float64 `yaml:"margalef"`
	Pielou   float64 `yaml:"pielou"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Server.ShutdownTimeoutMs) * time.Millisecond
}

// EngineOptions converts the scoring section into engine options.
func (c *Config) EngineOptions() scoring.Options {
	return scoring.Options{
		Weights: scoring.WeightSet{
			Margalef: c.Scoring.Weights.Margalef,
			Pielou:   c.Scoring.Weights.Pielou,
		},
		MargalefCeiling: c.Scoring.MargalefCeiling,
		ClampStars:      c.Scoring.ClampStars,
	}
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if err := c.EngineOptions().Weights.Validate(); err != nil {
		return fmt.Errorf("scoring.weights: %w", err)
	}
	if c.Scoring.MargalefCeiling <= 0 {
		return fmt.Errorf("scoring.margalef_ceiling must be positive, got %g", c.Scoring.MargalefCeiling)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("server.metrics_port out of range: %d", c.Server.MetricsPort)
	}
	switch c.Logging.Format {
	case "auto", "json", "text":
	default:
		return fmt.Errorf("logging.format must be auto, json or text, got %q", c.Logging.Format)
	}
	return nil
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			RateLimitPerMinute: 120,
			MaxUploadBytes:     10 << 20,
			ShutdownTimeoutMs:  10000,
		},
		Scoring: ScoringConfig{
			Weights: ScoringWeights{
				Margalef: 0.55,
				Pielou:   0.45,
			},
			MargalefCeiling: scoring.DefaultMargalefCeiling,
			ClampStars:      false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("BIOTOPE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("BIOTOPE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("BIOTOPE_API_TOKEN"); v != "" {
		cfg.Server.APIToken = v
	}
	if v := os.Getenv("BIOTOPE_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("BIOTOPE_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("BIOTOPE_MARGALEF_WEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scoring.Weights.Margalef = f
		}
	}
	if v := os.Getenv("BIOTOPE_PIELOU_WEIGHT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Scoring.Weights.Pielou = f
		}
	}
	if v := os.Getenv("BIOTOPE_CLAMP_STARS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Scoring.ClampStars = b
		}
	}
	if v := os.Getenv("BIOTOPE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("BIOTOPE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
