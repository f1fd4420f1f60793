package main

import (
	"io"
	"log/slog"

	"github.com/MikeSquared-Agency/Biotope/internal/config"
	"github.com/MikeSquared-Agency/Biotope/internal/logging"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
)

// loadConfig reads the config file (if any) and applies the command line
// clamp override before validating.
func loadConfig(path string, clamp bool) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, exitError(exitInput, "failed to load config: %v", err)
	}
	if clamp {
		cfg.Scoring.ClampStars = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, exitError(exitInput, "invalid config: %v", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, verbose bool, w io.Writer) (*slog.Logger, error) {
	lc := cfg.Logging
	if verbose {
		lc.Level = "debug"
	}
	logger, err := logging.New(lc, w)
	if err != nil {
		return nil, exitError(exitInput, "invalid logging config: %v", err)
	}
	return logger, nil
}

func newEngine(cfg *config.Config, logger *slog.Logger) (*scoring.Engine, error) {
	engine, err := scoring.NewEngine(cfg.EngineOptions(), logger)
	if err != nil {
		return nil, exitError(exitInput, "invalid scoring config: %v", err)
	}
	return engine, nil
}
