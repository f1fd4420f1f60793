package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Biotope/internal/api"
	"github.com/MikeSquared-Agency/Biotope/internal/config"
	"github.com/MikeSquared-Agency/Biotope/internal/hermes"
	"github.com/MikeSquared-Agency/Biotope/internal/report"
)

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scoring API and metrics servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, false)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg, false, os.Stdout)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, logger, nil)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	return cmd
}

// runServe blocks until ctx is cancelled, then shuts both servers down.
// When ready is non-nil it receives the bound API and metrics addresses.
func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger, ready func(apiAddr, metricsAddr string)) error {
	engine, err := newEngine(cfg, logger)
	if err != nil {
		return err
	}

	// Hermes (optional)
	hermesClient, err := hermes.ConnectOptional(ctx, cfg.Hermes.URL, logger)
	if err != nil {
		logger.Warn("failed to connect to hermes, running without events", "error", err)
	}
	if hermesClient != nil {
		defer hermesClient.Close()
	}

	apiLn, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return exitError(exitGeneric, "listen api: %v", err)
	}
	metricsLn, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.MetricsPort))
	if err != nil {
		apiLn.Close()
		return exitError(exitGeneric, "listen metrics: %v", err)
	}

	apiServer := &http.Server{Handler: api.NewRouter(engine, hermesClient, cfg.Server, logger)}
	metricsServer := &http.Server{Handler: api.NewMetricsRouter()}

	errCh := make(chan error, 2)
	go func() {
		logger.Info("API server starting", "addr", apiLn.Addr().String(), "version", report.Version)
		if err := apiServer.Serve(apiLn); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()
	go func() {
		logger.Info("metrics server starting", "addr", metricsLn.Addr().String())
		if err := metricsServer.Serve(metricsLn); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("metrics server: %w", err)
		}
	}()
	if ready != nil {
		ready(apiLn.Addr().String(), metricsLn.Addr().String())
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Error("server failed", "error", serveErr)
	}

	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
	return serveErr
}
