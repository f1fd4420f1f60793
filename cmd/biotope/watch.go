package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Biotope/internal/hermes"
)

func newWatchCmd() *cobra.Command {
	var (
		natsURL    string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print assessment events as the server publishes them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath, false)
			if err != nil {
				return err
			}
			url := natsURL
			if url == "" {
				url = cfg.Hermes.URL
			}
			if url == "" {
				return exitError(exitInput, "no NATS url: pass --nats or set hermes.url")
			}
			logger, err := newLogger(cfg, false, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			c, err := hermes.NewNATSClient(ctx, url, logger)
			if err != nil {
				return exitError(exitRemote, "connect to %s: %v", url, err)
			}
			defer c.Close()

			return watchEvents(ctx, c, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats", os.Getenv("BIOTOPE_HERMES_URL"), "NATS server URL")
	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file")
	return cmd
}

// watchEvents prints one line per assessment event until ctx is done.
func watchEvents(ctx context.Context, c hermes.Client, w io.Writer) error {
	var mu sync.Mutex
	err := c.Subscribe(hermes.SubjectAssessmentAll, func(subject string, data []byte) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, formatEvent(subject, data))
	})
	if err != nil {
		return exitError(exitRemote, "subscribe: %v", err)
	}
	<-ctx.Done()
	return nil
}

func formatEvent(subject string, data []byte) string {
	v, err := hermes.DecodeEvent(subject, data)
	if err != nil {
		return fmt.Sprintf("%s: %v", subject, err)
	}
	switch ev := v.(type) {
	case *hermes.AssessmentCompletedEvent:
		line := fmt.Sprintf("%s completed %s final=%.2f S=%d N=%g",
			ev.Timestamp.Format("15:04:05"), ev.AssessmentID, ev.FinalScore, ev.Richness, ev.Abundance)
		if ev.Overflow {
			line += " overflow"
		}
		if len(ev.Degenerate) > 0 {
			line += " degenerate=" + strings.Join(ev.Degenerate, ",")
		}
		return line
	case *hermes.AssessmentRejectedEvent:
		return fmt.Sprintf("%s rejected %s: %s", ev.Timestamp.Format("15:04:05"), ev.AssessmentID, ev.Error)
	}
	return subject
}
