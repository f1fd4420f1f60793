package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Biotope/internal/client"
	"github.com/MikeSquared-Agency/Biotope/internal/render"
	"github.com/MikeSquared-Agency/Biotope/internal/report"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
	"github.com/MikeSquared-Agency/Biotope/internal/survey"
)

type scoreFlags struct {
	format     string
	out        string
	groups     []string
	configPath string
	clamp      bool
	remote     string
	token      string
	failBelow  float64
	verbose    bool
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score <survey-file>",
		Short: "Compute diversity indexes and the star rating for a survey file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("fail-below") {
				f.failBelow = -1
			}
			return runScore(cmd.Context(), args[0], f, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.format, "format", "text", "Output format: json, md or text")
	flags.StringVar(&f.out, "out", "", "Output file path (default: stdout)")
	flags.StringArrayVar(&f.groups, "group", nil, "Only list species of this group (may be repeated)")
	flags.StringVar(&f.configPath, "config", "", "Path to config file")
	flags.BoolVar(&f.clamp, "clamp", false, "Clamp star values above 5")
	flags.StringVar(&f.remote, "remote", "", "Score on a biotope server at this URL instead of locally")
	flags.StringVar(&f.token, "token", os.Getenv("BIOTOPE_API_TOKEN"), "API token for --remote")
	flags.Float64Var(&f.failBelow, "fail-below", 0, "Exit 2 if the final score is below this many stars")
	flags.BoolVar(&f.verbose, "verbose", false, "Print processing steps to stderr")

	return cmd
}

func runScore(ctx context.Context, path string, f *scoreFlags, stdout, stderr io.Writer) error {
	logger := log.New(stderr, "", 0)
	verbose := func(msg string, args ...any) {
		if f.verbose {
			logger.Printf(msg, args...)
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	renderer, err := render.NewRenderer(f.format)
	if err != nil {
		return exitError(exitInput, "%v", err)
	}

	var rep *report.Report
	if f.remote != "" {
		verbose("Scoring %s on %s", path, f.remote)
		rep, err = client.NewHTTPClient(f.remote, f.token).AssessFile(ctx, path, f.groups)
		if err != nil {
			return remoteError(err)
		}
	} else {
		rep, err = scoreLocal(path, f, verbose, stderr)
		if err != nil {
			return err
		}
	}

	verbose("Final score %.2f (S=%d, N=%g)", rep.Assessment.Final.Value, rep.Assessment.Richness, rep.Assessment.Abundance)

	out, err := renderer.Render(rep)
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	if f.out != "" {
		verbose("Writing output to %s", f.out)
		if err := os.WriteFile(f.out, out, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else if _, err := stdout.Write(out); err != nil {
		return err
	}

	if f.failBelow >= 0 && rep.Assessment.Final.Value < f.failBelow {
		return exitError(exitFailBelow, "final score %.2f is below %.2f stars", rep.Assessment.Final.Value, f.failBelow)
	}
	return nil
}

func scoreLocal(path string, f *scoreFlags, verbose func(string, ...any), stderr io.Writer) (*report.Report, error) {
	cfg, err := loadConfig(f.configPath, f.clamp)
	if err != nil {
		return nil, err
	}
	slogger, err := newLogger(cfg, f.verbose, stderr)
	if err != nil {
		return nil, err
	}
	engine, err := newEngine(cfg, slogger)
	if err != nil {
		return nil, err
	}

	verbose("Loading survey: %s", path)
	s, err := survey.Load(path)
	if err != nil {
		return nil, exitError(exitInput, "failed to load survey: %v", err)
	}
	verbose("Loaded %d species (%s, %s)", s.Len(), s.Format, s.Hash)

	a, err := engine.Assess(s.Table())
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidInput) {
			return nil, exitError(exitInput, "cannot score %s: %v: add at least one species with a positive count", path, err)
		}
		return nil, err
	}
	return report.New(s, a, f.groups), nil
}

func remoteError(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusUnsupportedMediaType:
			return exitError(exitInput, "server rejected survey: %s", apiErr.Message)
		}
		return exitError(exitRemote, "server error: %v", apiErr)
	}
	if errors.Is(err, survey.ErrUnknownFormat) || errors.Is(err, os.ErrNotExist) {
		return exitError(exitInput, "failed to read survey: %v", err)
	}
	return exitError(exitRemote, "remote scoring failed: %v", err)
}
