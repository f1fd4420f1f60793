package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Biotope/internal/logging"
	"github.com/MikeSquared-Agency/Biotope/internal/render"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
)

type starsFlags struct {
	richness   int
	configPath string
	clamp      bool
	json       bool
}

func newStarsCmd() *cobra.Command {
	f := &starsFlags{}

	cmd := &cobra.Command{
		Use:   "stars <index> <value>",
		Short: "Convert one index value to stars (simpson, shannon, pielou, margalef)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStars(args[0], args[1], f, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&f.richness, "richness", 1, "Species richness S of the table the value came from")
	flags.StringVar(&f.configPath, "config", "", "Path to config file")
	flags.BoolVar(&f.clamp, "clamp", false, "Clamp star values above 5")
	flags.BoolVar(&f.json, "json", false, "Print the rating as JSON")

	return cmd
}

func runStars(index, rawValue string, f *starsFlags, stdout io.Writer) error {
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return exitError(exitInput, "invalid value %q: %v", rawValue, err)
	}
	cfg, err := loadConfig(f.configPath, f.clamp)
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg, logging.Discard())
	if err != nil {
		return err
	}

	res, err := engine.Rate(scoring.Index(index), value, f.richness)
	if err != nil {
		if errors.Is(err, scoring.ErrInvalidInput) {
			return exitError(exitInput, "%v", err)
		}
		return err
	}

	if f.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	fmt.Fprintf(stdout, "%s %.4f (max %.4f, %s): %.2f stars %s\n",
		res.Index, res.Value, res.Max, res.Policy, res.Stars.Value, render.Glyphs(res.Stars))
	if res.Degenerate {
		fmt.Fprintln(stdout, "note: no scale at this richness, rated zero")
	}
	if res.Overflow {
		fmt.Fprintln(stdout, "note: value exceeds the theoretical maximum")
	}
	return nil
}
