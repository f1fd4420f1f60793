package scoring

import (
	"fmt"
	"log/slog"
	"math"
)

// Assessment is the complete scoring output for one abundance table.
type Assessment struct {
	Richness  int        `json:"richness"`
	Abundance float64    `json:"abundance"`
	TableSize int        `json:"table_size"`
	Indexes   IndexSet   `json:"indexes"`
	Ratings   Ratings    `json:"ratings"`
	Final     FinalScore `json:"final"`
	Notes     []string   `json:"notes,omitempty"`
}

// Options configures an Engine.
type Options struct {
	Weights         WeightSet
	MargalefCeiling float64
	ClampStars      bool
}

// DefaultOptions returns the 55/45 weighting, a Margalef ceiling of 5 and
// pass-through overflow.
func DefaultOptions() Options {
	return Options{
		Weights:         DefaultWeights(),
		MargalefCeiling: DefaultMargalefCeiling,
	}
}

// Engine runs the index -> stars -> final score pipeline. It holds only
// configuration and is safe for concurrent use.
type Engine struct {
	weights         WeightSet
	margalefCeiling float64
	clampStars      bool
	logger          *slog.Logger
}

// NewEngine creates an Engine after validating opts.
func NewEngine(opts Options, logger *slog.Logger) (*Engine, error) {
	if err := opts.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("scoring.NewEngine: %w", err)
	}
	if opts.MargalefCeiling <= 0 || math.IsInf(opts.MargalefCeiling, 0) || math.IsNaN(opts.MargalefCeiling) {
		return nil, fmt.Errorf("scoring.NewEngine: margalef ceiling must be positive, got %g", opts.MargalefCeiling)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		weights:         opts.Weights,
		margalefCeiling: opts.MargalefCeiling,
		clampStars:      opts.ClampStars,
		logger:          logger,
	}, nil
}

// Options returns the configuration the engine was built with.
func (e *Engine) Options() Options {
	return Options{
		Weights:         e.weights,
		MargalefCeiling: e.margalefCeiling,
		ClampStars:      e.clampStars,
	}
}

// Assess computes indexes, per-index star ratings and the final score for
// table. It fails with ErrInvalidInput before any arithmetic when the table
// is empty, holds a negative or non-finite count, or sums to zero.
// A single-species table is not an error: the indexes without a scale
// fall back to zero stars and are marked degenerate.
func (e *Engine) Assess(table AbundanceTable) (Assessment, error) {
	indexes, err := ComputeIndexes(table)
	if err != nil {
		return Assessment{}, err
	}

	a := Assessment{
		Richness:  table.Richness(),
		Abundance: table.Abundance(),
		TableSize: len(table),
		Indexes:   indexes,
	}

	for _, idx := range Indexes() {
		res := e.rate(idx, indexes.Value(idx), a.Richness)
		switch {
		case idx == IndexPielou && a.Richness <= 1:
			res.Degenerate = true
		case idx == IndexMargalef && a.Richness > 1 && math.Log(a.Abundance) <= 0:
			res.Degenerate = true
		}
		a.Ratings.set(res)
	}

	a.Final = Combine(e.weights, a.Ratings.Margalef.Stars.Value, a.Ratings.Pielou.Stars.Value, e.clampStars)
	a.Notes = notes(a, e.clampStars)

	e.logger.Debug("assessment computed",
		"richness", a.Richness,
		"abundance", a.Abundance,
		"final", a.Final.Value,
	)
	return a, nil
}

// Rate normalizes a single index value for a table of the given richness.
func (e *Engine) Rate(idx Index, value float64, richness int) (RatingResult, error) {
	if !idx.Valid() {
		return RatingResult{}, &InputError{Reason: fmt.Sprintf("unknown index %q", idx)}
	}
	if richness < 1 {
		return RatingResult{}, &InputError{Reason: "richness must be at least 1"}
	}
	if value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return RatingResult{}, &InputError{Reason: fmt.Sprintf("index value must be finite and non-negative, got %g", value)}
	}
	return e.rate(idx, value, richness), nil
}

// Combine blends star values with the engine's weights and clamp policy.
func (e *Engine) Combine(margalefStars, pielouStars float64) FinalScore {
	return Combine(e.weights, margalefStars, pielouStars, e.clampStars)
}

func (e *Engine) rate(idx Index, value float64, richness int) RatingResult {
	max := TheoreticalMax(idx, richness, e.margalefCeiling)
	res := RatingResult{
		Index:  idx,
		Value:  value,
		Max:    max,
		Policy: idx.Policy(),
		Weight: e.weights.Of(idx),
	}
	if max <= 0 {
		res.Degenerate = true
		return res
	}

	stars := Normalize(value, max, res.Policy)
	if stars.Value > MaxStars {
		res.Overflow = true
		if e.clampStars {
			stars = NewStarRating(MaxStars)
		}
	}
	res.Stars = stars
	res.Weighted = stars.Value * res.Weight
	return res
}

func notes(a Assessment, clamped bool) []string {
	var out []string
	if a.Richness == 1 {
		out = append(out, "single species: simpson, shannon and pielou have no scale and rate zero stars")
	}
	if zero := a.TableSize - a.Richness; zero > 0 {
		out = append(out, fmt.Sprintf("%d species with zero count ignored", zero))
	}
	if a.Ratings.Margalef.Degenerate {
		out = append(out, "total abundance too small for margalef (ln N <= 0): rated zero")
	}
	for _, r := range a.Ratings.All() {
		if !r.Overflow {
			continue
		}
		if clamped {
			out = append(out, fmt.Sprintf("%s exceeds its theoretical maximum %g: clamped to 5 stars", r.Index, r.Max))
		} else {
			out = append(out, fmt.Sprintf("%s exceeds its theoretical maximum %g: %.2f stars", r.Index, r.Max, r.Stars.Value))
		}
	}
	if a.Final.Overflow && !clamped {
		out = append(out, fmt.Sprintf("final score %.2f is above 5 stars", a.Final.Value))
	}
	return out
}
