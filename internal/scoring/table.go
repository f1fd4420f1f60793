package scoring

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
)

// ErrInvalidInput is the sentinel matched by every *InputError.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes why an abundance table cannot be assessed.
type InputError struct {
	Species string
	Reason  string
}

func (e *InputError) Error() string {
	if e.Species != "" {
		return fmt.Sprintf("invalid input: species %q: %s", e.Species, e.Reason)
	}
	return "invalid input: " + e.Reason
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// AbundanceTable maps a species identifier to its observed count.
type AbundanceTable map[string]float64

// GroupAssignment maps a species identifier to its taxonomic or functional
// group. The engine never reads it.
type GroupAssignment map[string]string

// Species returns the identifiers in sorted order.
func (t AbundanceTable) Species() []string {
	return slices.Sorted(maps.Keys(t))
}

// Richness counts the species observed at least once (count > 0).
func (t AbundanceTable) Richness() int {
	var s int
	for _, c := range t {
		if c > 0 {
			s++
		}
	}
	return s
}

// Abundance is the total count across all species.
func (t AbundanceTable) Abundance() float64 {
	var n float64
	for _, name := range t.Species() {
		n += t[name]
	}
	return n
}

// Validate checks the preconditions of ComputeIndexes: at least one entry,
// finite non-negative counts and a positive total.
func (t AbundanceTable) Validate() error {
	if len(t) == 0 {
		return &InputError{Reason: "abundance table is empty"}
	}
	for _, name := range t.Species() {
		c := t[name]
		switch {
		case name == "":
			return &InputError{Reason: "empty species identifier"}
		case math.IsNaN(c) || math.IsInf(c, 0):
			return &InputError{Species: name, Reason: "count is not a finite number"}
		case c < 0:
			return &InputError{Species: name, Reason: fmt.Sprintf("negative count %g", c)}
		}
	}
	if t.Abundance() <= 0 {
		return &InputError{Reason: "total abundance is zero"}
	}
	return nil
}

// Clone returns an independent copy of the table.
func (t AbundanceTable) Clone() AbundanceTable {
	return maps.Clone(t)
}
