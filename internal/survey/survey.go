// Package survey reads species-count surveys from CSV, TSV, XLSX and JSON
// files and offers copy-on-write editing of the resulting records.
package survey

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
)

var (
	// ErrMissingColumns is returned when a tabular survey lacks a required column.
	ErrMissingColumns = errors.New("the file must contain 'Group', 'Specie', and 'Count' columns")

	// ErrInvalidRow is the sentinel wrapped by every *RowError.
	ErrInvalidRow = errors.New("invalid survey row")

	ErrUnknownFormat = errors.New("unknown survey format")
)

// RowError reports a record that could not be read. Row is 1-based and
// counts the header line for tabular formats.
type RowError struct {
	Row    int
	Reason string
}

func (e *RowError) Error() string {
	return fmt.Sprintf("survey: row %d: %s", e.Row, e.Reason)
}

func (e *RowError) Unwrap() error { return ErrInvalidRow }

// Entry is one observed species.
type Entry struct {
	Group  string  `json:"group"`
	Specie string  `json:"specie"`
	Count  float64 `json:"count"`
}

// Survey is an ordered set of entries keyed by species name. Methods that
// change the records return a new Survey; the receiver is never modified.
type Survey struct {
	Path   string
	Hash   string
	Format Format

	entries []Entry
}

// New builds a survey from entries. A repeated species replaces the earlier
// one in place.
func New(entries ...Entry) (Survey, error) {
	var s Survey
	for i, e := range entries {
		next, err := s.WithEntry(e)
		if err != nil {
			return Survey{}, fmt.Errorf("survey.New: entry %d: %w", i+1, err)
		}
		s = next
	}
	return s, nil
}

// Len returns the number of species on record, zero counts included.
func (s Survey) Len() int { return len(s.entries) }

// Entries returns a copy of the records in file order.
func (s Survey) Entries() []Entry {
	return slices.Clone(s.entries)
}

// WithEntry adds a species or updates an existing one.
func (s Survey) WithEntry(e Entry) (Survey, error) {
	e.Specie = Normalize(e.Specie)
	e.Group = Normalize(e.Group)
	if e.Specie == "" {
		return s, &RowError{Row: s.Len() + 1, Reason: "species name is blank"}
	}
	if err := checkCount(e.Count); err != "" {
		return s, &RowError{Row: s.Len() + 1, Reason: err}
	}

	out := s
	out.entries = slices.Clone(s.entries)
	if i := out.index(e.Specie); i >= 0 {
		out.entries[i] = e
	} else {
		out.entries = append(out.entries, e)
	}
	return out, nil
}

// WithoutSpecies drops a species and its group assignment. Unknown names are
// a no-op.
func (s Survey) WithoutSpecies(name string) Survey {
	i := s.index(Normalize(name))
	if i < 0 {
		return s
	}
	out := s
	out.entries = slices.Delete(slices.Clone(s.entries), i, i+1)
	return out
}

// Filter returns the entries whose group is one of groups. With no groups
// every entry is returned. Filtering is for display only; scoring always
// uses Table.
func (s Survey) Filter(groups ...string) []Entry {
	if len(groups) == 0 {
		return s.Entries()
	}
	want := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		want[Normalize(g)] = struct{}{}
	}
	var out []Entry
	for _, e := range s.entries {
		if _, ok := want[e.Group]; ok {
			out = append(out, e)
		}
	}
	return out
}

// Groups returns the sorted distinct non-empty group labels.
func (s Survey) Groups() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range s.entries {
		if e.Group == "" {
			continue
		}
		if _, ok := seen[e.Group]; ok {
			continue
		}
		seen[e.Group] = struct{}{}
		out = append(out, e.Group)
	}
	slices.Sort(out)
	return out
}

// Table returns the species counts the engine scores.
func (s Survey) Table() scoring.AbundanceTable {
	t := make(scoring.AbundanceTable, len(s.entries))
	for _, e := range s.entries {
		t[e.Specie] = e.Count
	}
	return t
}

// Assignment returns the species to group mapping.
func (s Survey) Assignment() scoring.GroupAssignment {
	a := make(scoring.GroupAssignment, len(s.entries))
	for _, e := range s.entries {
		a[e.Specie] = e.Group
	}
	return a
}

func (s Survey) index(specie string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.Specie == specie })
}

// Normalize applies NFKC and trims surrounding space and byte order marks,
// so that names typed on different keyboards compare equal.
func Normalize(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(norm.NFKC.String(s))
}

func checkCount(c float64) string {
	switch {
	case math.IsNaN(c) || math.IsInf(c, 0):
		return "count must be a finite number"
	case c < 0:
		return fmt.Sprintf("count must not be negative, got %g", c)
	}
	return ""
}
