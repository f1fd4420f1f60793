// Package report assembles the document returned by the API and written by
// the CLI for one scored survey.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
	"github.com/MikeSquared-Agency/Biotope/internal/survey"
)

const Tool = "biotope"

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

type Report struct {
	ID          uuid.UUID          `json:"id"`
	Tool        string             `json:"tool"`
	Version     string             `json:"version"`
	GeneratedAt time.Time          `json:"generated_at"`
	Input       Input              `json:"input"`
	Assessment  scoring.Assessment `json:"assessment"`
	Species     []survey.Entry     `json:"species"`
}

// Input describes where the scored records came from. Groups is the display
// filter that produced Species; it has no effect on Assessment.
type Input struct {
	File   string        `json:"file,omitempty"`
	Hash   string        `json:"hash,omitempty"`
	Format survey.Format `json:"format,omitempty"`
	Groups []string      `json:"groups,omitempty"`
}

// New builds a report for s. Species lists the entries matching filter.
func New(s *survey.Survey, a scoring.Assessment, filter []string) *Report {
	species := s.Filter(filter...)
	if species == nil {
		species = []survey.Entry{}
	}
	return &Report{
		ID:          uuid.New(),
		Tool:        Tool,
		Version:     Version,
		GeneratedAt: time.Now().UTC(),
		Input: Input{
			File:   s.Path,
			Hash:   s.Hash,
			Format: s.Format,
			Groups: filter,
		},
		Assessment: a,
		Species:    species,
	}
}

// Title is a short human label for the report.
func (r *Report) Title() string {
	if r.Input.File != "" {
		return "Biodiversity assessment: " + r.Input.File
	}
	return "Biodiversity assessment"
}
