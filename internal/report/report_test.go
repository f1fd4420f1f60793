package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
	"github.com/MikeSquared-Agency/Biotope/internal/survey"
)

func sampleSurvey(t *testing.T) *survey.Survey {
	t.Helper()
	s, err := survey.New(
		survey.Entry{Group: "Percidae", Specie: "Perca fluviatilis", Count: 7},
		survey.Entry{Group: "Esocidae", Specie: "Esox lucius", Count: 2},
		survey.Entry{Group: "Percidae", Specie: "Sander lucioperca", Count: 1},
	)
	require.NoError(t, err)
	s.Path = "lake.csv"
	s.Hash = "sha256:abc"
	s.Format = survey.FormatCSV
	return &s
}

func TestNew(t *testing.T) {
	s := sampleSurvey(t)
	engine, err := scoring.NewEngine(scoring.DefaultOptions(), nil)
	require.NoError(t, err)
	a, err := engine.Assess(s.Table())
	require.NoError(t, err)

	before := time.Now().UTC()
	r := New(s, a, []string{"Percidae"})

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "biotope", r.Tool)
	assert.False(t, r.GeneratedAt.Before(before.Add(-time.Second)))
	assert.Equal(t, "lake.csv", r.Input.File)
	assert.Equal(t, survey.FormatCSV, r.Input.Format)
	assert.Equal(t, []string{"Percidae"}, r.Input.Groups)
	assert.Len(t, r.Species, 2)
	assert.Equal(t, 3, r.Assessment.Richness, "filter does not change the scored table")
	assert.Equal(t, "Biodiversity assessment: lake.csv", r.Title())
}

func TestNewWithoutFilterKeepsEverySpecies(t *testing.T) {
	s := sampleSurvey(t)
	r := New(s, scoring.Assessment{}, nil)
	assert.Len(t, r.Species, 3)

	r = New(s, scoring.Assessment{}, []string{"Salmonidae"})
	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []any{}, decoded["species"])
}

func TestIDsAreUnique(t *testing.T) {
	s := sampleSurvey(t)
	a := New(s, scoring.Assessment{}, nil)
	b := New(s, scoring.Assessment{}, nil)
	assert.NotEqual(t, a.ID, b.ID)
}
