package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Biotope/internal/report"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
	"github.com/MikeSquared-Agency/Biotope/internal/survey"
)

func sampleReport(t *testing.T) *report.Report {
	t.Helper()
	s, err := survey.New(
		survey.Entry{Group: "Cyprinidae", Specie: "Rutilus rutilus", Count: 12},
		survey.Entry{Group: "Cyprinidae", Specie: "Abramis brama", Count: 4},
		survey.Entry{Group: "Percidae", Specie: "Perca fluviatilis", Count: 7},
		survey.Entry{Group: "Esocidae", Specie: "Esox lucius", Count: 2},
		survey.Entry{Group: "Percidae", Specie: "Sander lucioperca", Count: 0},
	)
	require.NoError(t, err)
	s.Path = "lake.csv"

	engine, err := scoring.NewEngine(scoring.DefaultOptions(), nil)
	require.NoError(t, err)
	a, err := engine.Assess(s.Table())
	require.NoError(t, err)
	return report.New(&s, a, []string{"Percidae"})
}

func TestNewRenderer_Unknown(t *testing.T) {
	_, err := NewRenderer("html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json, md, text")
}

func TestNewRenderer_JSON(t *testing.T) {
	r, err := NewRenderer("json")
	require.NoError(t, err)
	rep := sampleReport(t)

	out, err := r.Render(rep)
	require.NoError(t, err)

	var decoded report.Report
	require.NoError(t, json.Unmarshal(out, &decoded), string(out))
	assert.Equal(t, rep.ID, decoded.ID)
	assert.Equal(t, rep.Assessment.Final.Value, decoded.Assessment.Final.Value)
	assert.Len(t, decoded.Species, 2)
}

func TestNewRenderer_Markdown(t *testing.T) {
	r, err := NewRenderer("md")
	require.NoError(t, err)
	rep := sampleReport(t)

	out, err := r.Render(rep)
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "# Biodiversity assessment: lake.csv"), md)
	assert.Contains(t, md, "## Final score: ")
	assert.Contains(t, md, "| simpson | ")
	assert.Contains(t, md, "| margalef | ")
	assert.Contains(t, md, "## Notes")
	assert.Contains(t, md, "## Species (Percidae)")
	assert.Contains(t, md, "| Percidae | Sander lucioperca | 0 |")
	assert.NotContains(t, md, "Rutilus rutilus")
	assert.Contains(t, md, glyphFull)

	// four decimals for index values
	simpson := rep.Assessment.Ratings.Simpson.Value
	assert.Contains(t, md, "| "+formatF4(simpson)+" |")
}

func TestNewRenderer_Text(t *testing.T) {
	r, err := NewRenderer("text")
	require.NoError(t, err)

	out, err := r.Render(sampleReport(t))
	require.NoError(t, err)
	text := string(out)

	assert.Contains(t, text, "Biodiversity assessment: lake.csv")
	assert.Contains(t, text, "Final score")
	assert.Contains(t, text, "pielou")
	assert.Contains(t, text, "Sander lucioperca")
	assert.Contains(t, text, "note: 1 species with zero count ignored")
}

func TestGlyphs(t *testing.T) {
	tests := []struct {
		value float64
		want  Decomposition
	}{
		{0, Decomposition{Full: 0, PartialPercent: 0, Empty: 5}},
		{2.47, Decomposition{Full: 2, PartialPercent: 47, Empty: 2}},
		{3, Decomposition{Full: 3, PartialPercent: 0, Empty: 2}},
		{4.29, Decomposition{Full: 4, PartialPercent: 29, Empty: 0}},
		{5, Decomposition{Full: 5, PartialPercent: 0, Empty: 0}},
		{6.65, Decomposition{Full: 6, PartialPercent: 65, Empty: 0}},
		{-1, Decomposition{Full: 0, PartialPercent: 0, Empty: 5}},
	}
	for _, tt := range tests {
		got := Glyphs(scoring.NewStarRating(tt.value))
		assert.Equal(t, tt.want, got, "value %g", tt.value)
		assert.GreaterOrEqual(t, got.Empty, 0)
	}
}

func TestDecompositionString(t *testing.T) {
	assert.Equal(t, "★★⯨☆☆", Glyphs(scoring.NewStarRating(2.47)).String())
	assert.Equal(t, "☆☆☆☆☆", Glyphs(scoring.StarRating{}).String())
	assert.Equal(t, "★★★★★", Glyphs(scoring.NewStarRating(5)).String())
}

func formatF4(v float64) string {
	return mdFuncs["f4"].(func(float64) string)(v)
}
