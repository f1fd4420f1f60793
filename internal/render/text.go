package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MikeSquared-Agency/Biotope/internal/report"
	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
)

const (
	colorGold = lipgloss.Color("#FFD700")
	colorGrey = lipgloss.Color("#D3D3D3")
	colorFaint = lipgloss.Color("#808080")
)

// textRenderer draws a terminal summary. Colors are dropped automatically
// when stdout is not a terminal.
type textRenderer struct {
	full    lipgloss.Style
	empty   lipgloss.Style
	label   lipgloss.Style
	faint   lipgloss.Style
	heading lipgloss.Style
	final   lipgloss.Style
}

func newTextRenderer() *textRenderer {
	return &textRenderer{
		full:    lipgloss.NewStyle().Foreground(colorGold),
		empty:   lipgloss.NewStyle().Foreground(colorGrey),
		label:   lipgloss.NewStyle().Width(10),
		faint:   lipgloss.NewStyle().Foreground(colorFaint),
		heading: lipgloss.NewStyle().Bold(true).Underline(true),
		final: lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGold).
			Padding(0, 2),
	}
}

func (r *textRenderer) stars(sr scoring.StarRating) string {
	d := Glyphs(sr)
	s := r.full.Render(strings.Repeat(glyphFull, d.Full))
	if d.HasPartial() {
		s += r.full.Render(glyphPartial)
	}
	return s + r.empty.Render(strings.Repeat(glyphEmpty, d.Empty))
}

func (r *textRenderer) Render(rep *report.Report) ([]byte, error) {
	a := rep.Assessment
	var b strings.Builder

	fmt.Fprintln(&b, r.heading.Render(rep.Title()))
	fmt.Fprintln(&b, r.faint.Render(fmt.Sprintf("S=%d  N=%g", a.Richness, a.Abundance)))
	fmt.Fprintln(&b)

	for _, res := range a.Ratings.All() {
		fmt.Fprintf(&b, "%s %8.4f  %s  %.2f\n",
			r.label.Render(string(res.Index)), res.Value, r.stars(res.Stars), res.Stars.Value)
	}
	fmt.Fprintln(&b)

	final := fmt.Sprintf("Final score  %s  %.2f / 5", r.stars(a.Final.Stars), a.Final.Value)
	fmt.Fprintln(&b, r.final.Render(final))

	for _, n := range a.Notes {
		fmt.Fprintln(&b, r.faint.Render("note: "+n))
	}

	if len(rep.Species) > 0 {
		fmt.Fprintln(&b)
		title := "Species"
		if len(rep.Input.Groups) > 0 {
			title += " (" + strings.Join(rep.Input.Groups, ", ") + ")"
		}
		fmt.Fprintln(&b, r.heading.Render(title))
		for _, e := range rep.Species {
			fmt.Fprintf(&b, "  %s %s %g\n",
				lipgloss.NewStyle().Width(16).Render(e.Group),
				lipgloss.NewStyle().Width(28).Render(e.Specie),
				e.Count)
		}
	}
	return []byte(b.String()), nil
}
