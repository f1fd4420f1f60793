package render

import (
	"strings"

	"github.com/MikeSquared-Agency/Biotope/internal/scoring"
)

const (
	glyphFull    = "★"
	glyphPartial = "⯨"
	glyphEmpty   = "☆"
)

// Decomposition is how a star value is drawn: Full whole stars, one partial
// star filled PartialPercent percent when PartialPercent > 0, then Empty
// outline stars up to five. Overflowing values draw more than five full
// stars and no empty ones.
type Decomposition struct {
	Full           int `json:"full"`
	PartialPercent int `json:"partial_percent"`
	Empty          int `json:"empty"`
}

// Glyphs decomposes a rating for drawing. The percentage is truncated, with a
// small allowance for float noise so 2.47 draws 47% and not 46%.
func Glyphs(sr scoring.StarRating) Decomposition {
	d := Decomposition{Full: max(sr.Full, 0)}
	if sr.Fraction > 0 {
		d.PartialPercent = min(int(sr.Fraction*100+1e-9), 99)
	}
	used := d.Full
	if d.PartialPercent > 0 {
		used++
	}
	d.Empty = max(int(scoring.MaxStars)-used, 0)
	return d
}

// HasPartial reports whether a partial star is drawn.
func (d Decomposition) HasPartial() bool { return d.PartialPercent > 0 }

// String draws the decomposition with plain glyphs.
func (d Decomposition) String() string {
	var b strings.Builder
	b.WriteString(strings.Repeat(glyphFull, d.Full))
	if d.HasPartial() {
		b.WriteString(glyphPartial)
	}
	b.WriteString(strings.Repeat(glyphEmpty, d.Empty))
	return b.String()
}
