package scoring

import "math"

// MaxStars is the top of the star scale.
const MaxStars = 5.0

// DefaultMargalefCeiling is the conventional theoretical maximum used to
// rate Margalef's index. It does not depend on richness.
const DefaultMargalefCeiling = 5.0

// snapTolerance absorbs floating point noise around whole star values, so
// a perfectly even table rates exactly 5 and not 5.000000000000001.
const snapTolerance = 1e-9

// Policy selects how an index value is mapped onto the star scale.
type Policy string

const (
	// PolicyLinear keeps the fractional remainder (partial stars).
	PolicyLinear Policy = "linear"
	// PolicyCeiling rounds up to whole stars.
	PolicyCeiling Policy = "ceiling"
)

func (p Policy) Valid() bool {
	return p == PolicyLinear || p == PolicyCeiling
}

// StarRating is a star value with its whole/fractional decomposition.
// Value is authoritative; Full and Fraction exist for glyph rendering.
type StarRating struct {
	Value    float64 `json:"value"`
	Full     int     `json:"full"`
	Fraction float64 `json:"fraction"`
}

// NewStarRating decomposes v into full stars and a remainder in [0, 1).
// Negative values rate as zero stars.
func NewStarRating(v float64) StarRating {
	if v <= 0 || math.IsNaN(v) {
		return StarRating{}
	}
	full := math.Floor(v)
	return StarRating{
		Value:    v,
		Full:     int(full),
		Fraction: v - full,
	}
}

// TheoreticalMax returns the highest value idx can reach for a table with
// the given richness. Margalef uses ceiling instead of a richness bound.
func TheoreticalMax(idx Index, richness int, margalefCeiling float64) float64 {
	switch idx {
	case IndexSimpson:
		if richness < 1 {
			return 0
		}
		return 1 - 1/float64(richness)
	case IndexShannon:
		if richness < 1 {
			return 0
		}
		return math.Log(float64(richness))
	case IndexPielou:
		return 1
	case IndexMargalef:
		return margalefCeiling
	}
	return 0
}

// Normalize maps value onto 0-5 stars against the theoretical maximum max,
// using step = max / 5. A non-positive max has no scale and yields zero
// stars. The result is not capped at 5.
func Normalize(value, max float64, policy Policy) StarRating {
	if max <= 0 || math.IsNaN(max) || math.IsInf(max, 0) {
		return StarRating{}
	}
	step := max / MaxStars
	v := snap(value / step)
	if policy == PolicyCeiling {
		v = math.Ceil(v)
	}
	return NewStarRating(v)
}

func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < snapTolerance {
		return r
	}
	return v
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
