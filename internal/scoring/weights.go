package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines how the Margalef and Pielou star values are blended
// into the final score. Weights must sum to 1.0 (±0.001 tolerance).
// Simpson and Shannon are reported but carry no weight.
type WeightSet struct {
	Margalef float64 `json:"margalef"`
	Pielou   float64 `json:"pielou"`
}

// DefaultWeights returns the 55/45 richness-over-evenness distribution.
func DefaultWeights() WeightSet {
	return WeightSet{
		Margalef: 0.55,
		Pielou:   0.45,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	return w.Margalef + w.Pielou
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	for _, v := range []float64{w.Margalef, w.Pielou} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	return nil
}

// Of returns the weight applied to idx in the final score.
func (w WeightSet) Of(idx Index) float64 {
	switch idx {
	case IndexMargalef:
		return w.Margalef
	case IndexPielou:
		return w.Pielou
	}
	return 0
}
