package scoring

import (
	"math"
	"testing"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", w.Sum())
	}
}

func TestWeightSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		w       WeightSet
		wantErr bool
	}{
		{"default", DefaultWeights(), false},
		{"margalef only", WeightSet{Margalef: 1}, false},
		{"within tolerance", WeightSet{Margalef: 0.5, Pielou: 0.5005}, false},
		{"short", WeightSet{Margalef: 0.5, Pielou: 0.4}, true},
		{"negative", WeightSet{Margalef: 1.2, Pielou: -0.2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWeightSetOf(t *testing.T) {
	w := DefaultWeights()
	if w.Of(IndexMargalef) != 0.55 || w.Of(IndexPielou) != 0.45 {
		t.Errorf("unexpected weights %+v", w)
	}
	if w.Of(IndexSimpson) != 0 || w.Of(IndexShannon) != 0 {
		t.Error("simpson and shannon must not be weighted")
	}
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		margalef float64
		pielou   float64
		clamp    bool
		want     float64
		overflow bool
	}{
		{"reference", 4, 0.6, false, 2.47, false},
		{"perfect", 5, 5, false, 5, false},
		{"zero", 0, 0, false, 0, false},
		{"rounding", 3, 3.3333333, false, 3.15, false},
		{"overflow passes through", 8, 5, false, 6.65, true},
		{"overflow clamped", 8, 5, true, 5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Combine(DefaultWeights(), tt.margalef, tt.pielou, tt.clamp)
			if got.Value != tt.want {
				t.Errorf("Combine() = %v, want %v", got.Value, tt.want)
			}
			if got.Overflow != tt.overflow {
				t.Errorf("overflow = %v, want %v", got.Overflow, tt.overflow)
			}
			if got.Stars.Value != got.Value {
				t.Errorf("stars %v do not follow value %v", got.Stars.Value, got.Value)
			}
		})
	}
}

func TestCombineDecomposition(t *testing.T) {
	got := Combine(DefaultWeights(), 4, 0.6, false)
	if got.Stars.Full != 2 {
		t.Errorf("full = %d, want 2", got.Stars.Full)
	}
	if math.Abs(got.Stars.Fraction-0.47) > 1e-9 {
		t.Errorf("fraction = %f, want 0.47", got.Stars.Fraction)
	}
}
