package scoring

// FinalScore is the single user-facing verdict on the 0-5 star scale.
type FinalScore struct {
	Value    float64    `json:"value"`
	Stars    StarRating `json:"stars"`
	Overflow bool       `json:"overflow,omitempty"`
}

// Combine blends the Margalef and Pielou star values:
//
//	weighted = w.Margalef*margalefStars + w.Pielou*pielouStars
//
// rounded to two decimals and decomposed on the linear 0-5 scale. When
// clampStars is false a weighted value above 5 is passed through and
// flagged as overflow.
func Combine(w WeightSet, margalefStars, pielouStars float64, clampStars bool) FinalScore {
	weighted := w.Margalef*margalefStars + w.Pielou*pielouStars
	value := roundTo(weighted, 2)
	overflow := value > MaxStars
	if clampStars {
		value = clamp(value, 0, MaxStars)
	}
	return FinalScore{
		Value:    value,
		Stars:    Normalize(value, MaxStars, PolicyLinear),
		Overflow: overflow,
	}
}
