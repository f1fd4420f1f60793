package scoring

// RatingResult captures one index's star rating and its contribution to
// the final score.
type RatingResult struct {
	Index      Index      `json:"index"`
	Value      float64    `json:"value"`
	Max        float64    `json:"theoretical_max"`
	Policy     Policy     `json:"policy"`
	Stars      StarRating `json:"stars"`
	Weight     float64    `json:"weight"`
	Weighted   float64    `json:"weighted"`
	Degenerate bool       `json:"degenerate,omitempty"`
	Overflow   bool       `json:"overflow,omitempty"`
}

// Ratings holds the per-index ratings of one assessment.
type Ratings struct {
	Simpson  RatingResult `json:"simpson"`
	Shannon  RatingResult `json:"shannon"`
	Pielou   RatingResult `json:"pielou"`
	Margalef RatingResult `json:"margalef"`
}

// All returns the ratings in presentation order.
func (r Ratings) All() []RatingResult {
	return []RatingResult{r.Simpson, r.Shannon, r.Pielou, r.Margalef}
}

func (r *Ratings) set(res RatingResult) {
	switch res.Index {
	case IndexSimpson:
		r.Simpson = res
	case IndexShannon:
		r.Shannon = res
	case IndexPielou:
		r.Pielou = res
	case IndexMargalef:
		r.Margalef = res
	}
}
