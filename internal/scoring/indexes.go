package scoring

import "math"

// Index names one of the four supported diversity indexes.
type Index string

const (
	IndexSimpson  Index = "simpson"
	IndexShannon  Index = "shannon"
	IndexPielou   Index = "pielou"
	IndexMargalef Index = "margalef"
)

// Indexes lists every supported index in presentation order.
func Indexes() []Index {
	return []Index{IndexSimpson, IndexShannon, IndexPielou, IndexMargalef}
}

func (i Index) Valid() bool {
	switch i {
	case IndexSimpson, IndexShannon, IndexPielou, IndexMargalef:
		return true
	}
	return false
}

// Policy returns the star normalization policy used for the index.
// Margalef has no natural ceiling and is rated in whole stars.
func (i Index) Policy() Policy {
	if i == IndexMargalef {
		return PolicyCeiling
	}
	return PolicyLinear
}

// IndexSet holds the four diversity indexes of one abundance table.
type IndexSet struct {
	Simpson  float64 `json:"simpson"`
	Shannon  float64 `json:"shannon"`
	Pielou   float64 `json:"pielou"`
	Margalef float64 `json:"margalef"`
}

// Value returns the named index, or 0 for an unknown name.
func (s IndexSet) Value(i Index) float64 {
	switch i {
	case IndexSimpson:
		return s.Simpson
	case IndexShannon:
		return s.Shannon
	case IndexPielou:
		return s.Pielou
	case IndexMargalef:
		return s.Margalef
	}
	return 0
}

// ComputeIndexes derives Simpson's D', Shannon-Wiener H, Pielou's J and
// Margalef's D_Mg from a table.
//
//	p_i  = count_i / N
//	D'   = 1 - sum(p_i^2)
//	H    = -sum(p_i * ln p_i)
//	J    = H / ln S            (0 when S <= 1)
//	D_Mg = (S - 1) / ln N      (0 when ln N <= 0)
//
// S counts species with a positive count; zero-count species add nothing.
// Species are visited in sorted order so results are bit-for-bit stable.
func ComputeIndexes(table AbundanceTable) (IndexSet, error) {
	if err := table.Validate(); err != nil {
		return IndexSet{}, err
	}

	n := table.Abundance()
	s := table.Richness()

	var sumSquares, shannon float64
	for _, name := range table.Species() {
		c := table[name]
		if c <= 0 {
			continue
		}
		p := c / n
		sumSquares += p * p
		shannon -= p * math.Log(p)
	}

	set := IndexSet{
		Simpson: 1 - sumSquares,
		Shannon: shannon,
	}
	if s > 1 {
		set.Pielou = shannon / math.Log(float64(s))
	}
	if ln := math.Log(n); ln > 0 {
		set.Margalef = float64(s-1) / ln
	}
	return set, nil
}
