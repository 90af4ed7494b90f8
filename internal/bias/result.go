package bias

import "fmt"

// Kind is the analysis path a column was routed to.
type Kind int

const (
	Categorical Kind = iota
	Numeric
)

func (k Kind) String() string {
	if k == Numeric {
		return "numeric"
	}
	return "categorical"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "categorical":
		*k = Categorical
	case "numeric":
		*k = Numeric
	default:
		return fmt.Errorf("unknown column kind %q", string(b))
	}
	return nil
}

// Share is one distribution entry: a category or bin label and its percentage
// of the cleaned column, rounded to two decimals.
type Share struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

// CategoricalStats holds the entropy metrics of a categorical column.
type CategoricalStats struct {
	Entropy         float64 `json:"entropy"`
	RelativeEntropy float64 `json:"relative_entropy"`
}

// NumericStats holds the shape metrics of a numeric column.
type NumericStats struct {
	Skew float64 `json:"skew"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// Result is the outcome of analyzing one column. It is never mutated after
// Analyze returns it.
type Result struct {
	Column       string            `json:"column"`
	Kind         Kind              `json:"kind"`
	Count        int               `json:"count"`
	Missing      int               `json:"missing"`
	Distinct     int               `json:"distinct"`
	Distribution []Share           `json:"distribution"`
	TopShare     float64           `json:"top_share"`
	Categorical  *CategoricalStats `json:"categorical,omitempty"`
	Numeric      *NumericStats     `json:"numeric,omitempty"`
	Biased       bool              `json:"biased"`
	Reasons      []string          `json:"reasons,omitempty"`
}

// Entropy returns the base-2 entropy for categorical results and 0 otherwise.
func (r *Result) Entropy() float64 {
	if r.Categorical == nil {
		return 0
	}
	return r.Categorical.Entropy
}

// RelativeEntropy returns entropy normalized by its maximum for categorical
// results and 0 otherwise.
func (r *Result) RelativeEntropy() float64 {
	if r.Categorical == nil {
		return 0
	}
	return r.Categorical.RelativeEntropy
}

// Skew returns the sample skewness for numeric results and 0 otherwise.
func (r *Result) Skew() float64 {
	if r.Numeric == nil {
		return 0
	}
	return r.Numeric.Skew
}

// Total sums the distribution percentages. It is within rounding of 100.
func (r *Result) Total() float64 {
	var t float64
	for _, s := range r.Distribution {
		t += s.Percent
	}
	return t
}
