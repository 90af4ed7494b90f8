package bias

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Heuristic thresholds. They are fixed and intentionally not configurable.
const (
	// Numeric columns with fewer distinct values than this are treated as categories.
	CategoricalDistinctLimit = 10
	TopValueShareLimit       = 0.70
	RelativeEntropyFloor     = 0.60
	TopBinShareLimit         = 0.50
	SkewLimit                = 1.0
	// Bins is the number of equal-width bins used for numeric columns.
	Bins = 5
)

// AnalyzeValues analyzes a named sequence of values with a declared type.
func AnalyzeValues(name string, values []Value, t ValueType) (*Result, error) {
	return Analyze(&Column{Name: name, Type: t, Values: values})
}

// Analyze drops missing values from col, classifies it, and computes its
// distribution and bias verdict. It fails with *EmptyColumnError when nothing
// is left after cleaning. Analyze does not modify col.
//
// A column declared numeric that holds any textual value is analyzed as text.
func Analyze(col *Column) (*Result, error) {
	clean := make([]Value, 0, len(col.Values))
	numeric := col.Type == NumericType
	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		if !v.IsNumber() {
			numeric = false
		}
		clean = append(clean, v)
	}
	if len(clean) == 0 {
		return nil, &EmptyColumnError{Column: col.Name}
	}
	if !numeric {
		// Categories are compared by label, so 1 and "1" are one category.
		for i, v := range clean {
			if v.IsNumber() {
				clean[i] = Text(v.String())
			}
		}
	}

	keys, counts := tally(clean)
	res := &Result{
		Column:   col.Name,
		Count:    len(clean),
		Missing:  len(col.Values) - len(clean),
		Distinct: len(keys),
	}
	if !numeric || len(keys) < CategoricalDistinctLimit {
		analyzeCategorical(res, keys, counts)
		return res, nil
	}
	xs := make([]float64, len(clean))
	for i, v := range clean {
		xs[i], _ = v.Float()
	}
	analyzeNumeric(res, xs)
	return res, nil
}

// tally counts distinct values in order of first appearance.
func tally(vals []Value) ([]Value, []int) {
	index := make(map[Value]int)
	var keys []Value
	var counts []int
	for _, v := range vals {
		i, ok := index[v]
		if !ok {
			i = len(keys)
			index[v] = i
			keys = append(keys, v)
			counts = append(counts, 0)
		}
		counts[i]++
	}
	return keys, counts
}

func analyzeCategorical(res *Result, keys []Value, counts []int) {
	n := float64(res.Count)
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c) / n
	}
	top := floats.Max(p)

	// stat.Entropy works in nats.
	ent := math.Max(0, stat.Entropy(p)/math.Ln2)
	maxEnt := 1.0
	if len(keys) > 1 {
		maxEnt = math.Log2(float64(len(keys)))
	}
	rel := ent / maxEnt

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })
	res.Distribution = make([]Share, len(order))
	for i, j := range order {
		res.Distribution[i] = Share{Label: keys[j].String(), Percent: round2(p[j] * 100)}
	}

	res.Kind = Categorical
	res.TopShare = top
	res.Categorical = &CategoricalStats{Entropy: round2(ent), RelativeEntropy: round2(rel)}
	if top > TopValueShareLimit {
		res.Reasons = append(res.Reasons, fmt.Sprintf("top value share %.2f%% exceeds %.0f%%", top*100, TopValueShareLimit*100))
	}
	if rel < RelativeEntropyFloor {
		res.Reasons = append(res.Reasons, fmt.Sprintf("relative entropy %.2f below %.2f", rel, RelativeEntropyFloor))
	}
	res.Biased = len(res.Reasons) > 0
}

func analyzeNumeric(res *Result, xs []float64) {
	lo, hi := floats.Min(xs), floats.Max(xs)
	edges := binEdges(lo, hi, Bins)
	counts := make([]int, Bins)
	for _, x := range xs {
		counts[binIndex(edges, x)]++
	}

	n := float64(len(xs))
	labels := binLabels(edges)
	res.Distribution = make([]Share, Bins)
	top := 0.0
	for i, c := range counts {
		share := float64(c) / n
		if share > top {
			top = share
		}
		res.Distribution[i] = Share{Label: labels[i], Percent: round2(share * 100)}
	}

	// A single repeated value has no defined skewness.
	skew := 0.0
	if lo != hi {
		skew = stat.Skew(xs, nil)
		if math.IsNaN(skew) || math.IsInf(skew, 0) {
			skew = 0
		}
	}
	mean, _ := stats.Mean(xs)
	std, _ := stats.StandardDeviationSample(xs)
	if math.IsNaN(std) {
		std = 0
	}

	res.Kind = Numeric
	res.TopShare = top
	res.Numeric = &NumericStats{Skew: round2(skew), Min: lo, Max: hi, Mean: mean, Std: std}
	if top > TopBinShareLimit {
		res.Reasons = append(res.Reasons, fmt.Sprintf("top bin share %.2f%% exceeds %.0f%%", top*100, TopBinShareLimit*100))
	}
	if math.Abs(skew) > SkewLimit {
		res.Reasons = append(res.Reasons, fmt.Sprintf("|skew| %.2f exceeds %.1f", math.Abs(skew), SkewLimit))
	}
	res.Biased = len(res.Reasons) > 0
}

// round2 rounds half to even at two decimals and never returns -0.
func round2(x float64) float64 {
	r := math.RoundToEven(x*100) / 100
	if r == 0 {
		return 0
	}
	return r
}
