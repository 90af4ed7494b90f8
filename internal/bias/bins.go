package bias

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// labelPrecision is the minimum number of significant fraction digits kept
// when printing bin edges.
const labelPrecision = 3

// binEdges returns n+1 equal-width edges over [lo, hi]. Bins are right-closed,
// so the lowest edge is pulled down by 0.1% of the range to keep lo inside the
// first bin. When lo == hi the range is widened around the value instead.
func binEdges(lo, hi float64, n int) []float64 {
	edges := make([]float64, n+1)
	if lo == hi {
		adj := 0.001
		if lo != 0 {
			adj = 0.001 * math.Abs(lo)
		}
		floats.Span(edges, lo-adj, hi+adj)
		return edges
	}
	floats.Span(edges, lo, hi)
	edges[n] = hi
	edges[0] -= (hi - lo) * 0.001
	return edges
}

// binIndex locates x in the right-closed bins described by edges.
// x must lie in (edges[0], edges[len-1]].
func binIndex(edges []float64, x float64) int {
	i := sort.SearchFloat64s(edges, x) - 1
	if i < 0 {
		return 0
	}
	if i > len(edges)-2 {
		return len(edges) - 2
	}
	return i
}

// binLabels renders each bin as "(lo, hi]". Edges are rounded to the smallest
// precision that keeps them distinct.
func binLabels(edges []float64) []string {
	prec := inferPrecision(edges)
	rounded := make([]string, len(edges))
	for i, e := range edges {
		rounded[i] = formatEdge(roundFrac(e, prec))
	}
	labels := make([]string, len(edges)-1)
	for i := range labels {
		labels[i] = "(" + rounded[i] + ", " + rounded[i+1] + "]"
	}
	return labels
}

func inferPrecision(edges []float64) int {
	for prec := labelPrecision; prec < 20; prec++ {
		seen := make(map[float64]struct{}, len(edges))
		for _, e := range edges {
			seen[roundFrac(e, prec)] = struct{}{}
		}
		if len(seen) == len(edges) {
			return prec
		}
	}
	return labelPrecision
}

// roundFrac keeps prec digits after the decimal point, or prec significant
// digits when |x| < 1.
func roundFrac(x float64, prec int) float64 {
	if x == 0 || math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	digits := prec
	if whole, _ := math.Modf(x); whole == 0 {
		digits = -int(math.Floor(math.Log10(math.Abs(x)))) - 1 + prec
	}
	p := math.Pow(10, float64(digits))
	return math.RoundToEven(x*p) / p
}

// formatEdge prints the shortest round-trip form of x, always with a
// fractional part or an exponent ("20.0", "-0.1", "1e+16").
func formatEdge(x float64) string {
	if x == 0 {
		return "0.0"
	}
	exp := int(math.Floor(math.Log10(math.Abs(x))))
	if exp < -4 || exp >= 16 {
		return strconv.FormatFloat(x, 'e', -1, 64)
	}
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
