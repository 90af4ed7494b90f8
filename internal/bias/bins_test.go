package bias

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBinLabels(t *testing.T) {
	got := binLabels(binEdges(0, 100, 5))
	want := []string{"(-0.1, 20.0]", "(20.0, 40.0]", "(40.0, 60.0]", "(60.0, 80.0]", "(80.0, 100.0]"}
	assert.Equal(t, want, got)
}

func TestBinIndex_RightClosed(t *testing.T) {
	edges := binEdges(0, 100, 5)
	tests := []struct {
		x    float64
		want int
	}{
		{0, 0},
		{20, 0},
		{20.0001, 1},
		{40, 1},
		{99.9, 4},
		{100, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, binIndex(edges, tt.x), "x=%v", tt.x)
	}
}

func TestBinEdges_SingleValue(t *testing.T) {
	edges := binEdges(5, 5, 5)
	assert.Len(t, edges, 6)
	assert.Less(t, edges[0], 5.0)
	assert.Greater(t, edges[5], 5.0)
	assert.Equal(t, 2, binIndex(edges, 5))

	zero := binEdges(0, 0, 5)
	assert.InDelta(t, -0.001, zero[0], 1e-15)
	assert.InDelta(t, 0.001, zero[5], 1e-15)
}

func TestRoundFrac(t *testing.T) {
	tests := []struct {
		x    float64
		prec int
		want float64
	}{
		{-0.099, 3, -0.099},
		{20.123456, 3, 20.123},
		{0.000123456, 3, 0.000123},
		{0, 3, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, roundFrac(tt.x, tt.prec), 1e-15, "x=%v", tt.x)
	}
}

func TestFormatEdge(t *testing.T) {
	tests := map[float64]string{
		0:       "0.0",
		20:      "20.0",
		-0.1:    "-0.1",
		0.901:   "0.901",
		1234.5:  "1234.5",
		1e16:    "1e+16",
		0.00001: "1e-05",
	}
	for x, want := range tests {
		assert.Equal(t, want, formatEdge(x))
	}
}
