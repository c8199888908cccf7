package raster

import (
	"math"
	"sort"
)

// NiceStep returns a 1, 2, 2.5 or 5 times power-of-ten step that splits
// span into about n intervals.
func NiceStep(span float64, n int) float64 {
	if span <= 0 || n <= 0 {
		return 1
	}
	raw := span / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if raw <= m*mag {
			return m * mag
		}
	}
	return 10 * mag
}

// AutoLevels returns ascending contour levels covering [lo, hi].
func AutoLevels(lo, hi float64, n int) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if lo == hi {
		return []float64{lo - 0.5, lo + 0.5}
	}
	step := NiceStep(hi-lo, n)
	start := math.Floor(lo/step) * step
	out := []float64{start}
	for k := 1; out[len(out)-1] < hi; k++ {
		out = append(out, start+float64(k)*step)
	}
	if len(out) < 2 {
		out = append(out, start+step)
	}
	return out
}

// band returns the index of the interval [levels[i], levels[i+1]] holding v,
// or -1 when v lies outside the levels.
func band(levels []float64, v float64) int {
	n := len(levels)
	if n < 2 || math.IsNaN(v) || v < levels[0] || v > levels[n-1] {
		return -1
	}
	i := sort.SearchFloat64s(levels, v)
	// SearchFloat64s gives the first level >= v
	if i == 0 {
		return 0
	}
	return min(i-1, n-2)
}

// bandT positions band i on the colormap by its midpoint.
func bandT(levels []float64, i int) float64 {
	lo, hi := levels[0], levels[len(levels)-1]
	if hi == lo {
		return 0.5
	}
	return ((levels[i]+levels[i+1])/2 - lo) / (hi - lo)
}
