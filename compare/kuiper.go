package compare

import (
	"sort"
)

// kuiper returns the two-sample Kuiper statistic between the samples a and b:
// the maximum positive plus the maximum negative deviation between their
// empirical CDFs, evaluated over the pooled values.  Both terms are
// non-negative, so identical multisets score exactly 0 and order of
// observations never matters.  Sorts a and b in place.
func kuiper(a, b []float64) float64 {
	sort.Float64s(a)
	sort.Float64s(b)
	na, nb := float64(len(a)), float64(len(b))
	var dplus, dminus float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		// Step both ECDFs past the next pooled value before evaluating, so
		// ties contribute a single evaluation point.
		v := a[i]
		if b[j] < v {
			v = b[j]
		}
		for i < len(a) && a[i] == v {
			i++
		}
		for j < len(b) && b[j] == v {
			j++
		}
		d := float64(i)/na - float64(j)/nb
		if d > dplus {
			dplus = d
		}
		if -d > dminus {
			dminus = -d
		}
	}
	// Once one sample is exhausted its ECDF is pinned at 1, and the
	// remaining deviations only decay toward 0; no further maxima exist.
	return dplus + dminus
}
