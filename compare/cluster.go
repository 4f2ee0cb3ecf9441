package compare

import (
	"sort"

	"github.com/grailbio/base/log"
)

// cluster2 partitions the distances into the two groups minimizing the total
// within-group sum of squared deviations (1-D k-means with k=2), and returns
// the break value: the largest member of the lower-mean group.  Values
// strictly greater than the break are the "positive" group.
//
// ok is false in the degenerate cases (fewer than two distinct values),
// where no two-group partition exists and all records get the same label.
//
// Sort once, then a single prefix-sum scan over the n-1 candidate splits:
// O(n log n) overall, which matters at the 1e4..1e6 positions this runs on.
func cluster2(dists []float64) (breakVal float64, ok bool) {
	n := len(dists)
	if n < 2 {
		return 0, false
	}
	sorted := append([]float64(nil), dists...)
	sort.Float64s(sorted)
	if sorted[0] == sorted[n-1] {
		return 0, false
	}

	// prefix[i] = sum of sorted[:i]; prefixSq likewise for squares.
	prefix := make([]float64, n+1)
	prefixSq := make([]float64, n+1)
	for i, v := range sorted {
		prefix[i+1] = prefix[i] + v
		prefixSq[i+1] = prefixSq[i] + v*v
	}
	// Sum of squared deviations of sorted[i:j] about its own mean.
	sse := func(i, j int) float64 {
		sum := prefix[j] - prefix[i]
		return prefixSq[j] - prefixSq[i] - sum*sum/float64(j-i)
	}

	bestSplit := 1
	bestCost := sse(0, 1) + sse(1, n)
	for split := 2; split < n; split++ {
		if cost := sse(0, split) + sse(split, n); cost < bestCost {
			bestCost = cost
			bestSplit = split
		}
	}
	// The strict < above keeps the smallest optimal split, which in turn
	// guarantees the split never lands inside a trailing run of equal
	// values; with >=2 distinct values both groups are therefore non-empty
	// under the strictly-greater-than-break rule.
	return sorted[bestSplit-1], true
}

// labelRecords assigns the final positive/negative labels from the full
// collection of adjusted distances.  A single global pass; no state survives
// between runs.
func labelRecords(recs []Record) {
	dists := make([]float64, len(recs))
	for i := range recs {
		dists[i] = recs[i].Dist
	}
	breakVal, ok := cluster2(dists)
	if !ok {
		// Fewer than two distinct distances: everything is labeled negative
		// by convention rather than failing.
		log.Debug.Printf("compare: degenerate clustering over %d records, labeling all negative", len(recs))
		return
	}
	for i := range recs {
		recs[i].Positive = recs[i].Dist > breakVal
	}
}
