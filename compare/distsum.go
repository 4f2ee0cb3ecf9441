package compare

// distSumWindow is the number of surviving records summed per position
// (the record itself plus distSumWindow/2 neighbors on each side).
const distSumWindow = 5

// distSum replaces every record's distance with the sum of raw distances
// over its window of neighboring surviving records within the same
// chromosome+strand run.  The window is over surviving records, not genomic
// coordinates: a filtered-out position does not widen the window, the
// nearest survivors are used.  Windows shrink at run boundaries.
//
// This is a whole-pass transform; it reads raw distances of records computed
// after the one being adjusted, so it must run only once all distances are
// known.
func distSum(recs []Record) {
	span := distSumWindow / 2
	raw := make([]float64, len(recs))
	for i := range recs {
		raw[i] = recs[i].Dist
	}
	for start := 0; start < len(recs); {
		end := start + 1
		for end < len(recs) &&
			recs[end].Chrom == recs[start].Chrom &&
			recs[end].Strand == recs[start].Strand {
			end++
		}
		for i := start; i < end; i++ {
			lo, hi := i-span, i+span
			if lo < start {
				lo = start
			}
			if hi > end-1 {
				hi = end - 1
			}
			sum := 0.0
			for j := lo; j <= hi; j++ {
				sum += raw[j]
			}
			recs[i].Dist = sum
		}
		start = end
	}
}
