package compare

import (
	"testing"

	"github.com/grailbio/testutil/expect"

	"github.com/grailbio/nodclust/signal"
)

func fwdRecord(chrom string, pos int64, dist float64) Record {
	return Record{Chrom: chrom, Strand: signal.StrandFwd, Pos: pos, Dist: dist}
}

func dists(recs []Record) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.Dist
	}
	return out
}

func TestDistSumWindow(t *testing.T) {
	recs := []Record{
		fwdRecord("chr1", 1, 1),
		fwdRecord("chr1", 2, 10),
		fwdRecord("chr1", 3, 100),
		fwdRecord("chr1", 4, 1000),
		fwdRecord("chr1", 5, 10000),
	}
	distSum(recs)
	// Window of 5 surviving records, shrinking at the run edges.
	expect.EQ(t, dists(recs), []float64{111, 1111, 11111, 11110, 11100})
}

func TestDistSumIgnoresGenomicGaps(t *testing.T) {
	// Positions 2 and 50 are genomic strangers but adjacent survivors; the
	// window is over surviving records, so they still sum together.
	recs := []Record{
		fwdRecord("chr1", 1, 1),
		fwdRecord("chr1", 2, 10),
		fwdRecord("chr1", 50, 100),
	}
	distSum(recs)
	expect.EQ(t, dists(recs), []float64{111, 111, 111})
}

func TestDistSumRunBoundaries(t *testing.T) {
	// Neither a chromosome change nor a strand change lets the window span
	// across.
	recs := []Record{
		fwdRecord("chr1", 1, 1),
		fwdRecord("chr1", 2, 10),
		{Chrom: "chr1", Strand: signal.StrandRev, Pos: 3, Dist: 100},
		fwdRecord("chr2", 1, 1000),
	}
	distSum(recs)
	expect.EQ(t, dists(recs), []float64{11, 11, 100, 1000})
}

func TestDistSumSingleRecord(t *testing.T) {
	recs := []Record{fwdRecord("chr1", 7, 2.5)}
	distSum(recs)
	expect.EQ(t, dists(recs), []float64{2.5})
}
