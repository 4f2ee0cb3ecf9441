package compare

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"

	"github.com/grailbio/nodclust/signal"
)

// WriteBED writes the records as an annotated bedMethyl-style file, gzipped
// when path ends in .gz.  Columns 1-11 follow the bedMethyl layout (unused
// ones hold "_"); column 12 is the distance, column 13 the pos/neg label.
// Records arrive already sorted by (chrom, strand, pos), so this is a
// straight pass-through.
func WriteBED(ctx context.Context, path string, recs []Record) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, dst, &err)

	var w io.Writer = dst.Writer(ctx)
	if strings.HasSuffix(path, ".gz") {
		gzw := gzip.NewWriter(w)
		defer func() {
			if e := gzw.Close(); e != nil && err == nil {
				err = e
			}
		}()
		w = gzw
	}
	tsvw := tsv.NewWriter(w)
	for i := range recs {
		writeBEDLine(tsvw, &recs[i])
		if err = tsvw.EndLine(); err != nil {
			return
		}
	}
	return tsvw.Flush()
}

func writeBEDLine(tsvw *tsv.Writer, r *Record) {
	tsvw.WriteString(r.Chrom)                                 // col 1, chromosome
	tsvw.WriteString(strconv.FormatInt(r.Pos, 10))            // col 2, position from
	tsvw.WriteString(strconv.FormatInt(r.Pos+1, 10))          // col 3, position to
	tsvw.WriteString("_")                                     // col 4, item name
	tsvw.WriteString("_")                                     // col 5, score
	tsvw.WriteByte(signal.StrandTypeToASCIITable[r.Strand])   // col 6, strand
	tsvw.WriteString("_")                                     // col 7, thick start
	tsvw.WriteString("_")                                     // col 8, thick end
	tsvw.WriteString("_")                                     // col 9, color
	tsvw.WriteUint32(uint32(r.Coverage))                      // col 10, coverage
	tsvw.WriteString("_")                                     // col 11, methylation pct
	tsvw.WriteString(strconv.FormatFloat(r.Dist, 'f', 5, 64)) // col 12, kuiper distance
	if r.Positive {                                           // col 13, cluster label
		tsvw.WriteString("pos")
	} else {
		tsvw.WriteString("neg")
	}
}
