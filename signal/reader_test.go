package signal_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/nodclust/signal"
)

const squiggleHeader = "read_id\tchrom\tstrand\tpos\tacid\tvalues\n"

func writeSquiggles(t *testing.T, dir, name, body string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, ioutil.WriteFile(path, []byte(squiggleHeader+body), 0644))
	return path
}

func TestReadSquiggleTSV(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	path := writeSquiggles(t, tmpdir, "xs.tsv",
		"read0\tchr1\t+\t100\tdna\t0.5,0.25,-1.5\n"+
			"read1\tchr1\t+\t100\tdna\t1.0\n"+
			"read0\tchr1\t+\t101\tdna\t0.125\n"+
			"read2\tchr1\t-\t100\tdna\t.\n")
	idx, err := signal.ReadSquiggleTSV(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 2, idx.Len())

	groups := idx.Groups()
	expect.EQ(t, groups[0].Key, signal.Key{Chrom: "chr1", Strand: signal.StrandFwd, Pos: 100, Acid: signal.AcidDNA})
	expect.EQ(t, groups[0].Coverage(), 2)
	expect.EQ(t, groups[0].PooledValues(), []float64{0.5, 0.25, -1.5, 1.0})
	expect.EQ(t, groups[1].Key, signal.Key{Chrom: "chr1", Strand: signal.StrandFwd, Pos: 101, Acid: signal.AcidDNA})
	expect.EQ(t, groups[1].Coverage(), 1)
}

func TestReadSquiggleTSVMalformed(t *testing.T) {
	tmpdir, cleanup := testutil.TempDir(t, "", "")
	defer testutil.NoCleanupOnError(t, cleanup, tmpdir)
	ctx := vcontext.Background()

	for _, body := range []string{
		"read0\tchr1\t+\t100\tdna\tnot-a-number\n",
		"read0\tchr1\t+\t0\tdna\t1.0\n",
		"read0\tchr1\t*\t100\tdna\t1.0\n",
		"read0\tchr1\t+\t100\tprotein\t1.0\n",
		"read0\tchr1\t+\t100\tdna\n",
		// Duplicate read at the same position.
		"read0\tchr1\t+\t100\tdna\t1.0\nread0\tchr1\t+\t100\tdna\t2.0\n",
		// Mixed acids at the same position.
		"read0\tchr1\t+\t100\tdna\t1.0\nread1\tchr1\t+\t100\trna\t2.0\n",
	} {
		path := writeSquiggles(t, tmpdir, "bad.tsv", body)
		_, err := signal.ReadSquiggleTSV(ctx, path)
		require.Error(t, err, "body: %q", body)
		assert.True(t, signal.IsMalformedInput(err), "body: %q", body)
	}
}
