package compare

import (
	"math/rand"
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/nodclust/signal"
)

func TestResampleValuesPassThrough(t *testing.T) {
	vals := []float64{1, 2, 3}
	rng := rand.New(rand.NewSource(1))
	// Disabled, or already at/below the target size.
	expect.EQ(t, resampleValues(vals, 0, rng), vals)
	expect.EQ(t, resampleValues(vals, 3, rng), vals)
	expect.EQ(t, resampleValues(vals, 10, rng), vals)
}

func TestResampleValuesDraws(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	rng := rand.New(rand.NewSource(42))
	out := resampleValues(vals, 4, rng)
	require.Equal(t, 4, len(out))
	for _, v := range out {
		expect.True(t, v >= 1 && v <= 8)
	}
}

func TestSubStreamReproducible(t *testing.T) {
	key := signal.Key{Chrom: "chr1", Strand: signal.StrandFwd, Pos: 100, Acid: signal.AcidDNA}
	vals := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	hk1 := seedHashKey(42)
	hk2 := seedHashKey(42)
	a := resampleValues(append([]float64(nil), vals...), 5, subStream(&hk1, key, 0))
	b := resampleValues(append([]float64(nil), vals...), 5, subStream(&hk2, key, 0))
	// Same (key, seed, r): bit-for-bit identical draws, independent of
	// whatever else was drawn before.
	expect.EQ(t, a, b)
}

func TestSubStreamsIndependent(t *testing.T) {
	key := signal.Key{Chrom: "chr1", Strand: signal.StrandFwd, Pos: 100, Acid: signal.AcidDNA}
	hk := seedHashKey(42)

	// The two sides of a unit draw from distinct streams.
	require.NotEqual(t, subStream(&hk, key, 0).Int63(), subStream(&hk, key, 1).Int63())

	// Neighboring positions draw from distinct streams.
	next := key
	next.Pos++
	require.NotEqual(t, subStream(&hk, key, 0).Int63(), subStream(&hk, next, 0).Int63())

	// A different global seed changes the stream.
	hkOther := seedHashKey(43)
	require.NotEqual(t, subStream(&hk, key, 0).Int63(), subStream(&hkOther, key, 0).Int63())
}
