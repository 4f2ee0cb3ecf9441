package compare

import (
	"encoding/binary"
	"math/rand"

	"github.com/minio/highwayhash"

	"github.com/grailbio/nodclust/signal"
)

// Resampling must be reproducible and independent of worker scheduling, so
// there is no shared generator: every (key, side) derives its own sub-stream
// as a pure function of the global seed.  The derivation is a keyed
// highwayhash of the position key, with the global seed expanded into the
// 32-byte hash key.

func seedHashKey(seed int64) (key [32]byte) {
	s := uint64(seed)
	for i := 0; i < 4; i++ {
		s = s*6364136223846793005 + 1442695040888963407
		binary.LittleEndian.PutUint64(key[i*8:], s)
	}
	return
}

// subStream returns the deterministic random source for one side of one
// position.  side is 0 for the first dataset and 1 for the second, so the
// two sides draw independently.
func subStream(hashKey *[32]byte, k signal.Key, side byte) *rand.Rand {
	buf := make([]byte, 0, len(k.Chrom)+12)
	buf = append(buf, k.Chrom...)
	buf = append(buf, 0, byte(k.Strand), byte(k.Acid), side)
	var pos [8]byte
	binary.LittleEndian.PutUint64(pos[:], uint64(k.Pos))
	buf = append(buf, pos[:]...)
	return rand.New(rand.NewSource(int64(highwayhash.Sum64(buf, hashKey[:]))))
}

// resampleValues draws r values with replacement from vals.  Groups at or
// below the target size pass through unchanged, as does everything when
// resampling is disabled (r == 0).
func resampleValues(vals []float64, r int, rng *rand.Rand) []float64 {
	if r == 0 || len(vals) <= r {
		return vals
	}
	out := make([]float64, r)
	for i := range out {
		out[i] = vals[rng.Intn(len(vals))]
	}
	return out
}

// resampleUnit returns the two sides' (possibly resampled) pooled signal
// values for one comparison unit.
func resampleUnit(u *Unit, c *config, hashKey *[32]byte) (xvals, yvals []float64) {
	xvals = u.X.PooledValues()
	yvals = u.Y.PooledValues()
	if c.resample == 0 {
		return
	}
	xvals = resampleValues(xvals, c.resample, subStream(hashKey, u.Key, 0))
	yvals = resampleValues(yvals, c.resample, subStream(hashKey, u.Key, 1))
	return
}
