package compare

import (
	"github.com/grailbio/nodclust/signal"
)

// Unit is the comparison unit: the two datasets' position groups for one
// surviving (chrom, strand, pos).  Both sides are non-empty and meet the
// coverage threshold; the Filter stage guarantees this before the distance
// stage runs.
type Unit struct {
	Key  signal.Key
	X, Y *signal.PositionGroup
}

// Coverage returns the unit's reported read count: the minimum of the two
// sides.  The minimum is what -min-coverage actually bounds, so it is the
// number that keeps the output column interpretable against the flag.
func (u *Unit) Coverage() int {
	cx, cy := u.X.Coverage(), u.Y.Coverage()
	if cx < cy {
		return cx
	}
	return cy
}

// filterGroups applies the per-side predicates (acid, chromosome, strand,
// position bounds, coverage) to one dataset's sorted groups.  An acid that
// disagrees with a requested, non-forced -acid fails; with -force-acid the
// group is reinterpreted instead.
func filterGroups(groups []*signal.PositionGroup, c *config) ([]*signal.PositionGroup, error) {
	kept := groups[:0:0]
	for _, g := range groups {
		if c.acid != signal.AcidAuto && g.Key.Acid != c.acid {
			if !c.forceAcid {
				return nil, signal.TypeMismatchErrorf(
					"position %s has acid %s but -acid %s was requested (use -force-acid to override)",
					g.Key, g.Key.Acid, c.acid)
			}
			// Reinterpreted, not rejected.  The group itself is shared with
			// the index, so only the local key copy changes.
			g = &signal.PositionGroup{Key: g.Key, Obs: g.Obs}
			g.Key.Acid = c.acid
		}
		if c.chromosome != nil && !c.chromosome.MatchString(g.Key.Chrom) {
			continue
		}
		if c.strand != signal.StrandNone && g.Key.Strand != c.strand {
			continue
		}
		if c.fromPos != 0 && g.Key.Pos < c.fromPos {
			continue
		}
		if c.toPos != 0 && g.Key.Pos > c.toPos {
			continue
		}
		if g.Coverage() < c.minCoverage {
			continue
		}
		kept = append(kept, g)
	}
	return kept, nil
}

// pairUnits merges the two filtered, sorted group slices into comparison
// units for the keys present on both sides.  No match is not an error;
// downstream stages treat an empty unit slice as a valid, terminal case.
func pairUnits(xs, ys []*signal.PositionGroup, c *config) ([]Unit, error) {
	units := make([]Unit, 0, minInt(len(xs), len(ys)))
	i, j := 0, 0
	for i < len(xs) && j < len(ys) {
		x, y := xs[i], ys[j]
		switch {
		case x.Key.Less(y.Key):
			i++
		case y.Key.Less(x.Key):
			j++
		default:
			acid := x.Key.Acid
			if y.Key.Acid != acid {
				if !c.forceAcid {
					return nil, signal.TypeMismatchErrorf(
						"datasets disagree on acid at %s (%s vs %s); use -acid with -force-acid to override",
						x.Key, x.Key.Acid, y.Key.Acid)
				}
				acid = c.acid
			}
			key := x.Key
			key.Acid = acid
			units = append(units, Unit{Key: key, X: x, Y: y})
			i++
			j++
		}
	}
	return units, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
