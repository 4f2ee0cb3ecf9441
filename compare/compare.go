// Copyright 2021 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package compare implements the unsupervised two-dataset comparison: paired
// per-position signal groups are (optionally) resampled, scored with the
// two-sample Kuiper statistic, smoothed with a window sum over neighboring
// survivors, and split into positive/negative labels by 1-D two-group
// clustering.  No trained model anywhere; the pipeline is a deterministic
// function of the two inputs and the random seed.
package compare

import (
	"context"
	"time"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"

	"github.com/grailbio/nodclust/signal"
)

// Record is the final per-position result, ordered by (chrom, strand, pos).
type Record struct {
	Chrom    string
	Strand   signal.StrandType
	Pos      signal.PosType // 1-based
	Coverage int            // min of the two sides' read counts
	Dist     float64        // Kuiper distance, window-summed unless disabled
	Positive bool
}

// Run compares two ingested datasets and returns the labeled records.
//
// Positions are independent through the filter/resample/distance stages, so
// those run across workers writing disjoint slots of the preallocated record
// slice; the window sum and the clustering are whole-collection passes and
// run after that barrier.  Worker scheduling cannot affect the output: each
// position's resampling draws from its own key-derived sub-stream.
func Run(ctx context.Context, xs, ys *signal.Index, opts *Opts) ([]Record, error) {
	c, err := opts.validate()
	if err != nil {
		return nil, err
	}
	if !c.seedChosen && c.resample > 0 {
		c.seed = time.Now().UnixNano()
		log.Printf("compare: using random seed %d (pass -random-seed=%d to reproduce this run)", c.seed, c.seed)
	}

	xg, err := filterGroups(xs.Groups(), &c)
	if err != nil {
		return nil, err
	}
	yg, err := filterGroups(ys.Groups(), &c)
	if err != nil {
		return nil, err
	}
	units, err := pairUnits(xg, yg, &c)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		// Not an error: overly strict filters legitimately produce an empty
		// result, and the caller emits an empty file.
		log.Printf("compare: no position survived filtering on both datasets, emitting no records")
		return []Record{}, nil
	}
	log.Printf("compare: %d comparison units (%d/%d positions survived filtering)", len(units), len(xg), len(yg))

	recs := make([]Record, len(units))
	hashKey := seedHashKey(c.seed)
	nUnit := len(units)
	parallelism := minInt(c.parallelism, nUnit)
	if err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * nUnit) / parallelism
		endIdx := ((jobIdx + 1) * nUnit) / parallelism
		for i := startIdx; i < endIdx; i++ {
			u := &units[i]
			xvals, yvals := resampleUnit(u, &c, &hashKey)
			recs[i] = Record{
				Chrom:    u.Key.Chrom,
				Strand:   u.Key.Strand,
				Pos:      u.Key.Pos,
				Coverage: u.Coverage(),
				Dist:     kuiper(xvals, yvals),
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	// Barrier: every raw distance is known from here on.
	if c.distSum {
		distSum(recs)
	}
	labelRecords(recs)
	return recs, nil
}
