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
package compare

import (
	"fmt"
	"regexp"
	"runtime"

	"github.com/grailbio/nodclust/signal"
)

// Opts bundles the comparison's commandline options.
type Opts struct {
	// Acid restricts the comparison to "dna" or "rna" datasets;
	// "autodetect" accepts whatever the squiggle indexes declare.
	Acid string
	// ForceAcid reinterprets mismatching observations as Acid instead of
	// failing.
	ForceAcid bool
	// Chromosome, when nonempty, is a regexp that chromosome names must
	// match.
	Chromosome string
	// Strand restricts the comparison to "+" or "-"; empty means both.
	Strand string
	// FromPosition/ToPosition bound positions (1-based, inclusive); 0 means
	// unbounded.
	FromPosition int64
	ToPosition   int64
	// MinCoverage is the minimum per-side read count to keep a position.
	MinCoverage int
	// ResampleSize is the per-side number of signal values drawn (with
	// replacement) per position; 0 disables resampling.
	ResampleSize int
	// NoDistanceSum disables the window sum over neighboring positions.
	NoDistanceSum bool
	// RandomSeed makes resampling reproducible.  Negative means: pick a
	// seed at run time and log it, so a rerun can pin it.
	RandomSeed int64
	// Parallelism caps the number of concurrent per-position jobs;
	// 0 = runtime.NumCPU().
	Parallelism int
}

// DefaultOpts sets the default values for Opts.
var DefaultOpts = Opts{
	Acid:          "autodetect",
	ForceAcid:     false,
	Chromosome:    "",
	Strand:        "",
	FromPosition:  0,
	ToPosition:    0,
	MinCoverage:   5,
	ResampleSize:  12,
	NoDistanceSum: false,
	RandomSeed:    -1,
	Parallelism:   0,
}

// config is Opts after up-front validation, with string options parsed into
// their internal representations.  All option errors surface here, before
// any position is processed.
type config struct {
	acid        signal.Acid
	forceAcid   bool
	chromosome  *regexp.Regexp
	strand      signal.StrandType
	fromPos     int64
	toPos       int64
	minCoverage int
	resample    int
	distSum     bool
	seed        int64
	seedChosen  bool
	parallelism int
}

func (o *Opts) validate() (c config, err error) {
	if c.acid, err = signal.ParseAcid(o.Acid); err != nil {
		return
	}
	if o.ForceAcid && c.acid == signal.AcidAuto {
		err = fmt.Errorf("Opts: cannot force-acid without specifying -acid")
		return
	}
	c.forceAcid = o.ForceAcid
	if o.Chromosome != "" {
		if c.chromosome, err = regexp.Compile(o.Chromosome); err != nil {
			err = fmt.Errorf("Opts: invalid -chromosome regexp: %v", err)
			return
		}
	}
	if c.strand, err = signal.ParseStrand(o.Strand); err != nil {
		return
	}
	if o.FromPosition < 0 || o.ToPosition < 0 {
		err = fmt.Errorf("Opts: -from-position and -to-position must be at least 1 (0 = unbounded)")
		return
	}
	if o.FromPosition != 0 && o.ToPosition != 0 && o.FromPosition > o.ToPosition {
		err = fmt.Errorf("Opts: -from-position (%d) must not exceed -to-position (%d)", o.FromPosition, o.ToPosition)
		return
	}
	c.fromPos = o.FromPosition
	c.toPos = o.ToPosition
	if o.MinCoverage < 1 {
		err = fmt.Errorf("Opts: -min-coverage must be at least 1")
		return
	}
	c.minCoverage = o.MinCoverage
	if o.ResampleSize < 0 {
		err = fmt.Errorf("Opts: -resample-size must be at least 0")
		return
	}
	c.resample = o.ResampleSize
	c.distSum = !o.NoDistanceSum
	c.seed = o.RandomSeed
	c.seedChosen = o.RandomSeed >= 0
	c.parallelism = o.Parallelism
	if c.parallelism <= 0 {
		c.parallelism = runtime.NumCPU()
	}
	return
}
