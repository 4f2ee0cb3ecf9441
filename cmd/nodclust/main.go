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
package main

/*
nodclust compares two nanopore datasets position by position and labels each
position as carrying a putative modification ("pos") or not ("neg"), using
only unsupervised statistics: a two-sample Kuiper distance per position,
optionally summed over neighboring positions, then split into two groups by
1-D clustering.
*/

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/nodclust/compare"
	"github.com/grailbio/nodclust/signal"
)

var (
	acid          = flag.String("acid", compare.DefaultOpts.Acid, "Restrict comparison to 'dna' or 'rna' datasets; 'autodetect' accepts what the squiggle indexes declare")
	forceAcid     = flag.Bool("force-acid", compare.DefaultOpts.ForceAcid, "Reinterpret mismatching observations as -acid instead of failing")
	chromosome    = flag.String("chromosome", compare.DefaultOpts.Chromosome, "Only compare chromosomes matching this regexp")
	strand        = flag.String("strand", compare.DefaultOpts.Strand, "Only compare the '+' or '-' strand")
	fromPosition  = flag.Int64("from-position", compare.DefaultOpts.FromPosition, "Skip positions before this 1-based position; 0 = unbounded")
	toPosition    = flag.Int64("to-position", compare.DefaultOpts.ToPosition, "Skip positions after this 1-based position; 0 = unbounded")
	minCoverage   = flag.Int("min-coverage", compare.DefaultOpts.MinCoverage, "Minimum per-dataset read count to keep a position")
	resampleSize  = flag.Int("resample-size", compare.DefaultOpts.ResampleSize, "Number of signal values resampled per position per dataset; 0 disables resampling")
	noDistanceSum = flag.Bool("no-distance-sum", compare.DefaultOpts.NoDistanceSum, "Emit raw per-position distances instead of window sums over neighbors")
	randomSeed    = flag.Int64("random-seed", compare.DefaultOpts.RandomSeed, "Seed for reproducible resampling; negative = pick one and log it")
	parallelism   = flag.Int("parallelism", compare.DefaultOpts.Parallelism, "Maximum number of simultaneous comparison jobs; 0 = runtime.NumCPU()")
	out           = flag.String("out", "nodclust.bed", "Output BED path; gzipped if it ends in .gz")
)

func nodclustUsage() {
	fmt.Printf("Usage: %s [OPTIONS] squiggles1.tsv squiggles2.tsv\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = nodclustUsage
	shutdown := grail.Init()
	defer shutdown()

	allArgs := flag.Args()
	nPositionalArgs := flag.NArg()
	positionalArgs := allArgs[len(allArgs)-nPositionalArgs:]
	if nPositionalArgs != 2 {
		log.Fatalf("Expected exactly two positional arguments (the two squiggle index paths); please check flag syntax: '%s'", strings.Join(positionalArgs, " "))
	}
	ctx := vcontext.Background()

	xs, err := signal.ReadSquiggleTSV(ctx, positionalArgs[0])
	if err != nil {
		log.Fatalf("%v", err)
	}
	ys, err := signal.ReadSquiggleTSV(ctx, positionalArgs[1])
	if err != nil {
		log.Fatalf("%v", err)
	}

	opts := compare.Opts{
		Acid:          *acid,
		ForceAcid:     *forceAcid,
		Chromosome:    *chromosome,
		Strand:        *strand,
		FromPosition:  *fromPosition,
		ToPosition:    *toPosition,
		MinCoverage:   *minCoverage,
		ResampleSize:  *resampleSize,
		NoDistanceSum: *noDistanceSum,
		RandomSeed:    *randomSeed,
		Parallelism:   *parallelism,
	}
	recs, err := compare.Run(ctx, xs, ys, &opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := compare.WriteBED(ctx, *out, recs); err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("nodclust: wrote %d records to %s", len(recs), *out)
}
