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
package signal

import (
	"fmt"
)

// Acid describes the molecule type of a sequenced sample.
type Acid uint8

const (
	// AcidAuto means no acid restriction; the empirical type is accepted.
	AcidAuto Acid = iota
	// AcidDNA marks a DNA sample.
	AcidDNA
	// AcidRNA marks a (direct) RNA sample.
	AcidRNA
)

var acidNameTable = [...]string{"autodetect", "dna", "rna"}

func (a Acid) String() string { return acidNameTable[a] }

// ParseAcid converts an acid name given on the command line to an Acid.
func ParseAcid(s string) (Acid, error) {
	switch s {
	case "autodetect", "":
		return AcidAuto, nil
	case "dna":
		return AcidDNA, nil
	case "rna":
		return AcidRNA, nil
	}
	return AcidAuto, fmt.Errorf("ParseAcid: acid must be one of 'dna', 'rna', 'autodetect'; got %q", s)
}

// StrandType describes which genomic strand a squiggle is aligned to.
type StrandType uint8

const (
	// StrandNone means no strand restriction.
	StrandNone StrandType = iota
	// StrandFwd is the + strand.
	StrandFwd
	// StrandRev is the - strand.
	StrandRev
)

// StrandTypeToASCIITable is the StrandType -> ASCII mapping.
var StrandTypeToASCIITable = [...]byte{'.', '+', '-'}

func (s StrandType) String() string { return string(StrandTypeToASCIITable[s]) }

// ParseStrand converts a strand character to a StrandType.
func ParseStrand(s string) (StrandType, error) {
	switch s {
	case "":
		return StrandNone, nil
	case "+":
		return StrandFwd, nil
	case "-":
		return StrandRev, nil
	}
	return StrandNone, fmt.Errorf("ParseStrand: strand must be '+' or '-'; got %q", s)
}

// PosType is the integer type used to represent genomic positions.  Positions
// are 1-based throughout (squiggle index files, in-memory keys, and output
// records all agree).
type PosType = int64

// Key identifies one strand of one genomic position within one dataset.
type Key struct {
	Chrom  string
	Strand StrandType
	Pos    PosType
	Acid   Acid
}

func (k Key) String() string {
	return fmt.Sprintf("%s[%s%c:%d]", k.Acid, k.Chrom, StrandTypeToASCIITable[k.Strand], k.Pos)
}

// Less imposes the (chrom, strand, pos) output ordering.  Acid is
// deliberately excluded: Index.Add rejects a second acid at the same
// (chrom, strand, pos), so no index ever holds keys that compare equal.
func (k Key) Less(other Key) bool {
	if k.Chrom != other.Chrom {
		return k.Chrom < other.Chrom
	}
	if k.Strand != other.Strand {
		return k.Strand < other.Strand
	}
	return k.Pos < other.Pos
}

// Observation is a single read's signal measurement at one genomic position.
// Values holds the normalized current levels of the read's squiggle over the
// base at this position (usually a handful of samples).  Immutable after
// ingestion.
type Observation struct {
	ReadID string
	Values []float64
}

// PositionGroup is the set of Observations sharing one Key within one
// dataset.  Consumed read-only once built.
type PositionGroup struct {
	Key Key
	Obs []Observation
}

// Coverage returns the number of reads contributing to the group.  Read
// count, not sample count.
func (g *PositionGroup) Coverage() int { return len(g.Obs) }

// PooledValues returns the group's raw signal values flattened across reads.
func (g *PositionGroup) PooledValues() []float64 {
	n := 0
	for _, o := range g.Obs {
		n += len(o.Values)
	}
	vals := make([]float64, 0, n)
	for _, o := range g.Obs {
		vals = append(vals, o.Values...)
	}
	return vals
}
