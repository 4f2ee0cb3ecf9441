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
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/log"
	"github.com/pkg/errors"
)

// ReadSquiggleTSV ingests one dataset's squiggle index into a fresh Index.
//
// The squiggle index is the tab-separated per-read position table produced by
// the upstream re-squiggler:
//
//	read_id  chrom  strand  pos  acid  values
//
// with a header line, 1-based positions, acid one of dna/rna, and values a
// comma-separated list of normalized current levels for the base at pos.  A
// values column of "." marks a squiggle the re-squiggler could not anchor; the
// row is counted and skipped.  Anything else that fails to parse is malformed
// input and aborts ingestion (no silent per-row skips).
//
// Plain and gzip-compressed files are both accepted.
func ReadSquiggleTSV(ctx context.Context, path string) (idx *Index, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return nil, errors.Wrapf(err, "open squiggle index %s", path)
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader, _ := compress.NewReader(in.Reader(ctx))
	defer func() {
		if e := reader.Close(); e != nil && err == nil {
			err = e
		}
	}()

	scanner := bufio.NewScanner(reader)
	// Scanner does not handle very long lines unless we set a maximum buffer
	// size; high-coverage positions can have long values columns.
	scanner.Buffer(make([]byte, 65536), 1<<24)

	idx = NewIndex()
	lineIdx := 0
	nMissing := 0
	nObs := 0
	for scanner.Scan() {
		lineIdx++
		if lineIdx == 1 {
			// Header.
			continue
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) != 6 {
			return nil, MalformedInputErrorf("%s:%d: expected 6 columns, got %d", path, lineIdx, len(cols))
		}
		if cols[5] == "." {
			nMissing++
			continue
		}
		var key Key
		key.Chrom = cols[1]
		if key.Strand, err = ParseStrand(cols[2]); err != nil || key.Strand == StrandNone {
			return nil, MalformedInputErrorf("%s:%d: bad strand %q", path, lineIdx, cols[2])
		}
		if key.Pos, err = strconv.ParseInt(cols[3], 10, 64); err != nil || key.Pos < 1 {
			return nil, MalformedInputErrorf("%s:%d: bad position %q", path, lineIdx, cols[3])
		}
		if key.Acid, err = ParseAcid(cols[4]); err != nil || key.Acid == AcidAuto {
			return nil, MalformedInputErrorf("%s:%d: bad acid %q", path, lineIdx, cols[4])
		}
		valStrs := strings.Split(cols[5], ",")
		obs := Observation{
			ReadID: cols[0],
			Values: make([]float64, len(valStrs)),
		}
		for i, s := range valStrs {
			if obs.Values[i], err = strconv.ParseFloat(s, 64); err != nil {
				return nil, MalformedInputErrorf("%s:%d: bad signal value %q", path, lineIdx, s)
			}
		}
		if err = idx.Add(key, obs); err != nil {
			return nil, err
		}
		nObs++
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read squiggle index %s", path)
	}
	log.Printf("signal.ReadSquiggleTSV: %s: %d observations at %d positions (%d unanchored squiggles skipped)",
		path, nObs, idx.Len(), nMissing)
	return idx, nil
}
