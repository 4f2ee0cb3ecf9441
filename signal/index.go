package signal

import (
	"sort"
	"sync"

	"blainsmith.com/go/seahash"
	"github.com/grailbio/base/unsafe"
)

const numIndexShards = 256

type groupEntry struct {
	group PositionGroup
	// reads tracks which read IDs already contributed an observation, to
	// reject duplicate (key, read) pairs instead of silently merging them.
	reads map[string]struct{}
}

// posKey is a Key without its acid.  Shards are keyed on it so Add can
// reject a second acid at the same position, which keeps Key.Less free to
// ignore acid when ordering groups.
type posKey struct {
	chrom  string
	strand StrandType
	pos    PosType
}

type indexShard struct {
	mu     sync.Mutex
	groups map[posKey]*groupEntry
}

// Index is a sharded, thread-safe aggregation of Observations by Key for a
// single dataset.  Shards are selected by key hash, so concurrent ingestion
// workers contend only when they hit the same shard.
type Index struct {
	shards [numIndexShards]indexShard
}

// NewIndex returns an empty Index.
func NewIndex() *Index {
	idx := &Index{}
	for i := range idx.shards {
		idx.shards[i].groups = make(map[posKey]*groupEntry)
	}
	return idx
}

func shardOf(k Key) uint64 {
	h := seahash.Sum64(unsafe.StringToBytes(k.Chrom))
	h ^= uint64(k.Pos)*0x9e3779b97f4a7c15 + uint64(k.Strand)
	return h % numIndexShards
}

// Add records one observation under the given key.  Two observations sharing
// (key, read ID), or two acids at the same (chrom, strand, pos), are
// malformed input: the offending Add fails and the index may no longer be
// used.
func (idx *Index) Add(k Key, obs Observation) error {
	shard := &idx.shards[shardOf(k)]
	shard.mu.Lock()
	defer shard.mu.Unlock()
	pk := posKey{chrom: k.Chrom, strand: k.Strand, pos: k.Pos}
	entry := shard.groups[pk]
	if entry == nil {
		entry = &groupEntry{
			group: PositionGroup{Key: k},
			reads: make(map[string]struct{}),
		}
		shard.groups[pk] = entry
	} else if entry.group.Key.Acid != k.Acid {
		return MalformedInputErrorf("signal.Index: conflicting acids %s and %s at %s", entry.group.Key.Acid, k.Acid, k)
	}
	if _, dup := entry.reads[obs.ReadID]; dup {
		return MalformedInputErrorf("signal.Index: duplicate observation for read %s at %s", obs.ReadID, k)
	}
	entry.reads[obs.ReadID] = struct{}{}
	entry.group.Obs = append(entry.group.Obs, obs)
	return nil
}

// Len returns the number of distinct keys in the index.
func (idx *Index) Len() int {
	n := 0
	for i := range idx.shards {
		shard := &idx.shards[i]
		shard.mu.Lock()
		n += len(shard.groups)
		shard.mu.Unlock()
	}
	return n
}

// Groups returns all position groups sorted by (chrom, strand, pos).  The
// returned groups alias the index's storage; callers treat them as
// read-only, per the pipeline's forward-only ownership rule.
func (idx *Index) Groups() []*PositionGroup {
	groups := make([]*PositionGroup, 0, idx.Len())
	for i := range idx.shards {
		shard := &idx.shards[i]
		shard.mu.Lock()
		for _, entry := range shard.groups {
			groups = append(groups, &entry.group)
		}
		shard.mu.Unlock()
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key.Less(groups[j].Key)
	})
	return groups
}
