package zobrist

import (
	"fmt"
	"sync"
)

type CachedCount struct {
	Depth       int
	Count       int
	ZobristHash uint64
}

// TranspositionTable remembers node counts by hash and depth. Entries are
// replaced on collision. It's safe for concurrent use.
type TranspositionTable struct {
	Size       int
	Cache      []CachedCount
	Hits       int
	Collisions int
	Misses     int

	lock sync.Mutex
}

const DefaultTranspositionTableSize = 1 << 20

func NewTranspositionTable(size int) *TranspositionTable {
	if size < 1 {
		size = DefaultTranspositionTableSize
	}
	return &TranspositionTable{
		Size:  size,
		Cache: make([]CachedCount, size),
	}
}

func (t *TranspositionTable) Stats() string {
	t.lock.Lock()
	defer t.lock.Unlock()
	return fmt.Sprintf("hits: %v, collisions: %v, misses: %v", t.Hits, t.Collisions, t.Misses)
}

func (t *TranspositionTable) Get(hash uint64, depth int) (int, bool) {
	t.lock.Lock()
	defer t.lock.Unlock()

	v := t.Cache[hash%uint64(t.Size)]
	if v.ZobristHash == hash && v.Depth == depth {
		t.Hits++
		return v.Count, true
	} else if v.ZobristHash != 0 {
		t.Collisions++
	} else {
		t.Misses++
	}
	return 0, false
}

func (t *TranspositionTable) Put(hash uint64, depth int, count int) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.Cache[hash%uint64(t.Size)] = CachedCount{
		Depth:       depth,
		Count:       count,
		ZobristHash: hash,
	}
}
