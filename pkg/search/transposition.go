package search

import (
	"context"
	"fmt"
	"math/bits"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/eval"
	"github.com/seekerror/logw"
)

// Bound qualifies a stored score relative to the window it was computed in.
type Bound uint8

const (
	// ExactBound is a fully-resolved score (no cutoff occurred).
	ExactBound Bound = iota
	// LowerBound is a fail-high score: the true value is at least this.
	LowerBound
	// UpperBound is a fail-low score: the true value is at most this.
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

const (
	// MinTableSize is the smallest table the engine will allocate, regardless of the
	// requested size in megabytes.
	MinTableSize = 1024
	// DefaultTableSizeMB is used when the caller never calls SetHashSize.
	DefaultTableSizeMB = 64
	// MaxTableSizeMB caps SetHashSize; larger requests are silently clamped.
	MaxTableSizeMB = 1024
)

// entrySize is the nominal size of one table slot, in bytes, used to turn a size in
// megabytes into a slot count and to report Size(). The in-memory slot (an atomic.Value
// holding an unpacked entry) is larger than this.
const entrySize = 16

// TranspositionTable caches search results keyed by Zobrist hash. Implementations must
// be safe for concurrent use by Lazy SMP workers without locking.
type TranspositionTable interface {
	// Read returns the bound, depth, score and best move stored for hash, if present and
	// uncorrupted.
	Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool)
	// Write stores an entry, replacing the current slot occupant if its depth is not
	// greater than the new one.
	Write(hash board.ZobristHash, bound Bound, depth int, score eval.Score, move board.Move)

	// Size returns the table size in bytes.
	Size() uint64
	// Used returns the fraction of slots occupied, in [0;1].
	Used() float64
}

// payload is the data half of a slot: everything stored for a position besides its key.
type payload struct {
	score eval.Score
	move  board.Move
	depth int32
	bound Bound
}

// entry is one transposition-table slot. It is never mutated in place: writers build a
// fresh entry and Store it into the slot's atomic.Value, readers Load it once. The key
// is kept as a plain field (not XORed into the payload); torn reads are excluded because
// key and payload are published together through the same atomic.Value.
type entry struct {
	hash    board.ZobristHash
	payload payload
}

// table is a fixed-size, open-addressed transposition table. Each slot is an atomic.Value
// holding an entry: a reader either sees a complete entry or the previous one,
// never a torn mix of two writes. This gets the XOR-trick's safety property (no garbage
// reads) using atomic.Value instead of hand-rolled XOR-and-compare on raw words, since Go
// offers no portable 128-bit atomic primitive to XOR against.
type table struct {
	slots []atomic.Value
	mask  uint64
	used  int64
}

// NewTranspositionTable allocates a table sized to approximately sizeMB megabytes,
// rounded down to a power of two number of entries, never below MinTableSize entries.
func NewTranspositionTable(ctx context.Context, sizeMB uint64) TranspositionTable {
	if sizeMB > MaxTableSizeMB {
		sizeMB = MaxTableSizeMB
	}
	bytes := sizeMB << 20
	n := uint64(MinTableSize)
	if count := bytes / entrySize; count > n {
		n = uint64(1) << uint(bits.Len64(count)-1)
	}

	logw.Infof(ctx, "allocating transposition table: %v entries (%v)", n, humanize.Bytes(n*entrySize))
	return &table{
		slots: make([]atomic.Value, n),
		mask:  n - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.slots)) * entrySize
}

func (t *table) Used() float64 {
	return float64(atomic.LoadInt64(&t.used)) / float64(len(t.slots))
}

func (t *table) Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	slot := &t.slots[uint64(hash)&t.mask]
	v, ok := slot.Load().(entry)
	if !ok || v.hash != hash {
		return 0, 0, 0, "", false
	}
	return v.payload.bound, int(v.payload.depth), v.payload.score, v.payload.move, true
}

func (t *table) Write(hash board.ZobristHash, bound Bound, depth int, score eval.Score, move board.Move) {
	slot := &t.slots[uint64(hash)&t.mask]

	fresh := entry{hash: hash, payload: payload{score: score, move: move, depth: int32(depth), bound: bound}}
	if old, ok := slot.Load().(entry); ok {
		if old.payload.depth > fresh.payload.depth {
			return // keep: existing occupant is deeper
		}
		slot.Store(fresh)
		return
	}
	slot.Store(fresh)
	atomic.AddInt64(&t.used, 1)
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", humanize.Bytes(t.Size()), int(100*t.Used()))
}

// NoTranspositionTable never stores anything; useful for tests that want search
// behavior without TT-induced cutoffs.
type NoTranspositionTable struct{}

func (NoTranspositionTable) Read(board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	return 0, 0, 0, "", false
}
func (NoTranspositionTable) Write(board.ZobristHash, Bound, int, eval.Score, board.Move) {}
func (NoTranspositionTable) Size() uint64                                                { return 0 }
func (NoTranspositionTable) Used() float64                                               { return 0 }
