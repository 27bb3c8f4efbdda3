package search

import (
	"time"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"go.uber.org/atomic"
)

// MaxPly bounds killer-table depth and the mate-distance scale; no sane search depth
// approaches it.
const MaxPly = 128

// Context owns all state a search needs beyond the position being searched: the
// Zobrist table, transposition table, and move-ordering heuristics. It replaces the
// package-level globals a naive port would carry, so that two independently
// constructed Contexts never alias state, while Lazy SMP workers can still share a
// single Context by pointer.
type Context struct {
	Zobrist *board.ZobristTable
	TT      TranspositionTable
	Killers *KillerTable
	History *HistoryTable

	deadline    atomic.Time
	hasDeadline atomic.Bool
	nodes       atomic.Uint64
}

// NewContext builds a fresh search context with the given transposition table. zobrist
// may be shared across many Contexts since it is read-only after construction.
func NewContext(zobrist *board.ZobristTable, tt TranspositionTable) *Context {
	return &Context{
		Zobrist: zobrist,
		TT:      tt,
		Killers: NewKillerTable(MaxPly),
		History: NewHistoryTable(),
	}
}

// SetDeadline arms a wall-clock cutoff; search nodes poll it cooperatively and unwind
// with a static evaluation once it passes, per the spec's cooperative-cancellation
// model. Call with the zero time to clear it (no limit).
func (c *Context) SetDeadline(t time.Time) {
	c.deadline.Store(t)
	c.hasDeadline.Store(!t.IsZero())
}

// Expired reports whether the armed deadline, if any, has passed.
func (c *Context) Expired() bool {
	if !c.hasDeadline.Load() {
		return false
	}
	t := c.deadline.Load()
	return !t.IsZero() && time.Now().After(t)
}

// Nodes returns the number of nodes visited since the context was created or reset.
func (c *Context) Nodes() uint64 {
	return c.nodes.Load()
}

func (c *Context) countNode() {
	c.nodes.Add(1)
}

// ResetNodes zeroes the node counter; IterativeDeepen calls it at the start of each
// iteration and before each full-window re-search.
func (c *Context) ResetNodes() {
	c.nodes.Store(0)
}
