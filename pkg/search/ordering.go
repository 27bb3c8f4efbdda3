package search

import (
	"container/heap"

	"github.com/haktanpolatt/Mergen/pkg/board"
)

// Priority is a move ordering score; higher moves are searched first.
type Priority int32

const (
	captureBase  Priority = 100_000
	killerBonus  Priority = 90_000
	historyLimit int32    = 1_000_000
)

// mvvlvaTable[victim][attacker] rewards capturing high-value pieces with low-value
// attackers: rows (victim) dominate the score, the attacker is a tiebreaker.
var mvvlvaTable = [7][7]Priority{}

func init() {
	rank := func(p board.PieceType) Priority {
		switch p {
		case board.Pawn:
			return 1
		case board.Knight, board.Bishop:
			return 2
		case board.Rook:
			return 3
		case board.Queen:
			return 4
		case board.King:
			return 5
		default:
			return 0
		}
	}
	for v := board.NoPieceType; v <= board.King; v++ {
		for a := board.NoPieceType; a <= board.King; a++ {
			mvvlvaTable[v][a] = 100*rank(v) - rank(a)
		}
	}
}

// MVVLVA returns the capture-ordering priority for a move that captures victim with
// attacker.
func MVVLVA(victim, attacker board.PieceType) Priority {
	return captureBase + mvvlvaTable[victim][attacker]
}

// KillerTable holds, per search ply, up to two quiet moves that recently caused a beta
// cutoff at that ply. Slot 0 is the most recently recorded killer.
type KillerTable struct {
	slots [][2]board.Move
}

// NewKillerTable allocates a table deep enough for maxPly plies.
func NewKillerTable(maxPly int) *KillerTable {
	return &KillerTable{slots: make([][2]board.Move, maxPly+1)}
}

// Record stores m as the newest killer at ply, unless it is already recorded there.
func (k *KillerTable) Record(ply int, m board.Move) {
	if ply >= len(k.slots) {
		return
	}
	pair := &k.slots[ply]
	if pair[0] == m {
		return
	}
	pair[1] = pair[0]
	pair[0] = m
}

// IsKiller reports whether m is one of the two killers recorded at ply.
func (k *KillerTable) IsKiller(ply int, m board.Move) bool {
	if ply >= len(k.slots) {
		return false
	}
	pair := k.slots[ply]
	return pair[0] == m || pair[1] == m
}

// HistoryTable scores quiet moves by (from, to) square, independent of ply.
type HistoryTable struct {
	scores [8][8][8][8]int32
}

// NewHistoryTable returns an empty history table.
func NewHistoryTable() *HistoryTable {
	return &HistoryTable{}
}

// Record credits a quiet cutoff move with depth^2, halving the whole table if any entry
// saturates.
func (h *HistoryTable) Record(m board.Move, depth int) {
	from, to := m.From(), m.To()
	h.scores[from.Rank][from.File][to.Rank][to.File] += int32(depth * depth)
	if h.scores[from.Rank][from.File][to.Rank][to.File] > historyLimit {
		h.halve()
	}
}

func (h *HistoryTable) halve() {
	for r1 := range h.scores {
		for f1 := range h.scores[r1] {
			for r2 := range h.scores[r1][f1] {
				for f2 := range h.scores[r1][f1][r2] {
					h.scores[r1][f1][r2][f2] /= 2
				}
			}
		}
	}
}

// Score returns the current history score for a quiet move.
func (h *HistoryTable) Score(m board.Move) Priority {
	from, to := m.From(), m.To()
	return Priority(h.scores[from.Rank][from.File][to.Rank][to.File])
}

// OrderMoves scores each move in moves using MVV-LVA for captures and
// history+killer for quiet moves, with ttMove (if non-empty) placed first.
func OrderMoves(pos *board.Position, moves []board.Move, ttMove board.Move, ply int, killers *KillerTable, history *HistoryTable) *MoveList {
	return NewMoveList(moves, func(m board.Move) Priority {
		if m == ttMove {
			return 1 << 20
		}
		if target := pos.At(m.To()); !target.IsEmpty() {
			return MVVLVA(target.Type, pos.At(m.From()).Type)
		}
		p := history.Score(m)
		if killers.IsKiller(ply, m) {
			p += killerBonus
		}
		return p
	})
}

// MoveList is a move priority queue used for move ordering: Next always returns the
// highest-priority remaining move.
type MoveList struct {
	h moveHeap
}

// NewMoveList builds a move list, scoring every move with fn up front.
func NewMoveList(moves []board.Move, fn func(board.Move) Priority) *MoveList {
	h := make(moveHeap, len(moves))
	for i, m := range moves {
		h[i] = elm{m: m, val: fn(m)}
	}
	heap.Init(&h)
	return &MoveList{h: h}
}

// Next pops and returns the highest-priority move, or ok=false when exhausted.
func (ml *MoveList) Next() (board.Move, bool) {
	if ml.h.Len() == 0 {
		return "", false
	}
	e := heap.Pop(&ml.h).(elm)
	return e.m, true
}

func (ml *MoveList) Len() int {
	return ml.h.Len()
}

type elm struct {
	m   board.Move
	val Priority
}

type moveHeap []elm

func (h moveHeap) Len() int            { return len(h) }
func (h moveHeap) Less(i, j int) bool  { return h[i].val > h[j].val }
func (h moveHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *moveHeap) Push(x interface{}) { *h = append(*h, x.(elm)) }
func (h *moveHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
