package search

import (
	"context"
	"fmt"
	"time"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/eval"
	"github.com/seekerror/logw"
)

// PV is one completed iterative-deepening iteration.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Score
	Moves []board.Move
	Time  time.Duration
}

// BestMove returns the first move of the principal variation, or the null-move
// sentinel if the position had no legal moves.
func (pv PV) BestMove() board.Move {
	if len(pv.Moves) == 0 {
		return board.NullMove
	}
	return pv.Moves[0]
}

func (pv PV) String() string {
	return fmt.Sprintf("depth=%v score=%v move=%v nodes=%v", pv.Depth, pv.Score, pv.BestMove(), pv.Nodes)
}

// RootSearcher runs one full-width root search to a given depth. Implemented by
// *Searcher (single-threaded) and *Parallel (Lazy SMP).
type RootSearcher interface {
	SearchRoot(ctx context.Context, sctx *Context, pos *board.Position, depth int, alpha, beta eval.Score) (eval.Score, []board.Move)
}

// SearchRoot implements RootSearcher directly on a single-threaded Searcher.
func (s *Searcher) SearchRoot(ctx context.Context, sctx *Context, pos *board.Position, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	return s.Search(ctx, sctx, pos, depth, 0, alpha, beta)
}

// aspirationWindow is the half-width of the depth>=3 aspiration window, in pawns
// (0.5 pawns == the conventional 50 centipawns).
const aspirationWindow = eval.Score(0.5)

// softTimeFraction is the share of the time budget that may elapse before the driver
// refuses to start a new depth, rather than risk an incomplete deep iteration.
const softTimeFraction = 0.875

// IterativeDeepen loops depth 1..maxDepth (maxDepth == 0 means unbounded, governed
// only by budget/deadline), using an aspiration window from depth 3 on and falling
// back to a full-window re-search at the same depth on any score landing outside it.
// It returns the last fully completed iteration; a depth-1 iteration is kept even if
// the deadline cuts it short, so that a move is still returned.
func IterativeDeepen(ctx context.Context, root RootSearcher, sctx *Context, pos *board.Position, maxDepth int, start time.Time, budget time.Duration) PV {
	var last PV
	prevScore := eval.Score(0)

	for depth := 1; maxDepth == 0 || depth <= maxDepth; depth++ {
		if budget > 0 && time.Since(start) > time.Duration(float64(budget)*softTimeFraction) {
			break
		}

		alpha, beta := eval.MinScore, eval.MaxScore
		if depth >= 3 {
			alpha, beta = prevScore-aspirationWindow, prevScore+aspirationWindow
		}

		iterStart := time.Now()
		sctx.ResetNodes()
		score, moves := root.SearchRoot(ctx, sctx, pos, depth, alpha, beta)

		if depth >= 3 && (score <= alpha || score >= beta) {
			sctx.ResetNodes()
			score, moves = root.SearchRoot(ctx, sctx, pos, depth, eval.MinScore, eval.MaxScore)
		}

		if cancelled(ctx, sctx) && depth > 1 {
			break // out of time mid-iteration: keep the last fully completed PV
		}

		last = PV{Depth: depth, Nodes: sctx.Nodes(), Score: score, Moves: moves, Time: time.Since(iterStart)}
		prevScore = score

		logw.Debugf(ctx, "iterative deepening: %v", last)

		if eval.IsMateScore(score) {
			break // forced mate found; no deeper iteration can improve on it
		}
	}
	return last
}
