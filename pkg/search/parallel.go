package search

import (
	"context"
	"runtime"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/eval"
	"golang.org/x/sync/errgroup"
)

// Parallel is a Lazy SMP root splitter: it partitions the legal root moves contiguously
// across a team of workers that all search the same *Context (and so the same shared
// transposition table), with no coordination beyond that sharing. At depths 1-2 it
// searches serially, matching the observation that thread setup dominates such shallow
// searches.
type Parallel struct {
	Eval    eval.Evaluator
	Threads int
}

// NewParallel returns a Parallel driver requesting the given thread count, clamped at
// search time to [1, min(requested, CPU cores, 8, |moves|)].
func NewParallel(e eval.Evaluator, threads int) *Parallel {
	return &Parallel{Eval: e, Threads: threads}
}

// ThreadCount resolves the effective worker count for a root with the given number of
// legal moves.
func (p *Parallel) ThreadCount(numMoves int) int {
	n := p.Threads
	if n <= 0 {
		n = 1
	}
	if cores := runtime.NumCPU(); n > cores {
		n = cores
	}
	if n > 8 {
		n = 8
	}
	if n > numMoves {
		n = numMoves
	}
	if n < 1 {
		n = 1
	}
	return n
}

// SearchRoot implements RootSearcher: it splits the legal moves at pos across a worker
// team, has each worker search its slice with the full (alpha, beta) window using one
// shared, stateless Searcher over a private position copy, and aggregates by picking the move with
// the best score for pos.SideToMove (max for White, min for Black, expressed uniformly
// in the negamax convention shared with Searcher.Search).
func (p *Parallel) SearchRoot(ctx context.Context, sctx *Context, pos *board.Position, depth int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	searcher := NewSearcher(p.Eval)

	legal := board.LegalMoves(pos)
	if len(legal) == 0 {
		if board.IsInCheck(pos, pos.SideToMove) {
			return -eval.MateScore, nil
		}
		return 0, nil
	}

	threads := p.ThreadCount(len(legal))
	if depth <= 2 || threads <= 1 {
		return searcher.Search(ctx, sctx, pos, depth, 0, alpha, beta)
	}

	slices := splitContiguous(legal, threads)

	type result struct {
		score eval.Score
		pv    []board.Move
		ok    bool
	}
	results := make([]result, len(slices))

	g, gctx := errgroup.WithContext(ctx)
	for i, slice := range slices {
		i, slice := i, slice
		g.Go(func() error {
			work := pos.Clone()
			best := eval.MinScore
			var bestPV []board.Move
			for _, m := range slice {
				if cancelled(gctx, sctx) {
					break
				}
				info := board.MakeMove(work, m)
				childScore, childPV := searcher.Search(gctx, sctx, work, depth-1, 1, -beta, -alpha)
				board.UndoMove(work, info)
				childScore = bubbleMate(-childScore)

				if childScore > best {
					best = childScore
					bestPV = append([]board.Move{m}, childPV...)
				}
			}
			results[i] = result{score: best, pv: bestPV, ok: true}
			return nil
		})
	}
	_ = g.Wait() // workers never return an error; only the shared deadline stops them

	best := eval.MinScore
	var bestPV []board.Move
	for _, r := range results {
		if r.ok && len(r.pv) > 0 && r.score > best {
			best = r.score
			bestPV = r.pv
		}
	}
	return best, bestPV
}

// splitContiguous partitions moves into n contiguous, near-equal slices.
func splitContiguous(moves []board.Move, n int) [][]board.Move {
	out := make([][]board.Move, n)
	base := len(moves) / n
	rem := len(moves) % n

	start := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		out[i] = moves[start : start+size]
		start += size
	}
	return out
}
