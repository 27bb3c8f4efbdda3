package search

import (
	"context"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Searcher runs the core alpha-beta search, delegating leaf and quiescence scoring to
// an Evaluator. It holds no per-search state; everything mutable lives in the Context
// passed to Search, so one Searcher can safely serve concurrent Lazy SMP workers that
// each supply their own board.Position (via MakeMove/UndoMove on their own copy) but
// share one *Context.
type Searcher struct {
	Eval eval.Evaluator
}

// NewSearcher returns a Searcher using e for static evaluation.
func NewSearcher(e eval.Evaluator) *Searcher {
	return &Searcher{Eval: e}
}

// cancelled reports whether the search should unwind immediately: either ctx was
// cancelled, or sctx's cooperative deadline has passed.
func cancelled(ctx context.Context, sctx *Context) bool {
	return sctx.Expired() || contextx.IsCancelled(ctx)
}

// Search performs a negamax alpha-beta search to depth plies, from pos.SideToMove's
// perspective: a larger returned score is always better for the side to move at pos,
// regardless of color. ply is the distance from the search root, used for killer-table
// indexing. It returns the score and the principal variation starting at pos.
func (s *Searcher) Search(ctx context.Context, sctx *Context, pos *board.Position, depth, ply int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if cancelled(ctx, sctx) {
		return s.relative(pos), nil
	}

	hash := sctx.Zobrist.Hash(pos)
	origAlpha, origBeta := alpha, beta

	var ttMove board.Move
	if bound, d, score, move, ok := sctx.TT.Read(hash); ok {
		ttMove = move
		if d >= depth {
			switch bound {
			case ExactBound:
				return score, nil
			case LowerBound:
				if score > alpha {
					alpha = score
				}
			case UpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score, nil
			}
		}
	}

	inCheck := board.IsInCheck(pos, pos.SideToMove)

	if depth <= 0 || ply >= MaxPly {
		score := s.Quiescence(ctx, sctx, pos, ply, alpha, beta)
		sctx.TT.Write(hash, ExactBound, 0, score, "")
		return score, nil
	}

	sctx.countNode()

	// Terminal check: a pruning heuristic below must never short-circuit past this --
	// a stalemate or checkmate at this node is an exact result regardless of what NMP
	// or futility would otherwise decide.
	legal := board.LegalMoves(pos)
	if len(legal) == 0 {
		if inCheck {
			return -eval.MateScore, nil
		}
		return 0, nil
	}

	// Futility pruning: at shallow depth and out of check, a static eval far enough
	// below alpha means only captures (which can still swing the material balance)
	// are worth searching.
	doFutility := false
	if !inCheck && depth <= 2 {
		margin := eval.Score(2)
		if depth == 2 {
			margin = 4
		}
		if s.relative(pos)+margin <= alpha {
			doFutility = true
		}
	}

	// Null-move pruning: pass the move and search at a reduced depth with a one-pawn
	// window just below beta; if this side still fails high even after giving the
	// opponent a free move, this node is not worth fully searching.
	if !inCheck && depth >= 4 && countPieces(pos, pos.SideToMove) > 10 {
		r := 2
		if depth >= 6 {
			r = 3
		}
		undo := makeNullMove(pos)
		score, _ := s.Search(ctx, sctx, pos, depth-1-r, ply+1, -beta, -beta+1)
		score = bubbleMate(-score)
		undoNullMove(pos, undo)
		if score >= beta {
			sctx.TT.Write(hash, LowerBound, depth, score, "")
			return score, nil
		}
	}

	moves := OrderMoves(pos, legal, ttMove, ply, sctx.Killers, sctx.History)

	var best board.Move
	var pv []board.Move
	bestScore := eval.MinScore

	i := 0
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		isCapture := !pos.IsEmpty(m.To())
		if doFutility && !isCapture && i > 0 {
			i++
			continue
		}

		info := board.MakeMove(pos, m)

		var score eval.Score
		var rem []board.Move
		if i >= 4 && depth >= 3 && !isCapture && !inCheck {
			// Late move reduction: search quiet, late moves shallower first; only
			// pay for a full-depth re-search if the reduced search looks promising.
			score, rem = s.Search(ctx, sctx, pos, depth-2, ply+1, -alpha-1, -alpha)
			score = bubbleMate(-score)
			if score > alpha {
				score, rem = s.Search(ctx, sctx, pos, depth-1, ply+1, -beta, -alpha)
				score = bubbleMate(-score)
			}
		} else {
			score, rem = s.Search(ctx, sctx, pos, depth-1, ply+1, -beta, -alpha)
			score = bubbleMate(-score)
		}

		board.UndoMove(pos, info)
		i++

		if score > bestScore {
			bestScore = score
			best = m
			pv = append([]board.Move{m}, rem...)
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			if !isCapture {
				sctx.History.Record(m, depth)
				sctx.Killers.Record(ply, m)
			}
			break
		}
	}

	bound := ExactBound
	switch {
	case bestScore <= origAlpha:
		bound = UpperBound
	case bestScore >= origBeta:
		bound = LowerBound
	}
	sctx.TT.Write(hash, bound, depth, bestScore, best)
	return bestScore, pv
}

// relative returns pos's static evaluation from pos.SideToMove's perspective: a larger
// score always favors the side to move, regardless of color. The Evaluator itself
// stays white-relative per its contract.
func (s *Searcher) relative(pos *board.Position) eval.Score {
	return eval.Score(float64(s.Eval.Evaluate(pos)) * pos.SideToMove.Unit())
}

// bubbleMate adjusts a negated child score for one additional ply of distance from a
// mate: a mate score represents "N plies to mate from the node that produced it", so a
// parent one ply further away sees N+1. Ordinary scores pass through unchanged.
func bubbleMate(s eval.Score) eval.Score {
	switch {
	case s > eval.MateScore-1000:
		return s - 1
	case s < -(eval.MateScore - 1000):
		return s + 1
	default:
		return s
	}
}

func countPieces(pos *board.Position, c board.Color) int {
	n := 0
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			pc := pos.Grid[r][f]
			if !pc.IsEmpty() && pc.Color == c {
				n++
			}
		}
	}
	return n
}

type nullUndo struct {
	ep   board.Square
	turn board.Color
}

// makeNullMove toggles the side to move and clears en passant without moving a piece,
// the "pass" probed by null-move pruning.
func makeNullMove(pos *board.Position) nullUndo {
	u := nullUndo{ep: pos.EnPassant, turn: pos.SideToMove}
	pos.EnPassant = board.NoSquare
	pos.SideToMove = pos.SideToMove.Opponent()
	return u
}

func undoNullMove(pos *board.Position, u nullUndo) {
	pos.EnPassant = u.ep
	pos.SideToMove = u.turn
}
