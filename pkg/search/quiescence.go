package search

import (
	"context"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/eval"
)

// Quiescence extends the search past the horizon through captures only, to avoid
// resting the static evaluation on a tactically unstable position. It is the same
// negamax convention as Search: a larger score favors pos.SideToMove.
func (s *Searcher) Quiescence(ctx context.Context, sctx *Context, pos *board.Position, ply int, alpha, beta eval.Score) eval.Score {
	if cancelled(ctx, sctx) {
		return s.relative(pos)
	}
	sctx.countNode()

	standPat := s.relative(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	captures := board.CaptureMoves(pos)
	moves := OrderMoves(pos, captures, "", ply, sctx.Killers, sctx.History)

	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		mover := pos.SideToMove
		info := board.MakeMove(pos, m)
		if board.IsInCheck(pos, mover) {
			board.UndoMove(pos, info)
			continue // illegal: left own king in check
		}

		score := bubbleMate(-s.Quiescence(ctx, sctx, pos, ply+1, -beta, -alpha))
		board.UndoMove(pos, info)

		if score >= beta {
			return score
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}
