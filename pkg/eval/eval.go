// Package eval contains the abstract static-evaluation contract and a default,
// pluggable implementation. The search core treats Evaluator as a black box with a
// single contract: a larger Score favors White. Its weights and terms are tunable and
// are not part of the core search contract.
package eval

import "github.com/haktanpolatt/Mergen/pkg/board"

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns a white-relative score for the position: positive favors White,
	// negative favors Black, independent of whose turn it is to move.
	Evaluate(pos *board.Position) Score
}

// Material is a minimal default Evaluator: the nominal material balance. It exists so
// the engine is runnable out of the box; callers needing pawn structure, king safety or
// rook-activity terms should supply their own Evaluator.
type Material struct{}

func (Material) Evaluate(pos *board.Position) Score {
	var score Score
	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			pc := pos.Grid[r][f]
			if pc.IsEmpty() {
				continue
			}
			v := Score(NominalValue(pc.Type))
			if pc.Color == board.Black {
				v = -v
			}
			score += v
		}
	}
	return score
}

// NominalValue is the standard nominal value of a piece type, in pawns.
func NominalValue(p board.PieceType) float64 {
	switch p {
	case board.Pawn:
		return 1
	case board.Knight, board.Bishop:
		return 3
	case board.Rook:
		return 5
	case board.Queen:
		return 9
	default:
		return 0 // King: never traded, ignored by material balance.
	}
}
