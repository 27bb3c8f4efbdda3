package eval

import (
	"math/rand"

	"github.com/haktanpolatt/Mergen/pkg/board"
)

// Noise wraps an Evaluator and adds a small amount of randomness to its leaf scores,
// in millipawns. A zero limit disables noise and is equivalent to the wrapped
// Evaluator. Useful for avoiding repeated games against itself always playing out
// identically during testing.
type Noise struct {
	Eval  Evaluator
	rand  *rand.Rand
	limit int
}

// NewNoise wraps eval with up to limit millipawns of symmetric noise, seeded
// deterministically from seed.
func NewNoise(eval Evaluator, limit int, seed int64) Noise {
	return Noise{
		Eval:  eval,
		rand:  rand.New(rand.NewSource(seed)),
		limit: limit,
	}
}

func (n Noise) Evaluate(pos *board.Position) Score {
	base := n.Eval.Evaluate(pos)
	if n.limit <= 0 {
		return base
	}
	jitter := Score(n.rand.Intn(n.limit)-n.limit/2) / 1000
	return base + jitter
}
