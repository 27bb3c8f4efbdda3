package eval_test

import (
	"testing"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/board/fen"
	"github.com/haktanpolatt/Mergen/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMaterialMirrorSymmetry verifies spec.md #4: evaluating a position and its
// color-and-board mirror must yield negated scores.
func TestMaterialMirrorSymmetry(t *testing.T) {
	tests := []string{
		fen.Initial,
		"r3k2r/pppq1ppp/2np1n2/2b1p3/2B1P3/2NP1N2/PPPQ1PPP/R3K2R w KQkq - 0 1",
		"8/P6k/8/8/8/8/7K/8 w - - 0 1",
	}

	var m eval.Material
	for _, tt := range tests {
		pos, err := fen.Decode(tt)
		require.NoError(t, err)

		a := m.Evaluate(pos)
		b := m.Evaluate(pos.Mirror())
		assert.Equal(t, a, -b, "fen=%v", tt)
	}
}

func TestNoiseZeroLimitIsExact(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	n := eval.NewNoise(eval.Material{}, 0, 1)
	assert.Equal(t, eval.Material{}.Evaluate(pos), n.Evaluate(pos))
}

func TestNominalValueKingIsZero(t *testing.T) {
	assert.Equal(t, float64(0), eval.NominalValue(board.King))
}
