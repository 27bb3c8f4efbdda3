package board_test

import (
	"testing"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSquareOrientation(t *testing.T) {
	// e1 is White's king home square: internal rank 7 (chess rank 1), file 4 (e).
	e1, err := board.ParseSquare("e1")
	require.NoError(t, err)
	assert.Equal(t, board.Square{Rank: 7, File: 4}, e1)

	// e8 is Black's king home square: internal rank 0 (chess rank 8), file 4 (e).
	e8, err := board.ParseSquare("e8")
	require.NoError(t, err)
	assert.Equal(t, board.Square{Rank: 0, File: 4}, e8)

	a1, err := board.ParseSquare("a1")
	require.NoError(t, err)
	assert.Equal(t, board.Square{Rank: 7, File: 0}, a1)

	h8, err := board.ParseSquare("h8")
	require.NoError(t, err)
	assert.Equal(t, board.Square{Rank: 0, File: 7}, h8)
}

func TestSquareStringRoundTrip(t *testing.T) {
	for _, s := range []string{"a1", "e4", "h8", "d6", "f2"} {
		sq, err := board.ParseSquare(s)
		require.NoError(t, err)
		assert.Equal(t, s, sq.String())
	}
}

func TestParseSquareRejectsInvalid(t *testing.T) {
	for _, s := range []string{"", "i1", "a9", "a0", "aa", "e"} {
		_, err := board.ParseSquare(s)
		assert.Error(t, err)
	}
}
