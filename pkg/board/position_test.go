package board_test

import (
	"testing"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMakeUndoRoundTrip verifies the core testable property (spec.md #1): applying
// and undoing any legal move restores the position byte-for-byte.
func TestMakeUndoRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"r3k2r/pppq1ppp/2np1n2/2b1p3/2B1P3/2NP1N2/PPPQ1PPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2",
		"6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1",
	}

	for _, tt := range tests {
		pos, err := fen.Decode(tt)
		require.NoError(t, err)

		before := *pos
		for _, m := range board.PseudoLegalMoves(pos) {
			working := before
			info := board.MakeMove(&working, m)
			board.UndoMove(&working, info)
			assert.Equal(t, before, working, "move %v on %v did not round-trip", m, tt)
		}
	}
}

// TestLegalEqualsFilteredPseudoLegal verifies spec.md #2: legal moves are exactly the
// pseudo-legal moves that don't leave the mover in check, compared as an unordered set.
func TestLegalEqualsFilteredPseudoLegal(t *testing.T) {
	tests := []string{
		fen.Initial,
		"r3k2r/pppq1ppp/2np1n2/2b1p3/2B1P3/2NP1N2/PPPQ1PPP/R3K2R w KQkq - 0 1",
		"rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3",
	}

	for _, tt := range tests {
		pos, err := fen.Decode(tt)
		require.NoError(t, err)

		var want []board.Move
		for _, m := range board.PseudoLegalMoves(pos) {
			cp := pos.Clone()
			board.MakeMove(cp, m)
			if !board.IsInCheck(cp, pos.SideToMove) {
				want = append(want, m)
			}
		}

		got := board.LegalMoves(pos)
		assert.ElementsMatch(t, want, got, "fen=%v", tt)
	}
}

func TestEnPassantAvailable(t *testing.T) {
	pos, err := fen.Decode("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2")
	require.NoError(t, err)

	legal := board.LegalMoves(pos)
	var found bool
	for _, m := range legal {
		if m.String() == "e5d6" {
			found = true
		}
	}
	assert.True(t, found, "expected e5d6 en passant capture among legal moves")
}

func TestCastlingMovesAvailable(t *testing.T) {
	pos, err := fen.Decode("r3k2r/pppq1ppp/2np1n2/2b1p3/2B1P3/2NP1N2/PPPQ1PPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	legal := board.LegalMoves(pos)
	has := map[string]bool{}
	for _, m := range legal {
		has[m.String()] = true
	}
	assert.True(t, has["e1g1"], "expected king-side castle e1g1")
	assert.True(t, has["e1c1"], "expected queen-side castle e1c1")
}

func TestStalemate(t *testing.T) {
	pos, err := fen.Decode("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	assert.Empty(t, board.LegalMoves(pos))
	assert.Equal(t, board.Stalemate, board.Status(pos))
}

func TestMateInOne(t *testing.T) {
	pos, err := fen.Decode("6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1")
	require.NoError(t, err)

	legal := board.LegalMoves(pos)
	var found bool
	for _, m := range legal {
		if m.String() != "a1a8" {
			continue
		}
		cp := pos.Clone()
		board.MakeMove(cp, m)
		if board.Status(cp) == board.Checkmate {
			found = true
		}
	}
	assert.True(t, found, "expected a1a8 to deliver checkmate")
}

func TestZobristStableAcrossMakeUndo(t *testing.T) {
	pos, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	zt := board.NewZobristTable(1)
	before := zt.Hash(pos)

	for _, m := range board.PseudoLegalMoves(pos) {
		working := *pos
		info := board.MakeMove(&working, m)
		board.UndoMove(&working, info)
		assert.Equal(t, before, zt.Hash(&working))
	}
}

func TestUnderPromotion(t *testing.T) {
	pos, err := fen.Decode("8/P6k/8/8/8/8/7K/8 w - - 0 1")
	require.NoError(t, err)

	promos := map[string]bool{}
	for _, m := range board.LegalMoves(pos) {
		if m.From().String() == "a7" {
			promos[m.String()] = true
		}
	}
	assert.True(t, promos["a7a8q"])
	assert.True(t, promos["a7a8r"])
	assert.True(t, promos["a7a8b"])
	assert.True(t, promos["a7a8n"])
}
