package engine_test

import (
	"fmt"
	"testing"

	"github.com/haktanpolatt/Mergen/pkg/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBestMoveScenarios(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want string // exact expected move
	}{
		{"mate in one", "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", "a1a8"},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", "0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := engine.New("test")
			move, err := e.FindBestMove(tt.fen, 3)
			require.NoError(t, err)
			assert.Equal(t, tt.want, move)
		})
	}
}

func TestFindBestMoveFoolsMateIsLegal(t *testing.T) {
	e := engine.New("test")
	move, err := e.FindBestMove("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 3", 1)
	require.NoError(t, err)
	assert.NotEqual(t, "0000", move)
}

func TestEvaluateFENInitialIsNearZero(t *testing.T) {
	e := engine.New("test")
	score, err := e.EvaluateFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	assert.InDelta(t, 0, score, 0.01)
}

func TestGetSearchInfoOnCastlingPosition(t *testing.T) {
	e := engine.New("test")
	info, err := e.GetSearchInfo("r3k2r/pppq1ppp/2np1n2/2b1p3/2B1P3/2NP1N2/PPPQ1PPP/R3K2R w KQkq - 0 1", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, info)
}

func TestFindBestMoveInvalidFEN(t *testing.T) {
	e := engine.New("test")
	_, err := e.FindBestMove("not a fen", 3)
	assert.ErrorIs(t, err, engine.ErrInvalidFEN)
}

func TestFindBestMoveInvalidDepth(t *testing.T) {
	e := engine.New("test")
	_, err := e.FindBestMove("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 0)
	assert.ErrorIs(t, err, engine.ErrInvalidDepth)
}

func TestFindBestMoveParallelInvalidThreads(t *testing.T) {
	e := engine.New("test")
	_, err := e.FindBestMoveParallel("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 2, 0)
	assert.ErrorIs(t, err, engine.ErrInvalidThreadCount)
}

func TestFindBestMoveTimedReturnsMove(t *testing.T) {
	e := engine.New("test")
	move, depth, elapsed, err := e.FindBestMoveTimed("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 200)
	require.NoError(t, err)
	assert.NotEqual(t, "0000", move)
	assert.GreaterOrEqual(t, depth, 1)
	assert.GreaterOrEqual(t, elapsed.Milliseconds(), int64(0))
}

func TestFindBestMoveParallel(t *testing.T) {
	e := engine.New("test")
	move, err := e.FindBestMoveParallel("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 3, 4)
	require.NoError(t, err)
	assert.NotEqual(t, "0000", move)
}

func TestGetCPUCoresPositive(t *testing.T) {
	assert.Greater(t, engine.GetCPUCores(), 0)
}

func TestSetHashSizeResizes(t *testing.T) {
	e := engine.New("test")
	e.SetHashSize(4)
	move, err := e.FindBestMove("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 2)
	require.NoError(t, err)
	assert.NotEqual(t, "0000", move)
}

// TestWarmTranspositionTableNeverRegresses verifies spec.md #7: once the transposition
// table has been warmed by a search at a given depth, repeating that same search never
// reports a worse score -- a warm TT only ever supplies tighter bounds or exact hits, so
// there is nothing for a later identical search to lose ground on.
func TestWarmTranspositionTableNeverRegresses(t *testing.T) {
	e := engine.New("test")
	fen := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"

	var prevScore float64
	for i := 0; i < 4; i++ {
		info, err := e.GetSearchInfo(fen, 4)
		require.NoError(t, err)

		var depth int
		var score float64
		var move string
		_, err = fmt.Sscanf(info, "%d %f %s", &depth, &score, &move)
		require.NoError(t, err)

		if i > 0 {
			assert.GreaterOrEqual(t, score, prevScore, "search %d regressed below search %d's score", i, i-1)
		}
		prevScore = score
	}
}
