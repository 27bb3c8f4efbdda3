package search_test

import (
	"testing"

	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestMVVLVAFavorsHighValueVictim(t *testing.T) {
	takesQueen := search.MVVLVA(board.Queen, board.Pawn)
	takesPawn := search.MVVLVA(board.Pawn, board.Pawn)
	assert.Greater(t, takesQueen, takesPawn)
}

func TestMVVLVATiebreaksOnAttacker(t *testing.T) {
	pawnTakes := search.MVVLVA(board.Rook, board.Pawn)
	queenTakes := search.MVVLVA(board.Rook, board.Queen)
	assert.Greater(t, pawnTakes, queenTakes)
}

func TestKillerTableRecordsTwoMovesPerPly(t *testing.T) {
	k := search.NewKillerTable(8)
	k.Record(2, "e2e4")
	k.Record(2, "d2d4")

	assert.True(t, k.IsKiller(2, "e2e4"))
	assert.True(t, k.IsKiller(2, "d2d4"))
	assert.False(t, k.IsKiller(2, "g1f3"))
	assert.False(t, k.IsKiller(3, "e2e4"))
}

func TestKillerTableIgnoresDuplicate(t *testing.T) {
	k := search.NewKillerTable(8)
	k.Record(1, "e2e4")
	k.Record(1, "e2e4")
	assert.True(t, k.IsKiller(1, "e2e4"))
}

func TestHistoryTableAccumulatesByDepthSquared(t *testing.T) {
	h := search.NewHistoryTable()
	m := board.NewMove(board.Square{Rank: 6, File: 4}, board.Square{Rank: 4, File: 4}, board.NoPieceType)

	h.Record(m, 3)
	assert.Equal(t, search.Priority(9), h.Score(m))
	h.Record(m, 3)
	assert.Equal(t, search.Priority(18), h.Score(m))
}

func TestMoveListOrdersDescending(t *testing.T) {
	moves := []board.Move{"e2e4", "d2d4", "g1f3"}
	priorities := map[board.Move]search.Priority{"e2e4": 10, "d2d4": 30, "g1f3": 20}

	ml := search.NewMoveList(moves, func(m board.Move) search.Priority { return priorities[m] })

	var order []board.Move
	for {
		m, ok := ml.Next()
		if !ok {
			break
		}
		order = append(order, m)
	}
	assert.Equal(t, []board.Move{"d2d4", "g1f3", "e2e4"}, order)
}
