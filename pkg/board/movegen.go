package board

// knightOffsets and kingOffsets are the relative (dRank, dFile) steps for the
// corresponding piece, independent of board orientation.
var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

var bishopDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
var rookDirs = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
var queenDirs = [8][2]int{
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
}

var promotionPieces = [4]PieceType{Queen, Rook, Bishop, Knight}

// PseudoLegalMoves generates all pseudo-legal moves for the side to move. A pseudo-legal
// move respects piece movement rules but may leave the mover's own king in check --
// LegalMoves filters those out.
func PseudoLegalMoves(pos *Position) []Move {
	var moves []Move
	turn := pos.SideToMove

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			pc := pos.Grid[r][f]
			if pc.IsEmpty() || pc.Color != turn {
				continue
			}
			from := Square{Rank: r, File: f}

			switch pc.Type {
			case Pawn:
				genPawnMoves(pos, from, turn, &moves)
			case Knight:
				genStepMoves(pos, from, turn, knightOffsets[:], &moves)
			case Bishop:
				genSlideMoves(pos, from, turn, bishopDirs[:], &moves)
			case Rook:
				genSlideMoves(pos, from, turn, rookDirs[:], &moves)
			case Queen:
				genSlideMoves(pos, from, turn, queenDirs[:], &moves)
			case King:
				genStepMoves(pos, from, turn, kingOffsets[:], &moves)
				genCastlingMoves(pos, from, turn, &moves)
			}
		}
	}
	return moves
}

// CaptureMoves generates the capture-only (and promotion-capture) subset used by
// quiescence search: any pseudo-legal move whose destination is enemy-occupied, plus
// en passant. Quiet promotions are excluded.
func CaptureMoves(pos *Position) []Move {
	all := PseudoLegalMoves(pos)
	var out []Move
	for _, m := range all {
		to := m.To()
		if !pos.IsEmpty(to) && pos.At(to).Color == pos.SideToMove.Opponent() {
			out = append(out, m)
			continue
		}
		if isEnPassantMove(pos, m) {
			out = append(out, m)
		}
	}
	return out
}

func isEnPassantMove(pos *Position, m Move) bool {
	from, to := m.From(), m.To()
	pc := pos.At(from)
	return pc.Type == Pawn && from.File != to.File && pos.IsEmpty(to)
}

func genStepMoves(pos *Position, from Square, turn Color, offsets [][2]int, out *[]Move) {
	for _, d := range offsets {
		to := Square{Rank: from.Rank + d[0], File: from.File + d[1]}
		if !to.IsValid() {
			continue
		}
		target := pos.At(to)
		if target.IsEmpty() || target.Color != turn {
			*out = append(*out, NewMove(from, to, NoPieceType))
		}
	}
}

func genSlideMoves(pos *Position, from Square, turn Color, dirs [][2]int, out *[]Move) {
	for _, d := range dirs {
		to := Square{Rank: from.Rank + d[0], File: from.File + d[1]}
		for to.IsValid() {
			target := pos.At(to)
			if target.IsEmpty() {
				*out = append(*out, NewMove(from, to, NoPieceType))
			} else {
				if target.Color != turn {
					*out = append(*out, NewMove(from, to, NoPieceType))
				}
				break // stop after first occupied square either way
			}
			to = Square{Rank: to.Rank + d[0], File: to.File + d[1]}
		}
	}
}

func genPawnMoves(pos *Position, from Square, turn Color, out *[]Move) {
	forward := -1
	startRank := 6 // White pawns start on internal rank 6 (chess rank 2)
	lastRank := 0  // White promotes on internal rank 0 (chess rank 8)
	if turn == Black {
		forward = 1
		startRank = 1
		lastRank = 7
	}

	emitPawn := func(to Square) {
		if to.Rank == lastRank {
			for _, promo := range promotionPieces {
				*out = append(*out, NewMove(from, to, promo))
			}
		} else {
			*out = append(*out, NewMove(from, to, NoPieceType))
		}
	}

	// single push
	one := Square{Rank: from.Rank + forward, File: from.File}
	if one.IsValid() && pos.IsEmpty(one) {
		emitPawn(one)

		// double push
		if from.Rank == startRank {
			two := Square{Rank: from.Rank + 2*forward, File: from.File}
			if pos.IsEmpty(two) {
				*out = append(*out, NewMove(from, two, NoPieceType))
			}
		}
	}

	// diagonal captures (including en passant)
	for _, df := range [2]int{-1, 1} {
		to := Square{Rank: from.Rank + forward, File: from.File + df}
		if !to.IsValid() {
			continue
		}
		target := pos.At(to)
		if !target.IsEmpty() && target.Color == turn.Opponent() {
			emitPawn(to)
		} else if pos.EnPassant.IsValid() && to == pos.EnPassant {
			emitPawn(to)
		}
	}
}

// genCastlingMoves emits castling moves when the corresponding right is set, the king
// is on its home square, the intervening squares are empty, and -- per the engine's
// pre-validation of "castling through check" -- the king's current square and the
// square it passes through are not attacked. The final destination square is left to
// the legal-move filter's post-move in-check test.
func genCastlingMoves(pos *Position, from Square, turn Color, out *[]Move) {
	homeRank := 7
	if turn == Black {
		homeRank = 0
	}
	if from.Rank != homeRank || from.File != 4 {
		return
	}

	opp := turn.Opponent()
	kingSideRight, queenSideRight := WhiteKingSide, WhiteQueenSide
	if turn == Black {
		kingSideRight, queenSideRight = BlackKingSide, BlackQueenSide
	}

	if pos.Castling.IsAllowed(kingSideRight) {
		f5 := Square{Rank: homeRank, File: 5}
		f6 := Square{Rank: homeRank, File: 6}
		if pos.IsEmpty(f5) && pos.IsEmpty(f6) &&
			!IsSquareAttacked(pos, opp, from) && !IsSquareAttacked(pos, opp, f5) {
			*out = append(*out, NewMove(from, Square{Rank: homeRank, File: 6}, NoPieceType))
		}
	}
	if pos.Castling.IsAllowed(queenSideRight) {
		f1 := Square{Rank: homeRank, File: 1}
		f2 := Square{Rank: homeRank, File: 2}
		f3 := Square{Rank: homeRank, File: 3}
		if pos.IsEmpty(f1) && pos.IsEmpty(f2) && pos.IsEmpty(f3) &&
			!IsSquareAttacked(pos, opp, from) && !IsSquareAttacked(pos, opp, f3) {
			*out = append(*out, NewMove(from, Square{Rank: homeRank, File: 2}, NoPieceType))
		}
	}
}
