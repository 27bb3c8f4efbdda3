package board

// MakeMove mutates pos into the position after m and returns a MoveInfo sufficient to
// restore pos byte-for-byte via UndoMove. It assumes m is at least pseudo-legal for the
// side to move; behavior on an illegal move string is unspecified.
func MakeMove(pos *Position, m Move) MoveInfo {
	from, to := m.From(), m.To()
	turn := pos.SideToMove
	moved := pos.At(from)

	info := MoveInfo{
		From:           from,
		To:             to,
		Moved:          moved,
		CapturedAt:     to,
		PrevEnPassant:  pos.EnPassant,
		PrevSideToMove: turn,
		PrevCastling:   pos.Castling,
	}

	isEnPassant := moved.Type == Pawn && from.File != to.File && pos.IsEmpty(to)
	if isEnPassant {
		capSq := Square{Rank: from.Rank, File: to.File}
		info.IsEnPassant = true
		info.CapturedAt = capSq
		info.Captured = pos.At(capSq)
		pos.set(capSq, Empty)
	} else {
		info.Captured = pos.At(to)
	}

	// Move the piece.
	pos.set(from, Empty)
	placed := moved

	// Promotion.
	lastRank := turn.lastRank()
	if moved.Type == Pawn && to.Rank == lastRank {
		promo := m.Promotion()
		if promo == NoPieceType {
			promo = Queen
		}
		placed = Piece{Type: promo, Color: turn}
	}
	pos.set(to, placed)

	// Castling: king moving two files sideways also relocates the rook.
	if moved.Type == King {
		df := to.File - from.File
		if df == 2 || df == -2 {
			info.IsCastle = true
			homeRank := from.Rank
			if df == 2 {
				info.RookFrom = Square{Rank: homeRank, File: 7}
				info.RookTo = Square{Rank: homeRank, File: 5}
			} else {
				info.RookFrom = Square{Rank: homeRank, File: 0}
				info.RookTo = Square{Rank: homeRank, File: 3}
			}
			rook := pos.At(info.RookFrom)
			pos.set(info.RookFrom, Empty)
			pos.set(info.RookTo, rook)
		}
	}

	// Castling rights: cleared conservatively.
	pos.Castling = updateCastlingRights(pos.Castling, turn, moved, from, to, info.Captured, info.CapturedAt, isEnPassant)

	// En passant target: only set immediately after a pawn double push.
	dr := to.Rank - from.Rank
	if moved.Type == Pawn && (dr == 2 || dr == -2) {
		pos.EnPassant = Square{Rank: (from.Rank + to.Rank) / 2, File: from.File}
	} else {
		pos.EnPassant = NoSquare
	}

	pos.SideToMove = turn.Opponent()
	return info
}

// UndoMove restores pos to the state before the move described by info was made.
func UndoMove(pos *Position, info MoveInfo) {
	pos.SideToMove = info.PrevSideToMove
	pos.EnPassant = info.PrevEnPassant
	pos.Castling = info.PrevCastling

	pos.set(info.From, info.Moved)
	pos.set(info.To, Empty)

	if info.IsEnPassant {
		pos.set(info.CapturedAt, info.Captured)
	} else if !info.Captured.IsEmpty() {
		pos.set(info.CapturedAt, info.Captured)
	}

	if info.IsCastle {
		rook := pos.At(info.RookTo)
		pos.set(info.RookTo, Empty)
		pos.set(info.RookFrom, rook)
	}
}

// updateCastlingRights applies the conservative clearing rules: any king move clears
// both of that color's rights; a rook move from, or a capture on, a home corner clears
// the matching right.
func updateCastlingRights(c Castling, turn Color, moved Piece, from, to Square, captured Piece, capturedAt Square, isEnPassant bool) Castling {
	if moved.Type == King {
		if turn == White {
			c = c.Clear(WhiteKingSide | WhiteQueenSide)
		} else {
			c = c.Clear(BlackKingSide | BlackQueenSide)
		}
	}
	if moved.Type == Rook {
		c = c.Clear(rightForRookCorner(turn, from))
	}
	if !isEnPassant && !captured.IsEmpty() && captured.Type == Rook {
		c = c.Clear(rightForRookCorner(captured.Color, capturedAt))
	}
	return c
}

// rightForRookCorner returns the single castling right matching a rook's home corner,
// or 0 if the square is not a rook home corner for that color.
func rightForRookCorner(c Color, sq Square) Castling {
	switch {
	case c == White && sq == (Square{Rank: 7, File: 7}):
		return WhiteKingSide
	case c == White && sq == (Square{Rank: 7, File: 0}):
		return WhiteQueenSide
	case c == Black && sq == (Square{Rank: 0, File: 7}):
		return BlackKingSide
	case c == Black && sq == (Square{Rank: 0, File: 0}):
		return BlackQueenSide
	default:
		return 0
	}
}
