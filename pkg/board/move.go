package board

import "fmt"

// Move is a UCI-style move string: "f1r1f2r2[p]", where the optional 5th character is
// a lowercase promotion piece in {q,r,b,n}. It does not encode capture, check, castling
// or en passant -- MakeMove deduces those from the position. NullMove ("0000") is the
// sentinel for "no legal move" (checkmate/stalemate).
type Move string

// NullMove is the sentinel returned when a position has no legal moves.
const NullMove Move = "0000"

// NewMove builds a move string from its parts. promo may be NoPieceType for none.
func NewMove(from, to Square, promo PieceType) Move {
	s := from.String() + to.String()
	if promo.IsValid() {
		s += promo.String()
	}
	return Move(s)
}

// ParseMove validates the syntactic shape of a move string -- it does not check
// legality or even that the squares are non-empty.
func ParseMove(s string) (Move, error) {
	if s == string(NullMove) {
		return NullMove, nil
	}
	if len(s) != 4 && len(s) != 5 {
		return "", fmt.Errorf("invalid move: %q", s)
	}
	if _, err := ParseSquare(s[0:2]); err != nil {
		return "", fmt.Errorf("invalid move %q: %w", s, err)
	}
	if _, err := ParseSquare(s[2:4]); err != nil {
		return "", fmt.Errorf("invalid move %q: %w", s, err)
	}
	if len(s) == 5 {
		switch s[4] {
		case 'q', 'r', 'b', 'n':
		default:
			return "", fmt.Errorf("invalid promotion in move %q", s)
		}
	}
	return Move(s), nil
}

// From returns the origin square.
func (m Move) From() Square {
	sq, _ := ParseSquare(string(m)[0:2])
	return sq
}

// To returns the destination square.
func (m Move) To() Square {
	sq, _ := ParseSquare(string(m)[2:4])
	return sq
}

// Promotion returns the requested promotion piece, or NoPieceType if none was given
// in the move string. MakeMove defaults an unspecified promotion to Queen.
func (m Move) Promotion() PieceType {
	if len(m) != 5 {
		return NoPieceType
	}
	pt, _ := ParsePieceType(rune(m[4]))
	return pt
}

// IsNull reports whether m is the "no legal move" sentinel.
func (m Move) IsNull() bool {
	return m == NullMove || m == ""
}

func (m Move) String() string {
	return string(m)
}
