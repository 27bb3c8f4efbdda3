// Package fen contains utilities for reading and writing positions in FEN notation.
// It is a pure syntactic front-end: its output is the engine's canonical Position
// structure, and it has no knowledge of search or evaluation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/haktanpolatt/Mergen/pkg/board"
)

// Initial is the standard starting position.
const Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Decode parses a FEN string into a Position. Only the first four fields (piece
// placement, side to move, castling rights, en passant target) are consumed; the
// halfmove clock and fullmove number, if present, are ignored per the engine's scope.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(s string) (*board.Position, error) {
	parts := strings.Fields(strings.TrimSpace(s))
	if len(parts) < 4 {
		return nil, fmt.Errorf("invalid FEN, expected at least 4 fields: %q", s)
	}

	pos := board.NewEmptyPosition()

	// (1) Piece placement: ranks from 8 down to 1, files a through h within a rank.
	// Internal rank 0 is chess rank 8, so ranks are filled in encounter order.

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("invalid FEN, expected 8 ranks: %q", s)
	}
	for r, rank := range ranks {
		f := 0
		for _, ch := range rank {
			switch {
			case unicode.IsDigit(ch):
				f += int(ch - '0')
			default:
				color, piece, ok := parsePiece(ch)
				if !ok {
					return nil, fmt.Errorf("invalid piece %q in FEN: %q", ch, s)
				}
				if f >= 8 {
					return nil, fmt.Errorf("invalid FEN, rank %v overflows: %q", r, s)
				}
				pos.Grid[r][f] = board.Piece{Type: piece, Color: color}
				f++
			}
		}
		if f != 8 {
			return nil, fmt.Errorf("invalid FEN, rank %v has %v squares: %q", r, f, s)
		}
	}

	// (2) Active color.

	turn, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: %q", s)
	}
	pos.SideToMove = turn

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling rights in FEN: %q", s)
	}
	pos.Castling = castling

	// (4) En passant target square.

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant square in FEN: %q: %w", s, err)
		}
		ep = sq
	}
	pos.EnPassant = ep

	return pos, nil
}

// Encode renders a position as a FEN string. noprogress and fullmoves fill the
// halfmove-clock and fullmove-number fields the core does not track; callers that
// don't track game history may pass 0 and 1 respectively.
func Encode(pos *board.Position, noprogress, fullmoves int) string {
	var sb strings.Builder
	for r := 0; r < 8; r++ {
		blanks := 0
		for f := 0; f < 8; f++ {
			pc := pos.Grid[r][f]
			if pc.IsEmpty() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(pc.Color, pc.Type))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r < 7 {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if pos.EnPassant.IsValid() {
		ep = pos.EnPassant.String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), printColor(pos.SideToMove), printCastling(pos.Castling), ep, noprogress, fullmoves)
}

func parseCastling(s string) (board.Castling, bool) {
	var ret board.Castling
	if s == "-" {
		return ret, true
	}
	for _, r := range s {
		switch r {
		case 'K':
			ret |= board.WhiteKingSide
		case 'Q':
			ret |= board.WhiteQueenSide
		case 'k':
			ret |= board.BlackKingSide
		case 'q':
			ret |= board.BlackQueenSide
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	return c.String()
}

func parseColor(s string) (board.Color, bool) {
	switch s {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func printColor(c board.Color) string {
	if c == board.White {
		return "w"
	}
	return "b"
}

func parsePiece(r rune) (board.Color, board.PieceType, bool) {
	pt, ok := board.ParsePieceType(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, pt, true
	}
	return board.Black, pt, true
}

func printPiece(c board.Color, p board.PieceType) rune {
	s := p.String()
	r := rune(s[0])
	if c == board.White {
		r = unicode.ToUpper(r)
	}
	return r
}
