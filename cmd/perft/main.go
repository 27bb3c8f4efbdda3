// perft is a move-generator debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/haktanpolatt/Mergen/pkg/board"
	"github.com/haktanpolatt/Mergen/pkg/board/fen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "search depth")
	position = flag.String("fen", "", "start position (defaults to standard)")
	divide   = flag.Bool("divide", false, "print per-move counts and a position fingerprint at the final depth")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	if *position == "" {
		*position = fen.Initial
	}

	pos, err := fen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "invalid fen %q: %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(pos, i, *divide && i == *depth)
		elapsed := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, nodes, elapsed.Microseconds())
	}
}

// perft counts the leaf nodes reachable from pos in exactly depth plies, over the
// pseudo-legal move set filtered to legal at each step (a move is legal iff it does not
// leave the mover's own king attacked).
func perft(pos *board.Position, depth int, divide bool) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	turn := pos.SideToMove
	for _, m := range board.PseudoLegalMoves(pos) {
		info := board.MakeMove(pos, m)
		if board.IsInCheck(pos, turn) {
			board.UndoMove(pos, info)
			continue
		}

		count := perft(pos, depth-1, false)
		if divide {
			h := xxhash.Sum64String(pos.String())
			fmt.Printf("%v: %v (fingerprint=%x)\n", m, count, h)
		}
		nodes += count

		board.UndoMove(pos, info)
	}
	return nodes
}
