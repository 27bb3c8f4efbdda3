package eval

import "fmt"

// Score is a signed evaluation in pawns. Positive favors White. Search internally uses
// the same type for mate-distance scores (see MateScore), kept well outside the range
// any static evaluator should return.
type Score float64

const (
	MinScore Score = -1_000_000
	MaxScore Score = 1_000_000

	// MateScore anchors forced-mate scores. A search that detects mate in N plies
	// returns MateScore-N from the mating side's perspective (its negation from the
	// perspective of the side being mated), so shorter mates sort strictly
	// ahead of longer ones and are never confused with a large material evaluation.
	MateScore Score = 100_000
)

// IsMateScore reports whether s represents a forced mate (for either side).
func IsMateScore(s Score) bool {
	return s > MateScore-1000 || s < -MateScore+1000
}

func (s Score) String() string {
	return fmt.Sprintf("%.2f", float64(s))
}

func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}
