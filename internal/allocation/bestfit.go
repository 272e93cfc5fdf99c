package allocation

import (
	"math"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// tieEpsilon treats scores this close as equal.
const tieEpsilon = 1e-9

// bestFit returns the eligible accumulator whose post-placement average skill
// is closest to target, choosing uniformly among ties. It returns nil when no
// accumulator accepts p under mode.
func bestFit(accs []*team.Accumulator, p participant.Participant, mode team.Mode, target float64, rng *lockedRand) *team.Accumulator {
	var tied []*team.Accumulator
	bestScore := math.Inf(1)

	for _, a := range accs {
		score, r := a.Evaluate(p, mode, target)
		if r != team.Accepted {
			continue
		}
		switch {
		case score < bestScore-tieEpsilon:
			tied = append(tied[:0], a)
			bestScore = score
		case score <= bestScore+tieEpsilon:
			tied = append(tied, a)
		}
	}

	switch len(tied) {
	case 0:
		return nil
	case 1:
		return tied[0]
	default:
		return tied[rng.IntN(len(tied))]
	}
}
