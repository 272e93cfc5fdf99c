package allocation

import (
	"fmt"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// verify checks a finished run: every completed team satisfies limits under
// mode, and teams plus pool hold exactly the input participants, each once.
func verify(input []participant.Participant, teams []team.Team, pool []participant.Participant, limits team.Limits, mode team.Mode) error {
	for _, t := range teams {
		if err := t.CheckLimits(limits, mode); err != nil {
			return errors.NewFormationError(err.Error(), errors.ErrInvariantViolated)
		}
	}

	placed := 0
	for _, t := range teams {
		placed += t.Size()
	}
	if placed+len(pool) != len(input) {
		return errors.NewFormationError(
			fmt.Sprintf("%d placed and %d unassigned do not account for %d participants", placed, len(pool), len(input)),
			errors.ErrInvariantViolated,
		)
	}

	seen := make(map[participant.Participant]int, len(input))
	for _, p := range input {
		seen[p]++
	}
	take := func(p participant.Participant) error {
		p.TeamNumber = 0
		if seen[p] == 0 {
			return errors.NewFormationError(
				fmt.Sprintf("participant %s counted twice or not in input", p.ID),
				errors.ErrInvariantViolated,
			)
		}
		seen[p]--
		return nil
	}
	for _, t := range teams {
		for _, m := range t.Members {
			if m.TeamNumber != t.Number {
				return errors.NewFormationError(
					fmt.Sprintf("participant %s in team %d carries team number %d", m.ID, t.Number, m.TeamNumber),
					errors.ErrInvariantViolated,
				)
			}
			if err := take(m); err != nil {
				return err
			}
		}
	}
	for _, p := range pool {
		if err := take(p); err != nil {
			return err
		}
	}
	return nil
}
