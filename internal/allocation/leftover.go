package allocation

import (
	"context"
	"sort"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/event"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// FormLeftoverTeams re-forms the Session's unassigned pool into as many
// complete teams as the relaxed constraints allow. Archetype quotas do not
// apply; capacity and the activity cap do. Teams are numbered after those
// already formed in the Session.
//
// When the pool holds fewer than size participants, or size is not positive,
// the result is empty and the pool is left untouched.
// A broken run invariant fails the pass and restores the pool it started
// with.
func (e *Engine) FormLeftoverTeams(ctx context.Context, s *Session, size int) ([]team.Team, error) {
	if s == nil {
		return nil, errors.ErrNilSession
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.Join(errors.ErrCanceled, err), "form leftover teams")
	}

	s.run.Lock()
	defer s.run.Unlock()

	input := s.Unassigned()
	log := e.logger.WithRun(s.ID()).WithPhase(PhaseLeftover).With("team_size", size)

	limits := e.Limits(size)
	if err := limits.Validate(); err != nil {
		log.Debug("leftover pass skipped", "pool", len(input), "error", err)
		e.events.Publish(event.NewFormationCompletedEvent(s.ID(), PassLeftover, 0, len(input), "invalid parameters"))
		return nil, nil
	}
	if len(input) < size {
		log.Debug("leftover pass skipped", "pool", len(input))
		e.events.Publish(event.NewFormationCompletedEvent(s.ID(), PassLeftover, 0, len(input), "pool smaller than team size"))
		return nil, nil
	}

	target := participant.AverageSkill(input)

	ranked := make([]participant.Participant, len(input))
	copy(ranked, input)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SkillLevel > ranked[j].SkillLevel
	})

	accs := make([]*team.Accumulator, len(ranked)/size)
	for i := range accs {
		accs[i] = team.NewAccumulator(i+1, limits)
		accs[i].Seed(ranked[i])
	}
	rest := e.rng.shuffled(ranked[len(accs):])

	log.Info("leftover teams seeded",
		"teams", len(accs),
		"pool", len(input),
		"target_avg", target,
	)

	s.replace(nil)
	pl := placement{accs: accs, mode: team.ModeRelaxed, target: target, phase: PhaseLeftover}
	e.place(s, pl, rest, log)

	teams := e.finalize(s, accs, log)
	if err := verify(input, teams, s.Unassigned(), limits, team.ModeRelaxed); err != nil {
		fe := e.formationError(err, s, PhaseLeftover, size, counts{len(input), len(teams), s.Len()})
		s.replace(input)
		return nil, fe
	}
	s.advance(len(teams))
	e.events.Publish(event.NewPhaseCompletedEvent(s.ID(), PhaseLeftover, len(teams), s.Len()))

	log.Info("leftover pass complete",
		"teams", len(teams),
		"unassigned", s.Len(),
	)
	e.events.Publish(event.NewFormationCompletedEvent(s.ID(), PassLeftover, len(teams), s.Len(), ""))
	return teams, nil
}
