package allocation

import (
	"context"
	"fmt"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/event"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/logging"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// Phase names used in logs and FormationError stages.
const (
	PhaseLeaders     = "leaders"
	PhaseThinkers    = "thinkers"
	PhaseGeneralists = "generalists"
	PhaseFinalize    = "finalize"
	PhaseLeftover    = "leftover"
)

// Pass names carried by formation.completed events.
const (
	PassPrimary  = "primary"
	PassLeftover = "leftover"
)

// Engine forms teams. An Engine holds no per-run state and may serve any
// number of Sessions concurrently.
type Engine struct {
	caps        team.Limits
	parallelism int
	rng         *lockedRand
	logger      *logging.Logger
	events      *event.Bus
	placeHook   func(participant.Participant)
	raceHook    func(*team.Accumulator, participant.Participant)
}

// NewEngine creates an Engine with default caps, sequential placement and a
// time-seeded random source.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		caps:        team.DefaultLimits(0),
		parallelism: 1,
		logger:      logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = defaultRand()
	}
	return e
}

// Limits returns the constraint set used for teams of the given size.
func (e *Engine) Limits(size int) team.Limits {
	l := e.caps
	l.Size = size
	return l
}

// FormTeams runs the primary pass over participants, replacing the
// Session's unassigned pool with whoever is left over.
//
// A non-positive size, an empty input or an input that cannot fill a single
// leader-seeded team is not an error: the result is empty and every
// participant lands in the pool. A fault while placing one participant sends
// that participant to the pool and the run goes on. Only a broken run
// invariant fails the pass; the pool then holds the whole input, as if no
// team could be formed. A canceled ctx is honored only before the run
// starts; a started run always completes.
func (e *Engine) FormTeams(ctx context.Context, s *Session, participants []participant.Participant, size int) ([]team.Team, error) {
	if s == nil {
		return nil, errors.ErrNilSession
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.Join(errors.ErrCanceled, err), "form teams")
	}

	s.run.Lock()
	defer s.run.Unlock()

	input := normalize(participants)
	s.replace(nil)

	log := e.logger.WithRun(s.ID()).With("team_size", size)

	limits := e.Limits(size)
	if err := limits.Validate(); err != nil || len(input) == 0 {
		s.add(input...)
		log.Warn("formation skipped", "reason", "invalid parameters", "participants", len(input), "error", err)
		e.events.Publish(event.NewFormationCompletedEvent(s.ID(), PassPrimary, 0, s.Len(), "invalid parameters"))
		return nil, nil
	}

	target := participant.AverageSkill(input)

	var leaders, thinkers, generalists []participant.Participant
	for _, p := range input {
		switch p.Archetype {
		case participant.Leader:
			leaders = append(leaders, p)
		case participant.Thinker:
			thinkers = append(thinkers, p)
		case participant.Balanced, participant.Motivator:
			generalists = append(generalists, p)
		default:
			log.Warn("unknown archetype, participant left unassigned", "participant", p.ID, "archetype", string(p.Archetype))
			s.add(p)
		}
	}

	possible := min(len(leaders), len(input)/size)
	if possible == 0 {
		s.replace(input)
		log.Warn("formation infeasible",
			"leaders", len(leaders),
			"participants", len(input),
		)
		e.events.Publish(event.NewFormationCompletedEvent(s.ID(), PassPrimary, 0, s.Len(), "infeasible"))
		return nil, nil
	}

	leaders = e.rng.shuffled(leaders)
	thinkers = e.rng.shuffled(thinkers)
	generalists = e.rng.shuffled(generalists)

	// Leaders
	accs := make([]*team.Accumulator, possible)
	for i := range accs {
		accs[i] = team.NewAccumulator(i+1, limits)
		accs[i].Seed(leaders[i])
	}
	s.add(leaders[possible:]...)
	log.WithPhase(PhaseLeaders).Info("teams seeded",
		"teams", possible,
		"surplus_leaders", len(leaders)-possible,
		"target_avg", target,
	)
	e.events.Publish(event.NewPhaseCompletedEvent(s.ID(), PhaseLeaders, possible, s.Len()))

	// Thinkers: one per team, then best fit under the Thinker cap.
	var deferred []participant.Participant
	tlog := log.WithPhase(PhaseThinkers)
	paired := min(len(thinkers), len(accs))
	for i := 0; i < paired; i++ {
		if r := accs[i].TryAdd(thinkers[i], team.ModeRelaxed); r != team.Accepted {
			tlog.Debug("thinker deferred", "participant", thinkers[i].ID, "team", accs[i].Ordinal(), "reason", r.String())
			deferred = append(deferred, thinkers[i])
		}
	}
	for _, t := range thinkers[paired:] {
		acc := bestFit(accs, t, team.ModeConstrained, target, e.rng)
		if acc == nil || acc.TryAdd(t, team.ModeConstrained) != team.Accepted {
			tlog.Debug("second thinker deferred", "participant", t.ID)
			deferred = append(deferred, t)
		}
	}
	tlog.Info("thinkers placed",
		"thinkers", len(thinkers),
		"deferred", len(deferred),
	)
	e.events.Publish(event.NewPhaseCompletedEvent(s.ID(), PhaseThinkers, possible, s.Len()))

	// Generalists, with deferred Thinkers first.
	pool := make([]participant.Participant, 0, len(deferred)+len(generalists))
	pool = append(pool, deferred...)
	pool = append(pool, generalists...)

	pl := placement{accs: accs, mode: team.ModeConstrained, target: target, phase: PhaseGeneralists}
	e.place(s, pl, pool, log.WithPhase(PhaseGeneralists))
	e.events.Publish(event.NewPhaseCompletedEvent(s.ID(), PhaseGeneralists, possible, s.Len()))

	teams := e.finalize(s, accs, log.WithPhase(PhaseFinalize))
	if err := verify(input, teams, s.Unassigned(), limits, team.ModeConstrained); err != nil {
		fe := e.formationError(err, s, PhaseFinalize, size, counts{len(input), len(teams), s.Len()})
		s.replace(input)
		return nil, fe
	}
	s.advance(len(teams))
	e.events.Publish(event.NewPhaseCompletedEvent(s.ID(), PhaseFinalize, len(teams), s.Len()))

	log.Info("formation complete",
		"teams", len(teams),
		"unassigned", s.Len(),
	)
	e.events.Publish(event.NewFormationCompletedEvent(s.ID(), PassPrimary, len(teams), s.Len(), ""))
	return teams, nil
}

// finalize completes every full accumulator, numbering teams after those
// already formed in s, and dissolves the rest into the pool.
func (e *Engine) finalize(s *Session, accs []*team.Accumulator, log *logging.Logger) []team.Team {
	base := s.TeamsFormed()
	var teams []team.Team
	for _, a := range accs {
		tlog := log.WithTeam(a.Ordinal())
		if t, ok := a.Complete(base + len(teams) + 1); ok {
			tlog.Debug("team completed", "number", t.Number, "avg_skill", t.AverageSkill())
			teams = append(teams, t)
			continue
		}
		st := a.Stats()
		members := a.Dissolve()
		tlog.Debug("team dissolved",
			"members", st.Size,
			"skill_sum", st.SkillSum,
			"activities", st.Activities,
			"archetypes", st.Archetypes,
		)
		s.add(members...)
	}
	return teams
}

// counts is the participant accounting attached to a FormationError.
type counts struct {
	participants, teams, pool int
}

// formationError wraps err as a FormationError unless it already is one.
func (e *Engine) formationError(err error, s *Session, stage string, size int, c counts) *errors.FormationError {
	var fe *errors.FormationError
	if !errors.As(err, &fe) {
		fe = errors.NewFormationError(fmt.Sprintf("%s pass failed", stage), err)
	}
	if fe.Stage == "" {
		fe = fe.WithStage(stage)
	}
	fe = fe.WithRunID(s.ID()).WithTeamSize(size).WithCounts(c.participants, c.teams, c.pool)
	e.logger.WithRun(s.ID()).WithPhase(stage).Error("formation failed", "error", fe.Error())
	e.events.Publish(event.NewFormationFailedEvent(s.ID(), stage, fe))
	return fe
}

// normalize copies participants, clearing any stale team number.
func normalize(ps []participant.Participant) []participant.Participant {
	out := make([]participant.Participant, len(ps))
	for i, p := range ps {
		p.TeamNumber = 0
		out[i] = p
	}
	return out
}
