package allocation

import (
	"math/rand/v2"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/event"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/logging"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for shuffles and tie-breaks.
// The Engine serializes access to r, so it may be shared with nothing else.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = newLockedRand(r)
		}
	}
}

// WithSeed seeds the Engine's random source. A zero seed keeps the
// time-based default.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = newLockedRand(rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1)))
		}
	}
}

// WithParallelism sets the number of workers used for generalist placement.
// Values below 2 run placement sequentially.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		e.parallelism = max(n, 1)
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithEvents publishes phase, completion and reroute events to bus.
func WithEvents(bus *event.Bus) Option {
	return func(e *Engine) {
		e.events = bus
	}
}

// WithCaps overrides the activity cap, the Thinker cap and the archetype
// diversity threshold. Non-positive values keep the defaults.
func WithCaps(activityCap, thinkerCap, diversityThreshold int) Option {
	return func(e *Engine) {
		if activityCap > 0 {
			e.caps.ActivityCap = activityCap
		}
		if thinkerCap > 0 {
			e.caps.ThinkerCap = thinkerCap
		}
		if diversityThreshold > 0 {
			e.caps.DiversityThreshold = diversityThreshold
		}
	}
}

// withPlaceHook installs a callback invoked before every best-fit placement.
// Tests use it to inject faults into placement workers.
func withPlaceHook(fn func(participant.Participant)) Option {
	return func(e *Engine) {
		e.placeHook = fn
	}
}

// withRaceHook installs a callback invoked between best-fit selection and
// the locked append. Tests use it to make the chosen team ineligible.
func withRaceHook(fn func(*team.Accumulator, participant.Participant)) Option {
	return func(e *Engine) {
		e.raceHook = fn
	}
}
