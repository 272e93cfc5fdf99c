package allocation

import (
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/errors"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/event"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/logging"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

// placement describes one best-fit pass.
type placement struct {
	accs   []*team.Accumulator
	mode   team.Mode
	target float64
	phase  string
}

// place assigns each candidate to its best-fit accumulator, in order when
// running sequentially. Candidates with no eligible team, and candidates
// whose placement faulted, go to the pool.
func (e *Engine) place(s *Session, pl placement, candidates []participant.Participant, log *logging.Logger) {
	if len(candidates) == 0 {
		return
	}
	if e.parallelism < 2 || len(candidates) < 2 {
		e.placeSequential(s, pl, candidates, log)
		return
	}
	e.placeParallel(s, pl, candidates, log)
}

func (e *Engine) placeSequential(s *Session, pl placement, candidates []participant.Participant, log *logging.Logger) {
	placed := 0
	for _, p := range candidates {
		if e.placeOne(s, pl, p, log) {
			placed++
		}
	}
	log.Info("placement pass done",
		"candidates", len(candidates),
		"placed", placed,
		"unplaced", len(candidates)-placed,
	)
}

// placeParallel fans candidates out to e.parallelism workers.
func (e *Engine) placeParallel(s *Session, pl placement, candidates []participant.Participant, log *logging.Logger) {
	workers := min(e.parallelism, len(candidates))
	work := make(chan participant.Participant)
	placed := make([]int, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		wlog := log.With("worker", w)
		g.Go(func() error {
			for p := range work {
				if e.placeOne(s, pl, p, wlog) {
					placed[w]++
				}
			}
			return nil
		})
	}

	for _, p := range candidates {
		work <- p
	}
	close(work)
	_ = g.Wait()

	total := 0
	for _, n := range placed {
		total += n
	}
	log.Info("placement pass done",
		"candidates", len(candidates),
		"placed", total,
		"unplaced", len(candidates)-total,
		"workers", workers,
	)
}

// placeOne finds p's best-fit accumulator and appends p to it. The append
// re-checks every constraint under the accumulator's lock; if a concurrent
// placement got there first, p goes to the pool. A fault while placing p
// sends p to the pool and leaves the rest of the pass alone.
func (e *Engine) placeOne(s *Session, pl placement, p participant.Participant, log *logging.Logger) (placed bool) {
	settled := false
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		placed = false
		if !settled {
			s.add(p)
		}
		err := errors.Wrapf(errors.ErrPlacementPanic, "participant %s: %v", p.ID, r)
		log.Error("placement failed, participant unassigned",
			"participant", p.ID,
			"error", err.Error(),
			"stack", string(debug.Stack()),
		)
		e.events.Publish(event.NewPlacementFailedEvent(s.ID(), p.ID, pl.phase, err))
	}()

	if e.placeHook != nil {
		e.placeHook(p)
	}

	acc := bestFit(pl.accs, p, pl.mode, pl.target, e.rng)
	if acc == nil {
		log.Debug("no eligible team", "participant", p.ID, "archetype", string(p.Archetype))
		settled = true
		s.add(p)
		return false
	}
	if e.raceHook != nil {
		e.raceHook(acc, p)
	}
	if r := acc.TryAdd(p, pl.mode); r != team.Accepted {
		log.Warn("placement lost race, participant unassigned",
			"participant", p.ID,
			"team", acc.Ordinal(),
			"reason", r.String(),
		)
		settled = true
		s.add(p)
		e.events.Publish(event.NewPlacementReroutedEvent(s.ID(), p.ID, acc.Ordinal(), r.String()))
		return false
	}
	settled = true
	log.Debug("participant placed", "participant", p.ID, "team", acc.Ordinal())
	return true
}
