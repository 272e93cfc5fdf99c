package team

import (
	"math"
	"sync"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
)

// Accumulator tracks one in-progress team during a formation run.
type Accumulator struct {
	mu         sync.RWMutex
	ordinal    int
	limits     Limits
	members    []participant.Participant
	activities map[string]int
	archetypes map[participant.Archetype]int
	skillSum   int
	closed     bool
}

// NewAccumulator creates an empty accumulator. The ordinal identifies the
// accumulator within its run and is not the final team number.
func NewAccumulator(ordinal int, limits Limits) *Accumulator {
	return &Accumulator{
		ordinal:    ordinal,
		limits:     limits,
		members:    make([]participant.Participant, 0, max(limits.Size, 0)),
		activities: make(map[string]int),
		archetypes: make(map[participant.Archetype]int),
	}
}

// Ordinal returns the accumulator's position within its run.
func (a *Accumulator) Ordinal() int {
	return a.ordinal
}

// Len returns the current member count.
func (a *Accumulator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.members)
}

// SkillSum returns the running skill total.
func (a *Accumulator) SkillSum() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.skillSum
}

// Members returns a copy of the current members in assignment order.
func (a *Accumulator) Members() []participant.Participant {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]participant.Participant, len(a.members))
	copy(out, a.members)
	return out
}

// check reports whether p could join under the given mode right now.
func (a *Accumulator) check(p participant.Participant, mode Mode) Rejection {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.checkLocked(p, mode)
}

// checkLocked evaluates constraints without acquiring the lock.
func (a *Accumulator) checkLocked(p participant.Participant, mode Mode) Rejection {
	if a.closed || len(a.members) >= a.limits.Size {
		return RejectFull
	}
	if a.activities[p.PreferredActivity] >= a.limits.ActivityCap {
		return RejectActivityCap
	}
	if mode != ModeConstrained {
		return Accepted
	}
	if p.Archetype == participant.Thinker && a.archetypes[participant.Thinker] >= a.limits.ThinkerCap {
		return RejectThinkerCap
	}
	if !p.Archetype.IsGeneralist() &&
		a.archetypes[p.Archetype] > 0 &&
		len(a.archetypes) >= a.limits.DiversityThreshold {
		return RejectDiversity
	}
	return Accepted
}

// Evaluate checks p under mode and, when eligible, returns the absolute
// deviation of the post-placement average skill from target.
func (a *Accumulator) Evaluate(p participant.Participant, mode Mode, target float64) (float64, Rejection) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if r := a.checkLocked(p, mode); r != Accepted {
		return 0, r
	}
	avg := float64(a.skillSum+p.SkillLevel) / float64(len(a.members)+1)
	return math.Abs(avg - target), Accepted
}

// TryAdd re-checks constraints and appends p in a single exclusive section.
// It returns Accepted on success, or the rejection observed under the lock.
func (a *Accumulator) TryAdd(p participant.Participant, mode Mode) Rejection {
	a.mu.Lock()
	defer a.mu.Unlock()
	if r := a.checkLocked(p, mode); r != Accepted {
		return r
	}
	a.addLocked(p)
	return Accepted
}

// Seed appends p ignoring archetype rules. Capacity still applies.
func (a *Accumulator) Seed(p participant.Participant) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || len(a.members) >= a.limits.Size {
		return false
	}
	a.addLocked(p)
	return true
}

func (a *Accumulator) addLocked(p participant.Participant) {
	a.members = append(a.members, p)
	a.activities[p.PreferredActivity]++
	a.archetypes[p.Archetype]++
	a.skillSum += p.SkillLevel
}

// Complete freezes a full accumulator into a Team numbered n, stamping each
// member's TeamNumber. It returns false if the accumulator is not exactly
// full or was already closed.
func (a *Accumulator) Complete(n int) (Team, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed || len(a.members) != a.limits.Size {
		return Team{}, false
	}
	a.closed = true
	members := make([]participant.Participant, len(a.members))
	for i, m := range a.members {
		m.TeamNumber = n
		members[i] = m
	}
	return Team{Number: n, Members: members}, true
}

// Dissolve closes the accumulator and returns its members, which belong to
// no team afterwards.
func (a *Accumulator) Dissolve() []participant.Participant {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	out := make([]participant.Participant, len(a.members))
	for i, m := range a.members {
		m.TeamNumber = 0
		out[i] = m
	}
	a.members = a.members[:0]
	a.activities = make(map[string]int)
	a.archetypes = make(map[participant.Archetype]int)
	a.skillSum = 0
	return out
}

// Stats is a point-in-time view of an accumulator, logged when a partial
// team is dissolved.
type Stats struct {
	Ordinal    int
	Size       int
	SkillSum   int
	Activities map[string]int
	Archetypes map[participant.Archetype]int
}

// Stats returns a snapshot of the accumulator's counters.
func (a *Accumulator) Stats() Stats {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Stats{
		Ordinal:    a.ordinal,
		Size:       len(a.members),
		SkillSum:   a.skillSum,
		Activities: cloneCounts(a.activities),
		Archetypes: cloneCounts(a.archetypes),
	}
}
