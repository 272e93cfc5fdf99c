package team

import (
	"errors"
	"fmt"
	"maps"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
)

// Default constraint values.
const (
	DefaultActivityCap        = 2
	DefaultThinkerCap         = 2
	DefaultDiversityThreshold = 3
)

// Mode selects which constraints a placement must satisfy.
type Mode string

const (
	// ModeConstrained applies capacity, activity cap, thinker cap and the
	// archetype diversity rule.
	ModeConstrained Mode = "constrained"

	// ModeRelaxed applies only capacity and the activity cap.
	ModeRelaxed Mode = "relaxed"
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	return string(m)
}

// Rejection explains why an accumulator refused a candidate.
type Rejection string

const (
	// Accepted indicates the candidate satisfies every applicable constraint.
	Accepted Rejection = ""

	// RejectFull indicates the team is at capacity.
	RejectFull Rejection = "full"

	// RejectActivityCap indicates the candidate's activity is already at the cap.
	RejectActivityCap Rejection = "activity_cap"

	// RejectThinkerCap indicates the team already holds the maximum Thinkers.
	RejectThinkerCap Rejection = "thinker_cap"

	// RejectDiversity indicates a redundant Leader or Thinker would join a
	// team that is already archetype-diverse.
	RejectDiversity Rejection = "diversity"
)

// String returns the string representation of the rejection.
func (r Rejection) String() string {
	if r == Accepted {
		return "accepted"
	}
	return string(r)
}

// Limits configures team capacity and placement caps.
type Limits struct {
	Size               int // Members per completed team
	ActivityCap        int // Max members sharing a preferred activity
	ThinkerCap         int // Max Thinker members (constrained mode)
	DiversityThreshold int // Distinct archetypes that close a team to redundant Leaders/Thinkers
}

// DefaultLimits returns Limits for the given team size with default caps.
func DefaultLimits(size int) Limits {
	return Limits{
		Size:               size,
		ActivityCap:        DefaultActivityCap,
		ThinkerCap:         DefaultThinkerCap,
		DiversityThreshold: DefaultDiversityThreshold,
	}
}

// Validate checks that the limits describe a formable team.
func (l Limits) Validate() error {
	if l.Size < 1 {
		return errors.New("team limits: Size must be >= 1")
	}
	if l.ActivityCap < 1 {
		return errors.New("team limits: ActivityCap must be >= 1")
	}
	if l.ThinkerCap < 1 {
		return errors.New("team limits: ThinkerCap must be >= 1")
	}
	if l.DiversityThreshold < 1 {
		return fmt.Errorf("team limits: DiversityThreshold must be >= 1 (got %d)", l.DiversityThreshold)
	}
	return nil
}

// Team is an immutable snapshot of a completed team.
type Team struct {
	Number  int                       // 1-based team number
	Members []participant.Participant // In assignment order
}

// Size returns the number of members.
func (t Team) Size() int {
	return len(t.Members)
}

// SkillSum returns the total skill level of the members.
func (t Team) SkillSum() int {
	total := 0
	for _, m := range t.Members {
		total += m.SkillLevel
	}
	return total
}

// AverageSkill returns the mean skill level of the members.
func (t Team) AverageSkill() float64 {
	return participant.AverageSkill(t.Members)
}

// ActivityCounts returns how many members prefer each activity.
func (t Team) ActivityCounts() map[string]int {
	out := make(map[string]int)
	for _, m := range t.Members {
		out[m.PreferredActivity]++
	}
	return out
}

// ArchetypeCounts returns how many members hold each archetype.
func (t Team) ArchetypeCounts() map[participant.Archetype]int {
	out := make(map[participant.Archetype]int)
	for _, m := range t.Members {
		out[m.Archetype]++
	}
	return out
}

// CheckLimits verifies a completed team against the given limits and mode,
// returning a descriptive error for the first violation found.
func (t Team) CheckLimits(l Limits, mode Mode) error {
	if len(t.Members) != l.Size {
		return fmt.Errorf("team %d has %d members, want %d", t.Number, len(t.Members), l.Size)
	}
	activities := t.ActivityCounts()
	for activity, n := range activities {
		if n > l.ActivityCap {
			return fmt.Errorf("team %d has %d members preferring %q, cap %d", t.Number, n, activity, l.ActivityCap)
		}
	}
	if mode == ModeConstrained {
		if n := t.ArchetypeCounts()[participant.Thinker]; n > l.ThinkerCap {
			return fmt.Errorf("team %d has %d thinkers, cap %d", t.Number, n, l.ThinkerCap)
		}
	}
	return nil
}

// cloneCounts copies a count map so snapshots never alias live state.
func cloneCounts[K comparable](m map[K]int) map[K]int {
	return maps.Clone(m)
}
