package allocation

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"testing"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
	"github.com/sanulisiya/20241263TeamMate-sub000/internal/team"
)

func mk(id string, arch participant.Archetype, skill int, activity string) participant.Participant {
	return participant.Participant{
		ID:                id,
		Name:              "Name " + id,
		Email:             id + "@example.com",
		SkillLevel:        skill,
		PreferredActivity: activity,
		Archetype:         arch,
		Position:          participant.PositionStrategist,
		PersonalityScore:  50,
	}
}

// uniqueActivities builds n participants of one archetype, each with its own
// activity so the activity cap never binds.
func uniqueActivities(prefix string, arch participant.Archetype, n int) []participant.Participant {
	out := make([]participant.Participant, n)
	for i := range out {
		id := fmt.Sprintf("%s%02d", prefix, i+1)
		out[i] = mk(id, arch, 1+i%10, "activity-"+id)
	}
	return out
}

func randomParticipants(r *rand.Rand, n int) []participant.Participant {
	archs := participant.Archetypes()
	acts := []string{"Chess", "FIFA", "Valorant", "DOTA 2", "Basketball"}
	out := make([]participant.Participant, n)
	for i := range out {
		out[i] = mk(
			fmt.Sprintf("P%03d", i+1),
			archs[r.IntN(len(archs))],
			1+r.IntN(10),
			acts[r.IntN(len(acts))],
		)
	}
	return out
}

func seeded(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed+1)))
}

func byID(ps []participant.Participant) []participant.Participant {
	out := make([]participant.Participant, len(ps))
	copy(out, ps)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func countPlaced(teams []team.Team) int {
	n := 0
	for _, t := range teams {
		n += t.Size()
	}
	return n
}

// assertTeams checks the per-team invariants every completed team must hold.
func assertTeams(t *testing.T, teams []team.Team, size int, thinkerCap bool) {
	t.Helper()
	for _, tm := range teams {
		if tm.Size() != size {
			t.Errorf("team %d has %d members, want %d", tm.Number, tm.Size(), size)
		}
		for activity, n := range tm.ActivityCounts() {
			if n > team.DefaultActivityCap {
				t.Errorf("team %d has %d members preferring %q", tm.Number, n, activity)
			}
		}
		if thinkerCap {
			if n := tm.ArchetypeCounts()[participant.Thinker]; n > team.DefaultThinkerCap {
				t.Errorf("team %d has %d thinkers", tm.Number, n)
			}
		}
		for _, m := range tm.Members {
			if m.TeamNumber != tm.Number {
				t.Errorf("member %s of team %d has TeamNumber %d", m.ID, tm.Number, m.TeamNumber)
			}
		}
	}
}
