package team

import (
	"sync"
	"testing"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
)

func p(id string, skill int, activity string, a participant.Archetype) participant.Participant {
	return participant.Participant{ID: id, SkillLevel: skill, PreferredActivity: activity, Archetype: a}
}

func TestAccumulator_New(t *testing.T) {
	acc := NewAccumulator(3, DefaultLimits(4))
	if acc.Ordinal() != 3 {
		t.Errorf("Ordinal() = %d, want 3", acc.Ordinal())
	}
	if acc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", acc.Len())
	}
	if st := acc.Stats(); st.Size != 0 || st.SkillSum != 0 || len(st.Archetypes) != 0 {
		t.Errorf("Stats() on empty accumulator = %+v", st)
	}
}

func TestAccumulator_TryAdd(t *testing.T) {
	acc := NewAccumulator(1, DefaultLimits(3))

	if r := acc.TryAdd(p("a", 5, "Chess", participant.Leader), ModeConstrained); r != Accepted {
		t.Fatalf("TryAdd(a) = %v, want accepted", r)
	}
	if r := acc.TryAdd(p("b", 7, "Chess", participant.Balanced), ModeConstrained); r != Accepted {
		t.Fatalf("TryAdd(b) = %v, want accepted", r)
	}
	if r := acc.TryAdd(p("c", 3, "Chess", participant.Motivator), ModeConstrained); r != RejectActivityCap {
		t.Errorf("TryAdd(c) = %v, want %v", r, RejectActivityCap)
	}
	if r := acc.TryAdd(p("d", 3, "FIFA", participant.Motivator), ModeConstrained); r != Accepted {
		t.Fatalf("TryAdd(d) = %v, want accepted", r)
	}
	if r := acc.TryAdd(p("e", 3, "Go", participant.Motivator), ModeRelaxed); r != RejectFull {
		t.Errorf("TryAdd(e) = %v, want %v", r, RejectFull)
	}

	if acc.SkillSum() != 15 {
		t.Errorf("SkillSum() = %d, want 15", acc.SkillSum())
	}
	if n := acc.Stats().Activities["Chess"]; n != 2 {
		t.Errorf("Chess members = %d, want 2", n)
	}
	if n := len(acc.Stats().Archetypes); n != 3 {
		t.Errorf("distinct archetypes = %d, want 3", n)
	}
}

func TestAccumulator_ThinkerCap(t *testing.T) {
	acc := NewAccumulator(1, DefaultLimits(5))
	acc.Seed(p("t1", 5, "A", participant.Thinker))
	acc.Seed(p("t2", 5, "B", participant.Thinker))

	third := p("t3", 5, "C", participant.Thinker)
	if r := acc.check(third, ModeConstrained); r != RejectThinkerCap {
		t.Errorf("check(constrained) = %v, want %v", r, RejectThinkerCap)
	}
	if r := acc.check(third, ModeRelaxed); r != Accepted {
		t.Errorf("check(relaxed) = %v, want accepted", r)
	}
}

func TestAccumulator_Diversity(t *testing.T) {
	acc := NewAccumulator(1, DefaultLimits(6))
	acc.Seed(p("l", 5, "A", participant.Leader))
	acc.Seed(p("t", 5, "B", participant.Thinker))
	acc.Seed(p("b", 5, "C", participant.Balanced))

	tests := []struct {
		name string
		cand participant.Participant
		want Rejection
	}{
		{"second leader refused", p("l2", 5, "D", participant.Leader), RejectDiversity},
		{"second thinker refused", p("t2", 5, "D", participant.Thinker), RejectDiversity},
		{"second balanced allowed", p("b2", 5, "D", participant.Balanced), Accepted},
		{"first motivator allowed", p("m", 5, "D", participant.Motivator), Accepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := acc.check(tt.cand, ModeConstrained); got != tt.want {
				t.Errorf("check() = %v, want %v", got, tt.want)
			}
		})
	}

	// Below the threshold a second leader is fine.
	small := NewAccumulator(2, DefaultLimits(6))
	small.Seed(p("l", 5, "A", participant.Leader))
	small.Seed(p("b", 5, "C", participant.Balanced))
	if got := small.check(p("l2", 5, "D", participant.Leader), ModeConstrained); got != Accepted {
		t.Errorf("check() below threshold = %v, want accepted", got)
	}
}

func TestAccumulator_Evaluate(t *testing.T) {
	acc := NewAccumulator(1, DefaultLimits(4))
	acc.Seed(p("a", 4, "A", participant.Leader))
	acc.Seed(p("b", 6, "B", participant.Balanced))

	score, r := acc.Evaluate(p("c", 8, "C", participant.Balanced), ModeConstrained, 5)
	if r != Accepted {
		t.Fatalf("Evaluate() rejection = %v", r)
	}
	// (4+6+8)/3 = 6, |6-5| = 1
	if score != 1 {
		t.Errorf("Evaluate() score = %v, want 1", score)
	}

	if _, r := acc.Evaluate(p("d", 8, "A", participant.Balanced), ModeConstrained, 5); r != Accepted {
		t.Errorf("Evaluate() second A = %v, want accepted", r)
	}
}

func TestAccumulator_CompleteAndDissolve(t *testing.T) {
	acc := NewAccumulator(1, DefaultLimits(2))
	acc.Seed(p("a", 4, "A", participant.Leader))

	if _, ok := acc.Complete(1); ok {
		t.Fatal("Complete() on partial accumulator returned ok")
	}
	acc.Seed(p("b", 6, "B", participant.Balanced))

	tm, ok := acc.Complete(7)
	if !ok {
		t.Fatal("Complete() on full accumulator returned !ok")
	}
	if tm.Number != 7 {
		t.Errorf("Number = %d, want 7", tm.Number)
	}
	for _, m := range tm.Members {
		if m.TeamNumber != 7 {
			t.Errorf("member %s TeamNumber = %d, want 7", m.ID, m.TeamNumber)
		}
	}
	if _, ok := acc.Complete(8); ok {
		t.Error("second Complete() returned ok")
	}
	if r := acc.TryAdd(p("c", 1, "C", participant.Balanced), ModeRelaxed); r != RejectFull {
		t.Errorf("TryAdd after Complete = %v, want %v", r, RejectFull)
	}

	partial := NewAccumulator(2, DefaultLimits(3))
	partial.Seed(p("x", 4, "A", participant.Leader))
	partial.Seed(p("y", 4, "B", participant.Thinker))
	out := partial.Dissolve()
	if len(out) != 2 {
		t.Fatalf("Dissolve() returned %d members, want 2", len(out))
	}
	if partial.Len() != 0 || partial.SkillSum() != 0 {
		t.Error("Dissolve() left state behind")
	}
	if partial.Seed(p("z", 1, "C", participant.Balanced)) {
		t.Error("Seed() after Dissolve returned true")
	}
}

func TestAccumulator_MembersIsCopy(t *testing.T) {
	acc := NewAccumulator(1, DefaultLimits(2))
	acc.Seed(p("a", 4, "A", participant.Leader))
	got := acc.Members()
	got[0].ID = "mutated"
	if acc.Members()[0].ID != "a" {
		t.Error("Members() returned aliased slice")
	}
	stats := acc.Stats()
	stats.Activities["A"] = 99
	if acc.Stats().Activities["A"] != 1 {
		t.Error("Stats() returned aliased activity map")
	}
}

func TestAccumulator_ConcurrentTryAddNeverOverflows(t *testing.T) {
	const size = 5
	acc := NewAccumulator(1, Limits{Size: size, ActivityCap: 100, ThinkerCap: 2, DiversityThreshold: 3})

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := range 64 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cand := p(string(rune('a'+i%26)), 5, "A", participant.Balanced)
			if acc.TryAdd(cand, ModeRelaxed) == Accepted {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if accepted != size {
		t.Errorf("accepted = %d, want %d", accepted, size)
	}
	if acc.Len() != size {
		t.Errorf("Len() = %d, want %d", acc.Len(), size)
	}
}
