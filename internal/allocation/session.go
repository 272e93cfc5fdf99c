package allocation

import (
	"sync"

	"github.com/google/uuid"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
)

// Session carries the unassigned pool and team numbering across a primary
// run and the leftover runs that follow it. A Session is safe for concurrent
// use; runs against the same Session are serialized.
type Session struct {
	run sync.Mutex // held for the duration of a formation run

	mu    sync.Mutex
	id    string
	pool  []participant.Participant
	teams int // completed teams numbered so far
}

// NewSession creates an empty Session with a fresh run ID.
func NewSession() *Session {
	return &Session{id: uuid.NewString()}
}

// ID returns the run ID used to correlate logs and stored results.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Unassigned returns a copy of the participants not in any completed team.
func (s *Session) Unassigned() []participant.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]participant.Participant, len(s.pool))
	copy(out, s.pool)
	return out
}

// Len returns the size of the unassigned pool.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pool)
}

// TeamsFormed returns how many completed teams have been numbered in this
// Session. The next completed team is numbered TeamsFormed()+1.
func (s *Session) TeamsFormed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.teams
}

// Clear empties the unassigned pool. Team numbering is kept.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = nil
}

// Reset empties the pool, restarts team numbering at 1 and assigns a new
// run ID. Use it between independent formation attempts.
func (s *Session) Reset() {
	s.run.Lock()
	defer s.run.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = nil
	s.teams = 0
	s.id = uuid.NewString()
}

// add appends to the pool. Placement workers call it concurrently.
func (s *Session) add(ps ...participant.Participant) {
	if len(ps) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range ps {
		p.TeamNumber = 0
		s.pool = append(s.pool, p)
	}
}

// replace swaps the pool contents for ps.
func (s *Session) replace(ps []participant.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = make([]participant.Participant, len(ps))
	copy(s.pool, ps)
}

// advance records n newly numbered teams.
func (s *Session) advance(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams += n
}
