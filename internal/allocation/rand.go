package allocation

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sanulisiya/20241263TeamMate-sub000/internal/participant"
)

// lockedRand makes a *rand.Rand safe for the placement workers.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func newLockedRand(r *rand.Rand) *lockedRand {
	return &lockedRand{r: r}
}

func defaultRand() *lockedRand {
	now := uint64(time.Now().UnixNano())
	return newLockedRand(rand.New(rand.NewPCG(now, now>>1|1)))
}

// IntN returns a uniform value in [0, n).
func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// shuffled returns a uniformly shuffled copy of ps.
func (l *lockedRand) shuffled(ps []participant.Participant) []participant.Participant {
	out := make([]participant.Participant, len(ps))
	copy(out, ps)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
