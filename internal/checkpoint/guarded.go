package checkpoint

import "sync"

// Guarded serializes access to a Session shared between goroutines.
type Guarded struct {
	mu sync.Mutex
	s  *Session
}

// NewGuarded wraps s. The caller must not use s directly afterwards.
func NewGuarded(s *Session) *Guarded {
	return &Guarded{s: s}
}

// Submit calls SubmitAnswer under the lock.
func (g *Guarded) Submit(optionIndex int) (Outcome, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return SubmitAnswer(g.s, optionIndex)
}

// Snapshot returns a copy of the session state.
func (g *Guarded) Snapshot() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.Snapshot()
}

// Current returns the question awaiting an answer.
func (g *Guarded) Current() (Question, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.Current()
}

// Progress returns answered and total counts for the current round.
func (g *Guarded) Progress() (done, total int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.Progress()
}
