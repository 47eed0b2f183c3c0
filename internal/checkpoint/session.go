package checkpoint

import "slices"

// Session is the state of one checkpoint attempt. It is created by
// StartSession and changed only by SubmitAnswer. A Session is not safe for
// concurrent use; wrap it in a Guarded when it is shared.
type Session struct {
	checkpointID string

	// original is the set generated at start. It never changes.
	original []Question

	// active is the current round's set: original in round 1, then the
	// questions missed in the previous round, in their previous order.
	active []Question

	// current indexes active. It equals len(active) only once the session
	// is complete.
	current int

	// missed holds indices into active answered wrongly this round,
	// ascending and without duplicates.
	missed []int

	adaptive bool
	complete bool
	round    int
}

// CheckpointID returns the checkpoint this session belongs to.
func (s *Session) CheckpointID() string { return s.checkpointID }

// OriginalQuestions returns a copy of the questions generated at start.
func (s *Session) OriginalQuestions() []Question { return cloneQuestions(s.original) }

// ActiveQuestions returns a copy of the current round's questions.
func (s *Session) ActiveQuestions() []Question { return cloneQuestions(s.active) }

// CurrentIndex returns the position within ActiveQuestions.
func (s *Session) CurrentIndex() int { return s.current }

// MissedIndices returns the indices into ActiveQuestions missed so far this round.
func (s *Session) MissedIndices() []int { return slices.Clone(s.missed) }

// IsAdaptiveRound reports whether the session has moved past round 1.
func (s *Session) IsAdaptiveRound() bool { return s.adaptive }

// IsComplete reports whether a round ended with no misses.
func (s *Session) IsComplete() bool { return s.complete }

// Round returns the 1-based round number.
func (s *Session) Round() int { return s.round }

// Current returns the question awaiting an answer. The boolean is false
// once the session is complete.
func (s *Session) Current() (Question, bool) {
	if s.complete || s.current >= len(s.active) {
		return Question{}, false
	}
	return s.active[s.current].clone(), true
}

// Progress returns how many questions of the current round have been
// answered and the size of the round.
func (s *Session) Progress() (done, total int) {
	return s.current, len(s.active)
}

// MissedConceptIDs returns the concept IDs missed so far in the current round.
func (s *Session) MissedConceptIDs() []string {
	ids := make([]string, 0, len(s.missed))
	for _, i := range s.missed {
		ids = append(ids, s.active[i].ConceptID)
	}
	return ids
}

// View is an immutable copy of a session, used for rendering and persistence.
type View struct {
	CheckpointID      string
	OriginalQuestions []Question
	ActiveQuestions   []Question
	CurrentIndex      int
	MissedIndices     []int
	IsAdaptiveRound   bool
	IsComplete        bool
	Round             int
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() View {
	return View{
		CheckpointID:      s.checkpointID,
		OriginalQuestions: s.OriginalQuestions(),
		ActiveQuestions:   s.ActiveQuestions(),
		CurrentIndex:      s.current,
		MissedIndices:     s.MissedIndices(),
		IsAdaptiveRound:   s.adaptive,
		IsComplete:        s.complete,
		Round:             s.round,
	}
}

// ConceptIDs returns the concept IDs covered by the checkpoint, in order.
func (v View) ConceptIDs() []string {
	ids := make([]string, len(v.OriginalQuestions))
	for i, q := range v.OriginalQuestions {
		ids[i] = q.ConceptID
	}
	return ids
}
