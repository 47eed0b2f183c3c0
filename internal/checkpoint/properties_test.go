package checkpoint

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conceptList(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("c%d", i+1)
	}
	return ids
}

// TestProperties drives random answer sequences and checks the invariants
// after every submit.
func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 200; trial++ {
		n := 1 + rng.IntN(6)
		s := startFixed(t, conceptList(n)...)
		original := s.OriginalQuestions()
		prevActive := len(s.ActiveQuestions())

		for step := 0; step < 500 && !s.IsComplete(); step++ {
			wasAdaptive := s.IsAdaptiveRound()
			answer := rng.IntN(4)
			out, err := SubmitAnswer(s, answer)
			require.NoError(t, err)

			assert.Equal(t, answer == 1, out.Correct)
			assert.Equal(t, original, s.OriginalQuestions(), "original set changed")

			active := s.ActiveQuestions()
			assert.LessOrEqual(t, len(active), prevActive, "active set grew")
			prevActive = len(active)

			if wasAdaptive {
				assert.True(t, s.IsAdaptiveRound(), "adaptive flag reverted")
			}
			if !s.IsComplete() {
				for _, m := range s.MissedIndices() {
					assert.Less(t, m, s.CurrentIndex(), "missed index not yet answered")
				}
				assert.Less(t, s.CurrentIndex(), len(active))
			}
			if out.Retry {
				assert.Equal(t, len(out.MissedConceptIDs), len(active))
				assert.Equal(t, 0, s.CurrentIndex())
				assert.Empty(t, s.MissedIndices())
			}
		}
	}
}

// TestTermination_EventuallyCorrect answers each question correctly on its
// k-th appearance and expects completion within N rounds.
func TestTermination_EventuallyCorrect(t *testing.T) {
	ids := conceptList(5)
	s := startFixed(t, ids...)
	appearances := map[string]int{}
	needed := map[string]int{"c1": 1, "c2": 3, "c3": 2, "c4": 5, "c5": 1}

	for !s.IsComplete() {
		q, ok := s.Current()
		require.True(t, ok)
		appearances[q.ConceptID]++
		answer := 0
		if appearances[q.ConceptID] >= needed[q.ConceptID] {
			answer = 1
		}
		_, err := SubmitAnswer(s, answer)
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, s.Round(), len(ids)+1)
	assert.Equal(t, 5, s.Round())
}

func TestCompletionIsTerminal(t *testing.T) {
	s := startFixed(t, "c1")
	submitAll(t, s, 1)
	require.True(t, s.IsComplete())

	for i := 0; i < 4; i++ {
		_, err := SubmitAnswer(s, i)
		assert.ErrorIs(t, err, ErrSessionComplete)
	}
	assert.True(t, s.IsComplete())
}

func TestStartSession_Independent(t *testing.T) {
	a := startFixed(t, "c1", "c2")
	b := startFixed(t, "c1", "c2")

	submitAll(t, a, 0, 0)
	assert.Equal(t, 0, b.CurrentIndex())
	assert.False(t, b.IsAdaptiveRound())
	assert.Len(t, b.ActiveQuestions(), 2)
}
