package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource returns one four-option question per concept with the
// correct answer at index 1.
func fixedSource() QuestionSource {
	return SourceFunc(func(_ context.Context, ids []string) ([]Question, error) {
		qs := make([]Question, len(ids))
		for i, id := range ids {
			qs[i] = Question{
				ConceptID:    id,
				Prompt:       "What is " + id + "?",
				Options:      []string{"a", "b", "c", "d"},
				CorrectIndex: 1,
			}
		}
		return qs, nil
	})
}

func startFixed(t *testing.T, ids ...string) *Session {
	t.Helper()
	s, err := StartSession(context.Background(), "cp-1", ids, fixedSource())
	require.NoError(t, err)
	return s
}

func submitAll(t *testing.T, s *Session, answers ...int) []Outcome {
	t.Helper()
	var outs []Outcome
	for _, a := range answers {
		out, err := SubmitAnswer(s, a)
		require.NoError(t, err)
		outs = append(outs, out)
	}
	return outs
}

func TestStartSession_InitialState(t *testing.T) {
	s := startFixed(t, "c1", "c2", "c3")

	assert.Equal(t, "cp-1", s.CheckpointID())
	assert.Len(t, s.OriginalQuestions(), 3)
	assert.Equal(t, s.OriginalQuestions(), s.ActiveQuestions())
	assert.Equal(t, 0, s.CurrentIndex())
	assert.Empty(t, s.MissedIndices())
	assert.False(t, s.IsAdaptiveRound())
	assert.False(t, s.IsComplete())
	assert.Equal(t, 1, s.Round())

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "c1", q.ConceptID)
}

func TestScenarioA_AllCorrectSingleRound(t *testing.T) {
	s := startFixed(t, "c1", "c2", "c3")
	outs := submitAll(t, s, 1, 1, 1)

	assert.True(t, s.IsComplete())
	assert.False(t, s.IsAdaptiveRound())
	assert.Equal(t, 1, s.Round())

	last := outs[2]
	assert.True(t, last.RoundEnded)
	assert.True(t, last.Completed)
	assert.False(t, last.Retry)
	assert.Empty(t, last.MissedConceptIDs)

	_, ok := s.Current()
	assert.False(t, ok)
}

func TestScenarioB_OneMissOneRetry(t *testing.T) {
	s := startFixed(t, "c1", "c2", "c3")
	outs := submitAll(t, s, 1, 0, 1)

	assert.False(t, outs[1].Correct)
	assert.False(t, s.IsComplete())
	require.Len(t, s.ActiveQuestions(), 1)
	assert.Equal(t, "c2", s.ActiveQuestions()[0].ConceptID)
	assert.Equal(t, 0, s.CurrentIndex())
	assert.True(t, s.IsAdaptiveRound())
	assert.Empty(t, s.MissedIndices())
	assert.Equal(t, 2, s.Round())

	assert.True(t, outs[2].Retry)
	assert.Equal(t, []string{"c2"}, outs[2].MissedConceptIDs)

	out, err := SubmitAnswer(s, 1)
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.True(t, out.Adaptive)
	assert.True(t, s.IsComplete())
	assert.True(t, s.IsAdaptiveRound())
	assert.Len(t, s.OriginalQuestions(), 3)
}

func TestScenarioC_InvalidOptionIndex(t *testing.T) {
	s := startFixed(t, "c1")
	before := s.Snapshot()

	for _, idx := range []int{4, -1, 100} {
		_, err := SubmitAnswer(s, idx)
		assert.ErrorIs(t, err, ErrInvalidInput, "index %d", idx)
	}
	assert.Equal(t, before, s.Snapshot())
	assert.Equal(t, 0, s.CurrentIndex())
}

func TestScenarioD_SubmitAfterComplete(t *testing.T) {
	s := startFixed(t, "c1", "c2", "c3")
	submitAll(t, s, 1, 1, 1)
	before := s.Snapshot()

	_, err := SubmitAnswer(s, 1)
	assert.ErrorIs(t, err, ErrSessionComplete)
	assert.Equal(t, before, s.Snapshot())
}

func TestScenarioE_EmptyConceptList(t *testing.T) {
	called := false
	src := SourceFunc(func(context.Context, []string) ([]Question, error) {
		called = true
		return nil, nil
	})

	s, err := StartSession(context.Background(), "cp-1", nil, src)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, s)
	assert.False(t, called)
}

func TestStartSession_DuplicateConcepts(t *testing.T) {
	_, err := StartSession(context.Background(), "cp-1", []string{"c1", "c1"}, fixedSource())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestStartSession_SourceError(t *testing.T) {
	cause := errors.New("upstream unavailable")
	src := SourceFunc(func(context.Context, []string) ([]Question, error) {
		return nil, cause
	})

	s, err := StartSession(context.Background(), "cp-9", []string{"c1"}, src)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrQuestionSource)
	assert.ErrorIs(t, err, cause)

	var se *SourceError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "cp-9", se.CheckpointID)
}

func TestStartSession_ContractViolations(t *testing.T) {
	q := func(id string) Question {
		return Question{ConceptID: id, Options: []string{"a", "b"}, CorrectIndex: 0}
	}
	tests := []struct {
		name string
		qs   []Question
	}{
		{"short", []Question{q("c1")}},
		{"long", []Question{q("c1"), q("c2"), q("c3")}},
		{"reordered", []Question{q("c2"), q("c1")}},
		{"no options", []Question{q("c1"), {ConceptID: "c2"}}},
		{"correct index out of range", []Question{q("c1"), {ConceptID: "c2", Options: []string{"a"}, CorrectIndex: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := SourceFunc(func(context.Context, []string) ([]Question, error) {
				return tt.qs, nil
			})
			s, err := StartSession(context.Background(), "cp", []string{"c1", "c2"}, src)
			assert.Nil(t, s)
			assert.ErrorIs(t, err, ErrQuestionSource)
		})
	}
}

func TestStartSession_ContextPassedToSource(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := SourceFunc(func(ctx context.Context, _ []string) ([]Question, error) {
		return nil, ctx.Err()
	})

	_, err := StartSession(ctx, "cp", []string{"c1"}, src)
	assert.ErrorIs(t, err, ErrQuestionSource)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStartSession_SourceMutationDoesNotLeak(t *testing.T) {
	var generated []Question
	src := SourceFunc(func(ctx context.Context, ids []string) ([]Question, error) {
		qs, err := fixedSource().Generate(ctx, ids)
		generated = qs
		return qs, err
	})
	s, err := StartSession(context.Background(), "cp", []string{"c1"}, src)
	require.NoError(t, err)

	generated[0].Options[1] = "changed"
	generated[0].CorrectIndex = 3

	q, _ := s.Current()
	assert.Equal(t, "b", q.Options[1])
	assert.Equal(t, 1, q.CorrectIndex)
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := startFixed(t, "c1", "c2")
	active := s.ActiveQuestions()
	active[0].CorrectIndex = 0
	active[0].Options[0] = "x"

	_, err := SubmitAnswer(s, 1)
	require.NoError(t, err)
	assert.Empty(t, s.MissedIndices())
	assert.Equal(t, "a", s.OriginalQuestions()[0].Options[0])
}

func TestSubmitAnswer_MissesAcrossSeveralRounds(t *testing.T) {
	s := startFixed(t, "c1", "c2", "c3", "c4")

	// Round 1: miss c2 and c4.
	submitAll(t, s, 1, 0, 1, 2)
	require.Equal(t, 2, s.Round())
	assert.Equal(t, []string{"c2", "c4"}, conceptIDs(s.ActiveQuestions()))

	// Round 2: miss c4 again.
	outs := submitAll(t, s, 1, 3)
	assert.Equal(t, []string{"c4"}, outs[1].MissedConceptIDs)
	require.Equal(t, 3, s.Round())
	assert.Equal(t, []string{"c4"}, conceptIDs(s.ActiveQuestions()))

	// Round 3: pass.
	outs = submitAll(t, s, 1)
	assert.True(t, outs[0].Completed)
	assert.Equal(t, 3, outs[0].Round)
	assert.True(t, s.IsComplete())
	assert.Equal(t, []string{"c4"}, conceptIDs(s.ActiveQuestions()))
}

func TestSubmitAnswer_AllMissedRepeatsWholeSet(t *testing.T) {
	s := startFixed(t, "c1", "c2", "c3")
	submitAll(t, s, 0, 0, 0)

	assert.Equal(t, []string{"c1", "c2", "c3"}, conceptIDs(s.ActiveQuestions()))
	assert.True(t, s.IsAdaptiveRound())
	assert.False(t, s.IsComplete())
}

func TestSubmitAnswer_NilSession(t *testing.T) {
	_, err := SubmitAnswer(nil, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProgress(t *testing.T) {
	s := startFixed(t, "c1", "c2", "c3")
	done, total := s.Progress()
	assert.Equal(t, 0, done)
	assert.Equal(t, 3, total)

	submitAll(t, s, 1, 0)
	done, total = s.Progress()
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"c2"}, s.MissedConceptIDs())
}

func TestSourceError_Message(t *testing.T) {
	err := &SourceError{CheckpointID: "cp-3", Err: fmt.Errorf("boom")}
	assert.Equal(t, "checkpoint cp-3: question source: boom", err.Error())
}

func TestSnapshotConceptIDs(t *testing.T) {
	s := startFixed(t, "c1", "c2")
	assert.Equal(t, []string{"c1", "c2"}, s.Snapshot().ConceptIDs())
}

func conceptIDs(qs []Question) []string {
	ids := make([]string, len(qs))
	for i, q := range qs {
		ids[i] = q.ConceptID
	}
	return ids
}
