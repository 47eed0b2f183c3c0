package progress

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/store"
)

type fakeCatalog struct {
	version     string
	concepts    map[string]bool
	checkpoints map[string]bool // CheckpointKey
}

func (f fakeCatalog) Version() string           { return f.version }
func (f fakeCatalog) HasConcept(id string) bool { return f.concepts[id] }
func (f fakeCatalog) Checkpoint(subjectID, id string) (checkpoint.Checkpoint, error) {
	if !f.checkpoints[CheckpointKey(subjectID, id)] {
		return checkpoint.Checkpoint{}, fmt.Errorf("checkpoint %q not found", id)
	}
	return checkpoint.Checkpoint{ID: id}, nil
}

func completedView(t *testing.T, id string, concepts ...string) checkpoint.View {
	t.Helper()
	src := checkpoint.SourceFunc(func(_ context.Context, ids []string) ([]checkpoint.Question, error) {
		qs := make([]checkpoint.Question, len(ids))
		for i, c := range ids {
			qs[i] = checkpoint.Question{ConceptID: c, Prompt: c, Options: []string{"a", "b"}, CorrectIndex: 0}
		}
		return qs, nil
	})
	s, err := checkpoint.StartSession(context.Background(), id, concepts, src)
	require.NoError(t, err)

	// Miss the first question once so the pass takes two rounds.
	_, err = checkpoint.SubmitAnswer(s, 1)
	require.NoError(t, err)
	for !s.IsComplete() {
		_, err := checkpoint.SubmitAnswer(s, 0)
		require.NoError(t, err)
	}
	return s.Snapshot()
}

func TestRecordCheckpoint(t *testing.T) {
	p := New("1.0.0")
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	v := completedView(t, "quiz-checkpoint-2", "a", "b", "c")
	require.NoError(t, p.RecordCheckpoint("os", v, at))

	assert.Equal(t, []string{"a", "b", "c"}, p.MasteredIDs())
	assert.True(t, p.IsMastered("b"))
	assert.False(t, p.IsMastered("d"))
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, p.MasteredSet())

	r, ok := p.Checkpoint("os", "quiz-checkpoint-2")
	require.True(t, ok)
	assert.Equal(t, 2, r.Rounds)
	assert.Equal(t, 1, r.Passes)
	assert.Equal(t, at, r.CompletedAt)

	_, ok = p.Checkpoint("cpu", "quiz-checkpoint-2")
	assert.False(t, ok, "checkpoint IDs are scoped by subject")

	// Passing again keeps the first mastery time and counts the pass.
	later := at.Add(time.Hour)
	require.NoError(t, p.RecordCheckpoint("os", v, later))
	assert.Equal(t, at, p.Mastered["a"])
	r, _ = p.Checkpoint("os", "quiz-checkpoint-2")
	assert.Equal(t, 2, r.Passes)
	assert.Equal(t, later, r.CompletedAt)
}

func TestRecordCheckpoint_Incomplete(t *testing.T) {
	p := New("1.0.0")
	err := p.RecordCheckpoint("os", checkpoint.View{CheckpointID: "x"}, time.Now())
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Empty(t, p.Mastered)
}

func TestReconcile(t *testing.T) {
	cat := fakeCatalog{
		version:     "2.0.0",
		concepts:    map[string]bool{"keep": true},
		checkpoints: map[string]bool{"os/quiz-checkpoint-2": true},
	}

	tests := []struct {
		name    string
		stored  string
		dropped []string
	}{
		{"fresh progress", "", nil},
		{"same major", "2.3.1", nil},
		{"major bump", "1.4.0", []string{"gone", "os/quiz-checkpoint-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.stored)
			p.Mastered["keep"] = time.Now()
			p.Mastered["gone"] = time.Now()
			p.Checkpoints["os/quiz-checkpoint-2"] = Result{Rounds: 1}
			p.Checkpoints["os/quiz-checkpoint-5"] = Result{Rounds: 1}

			dropped := p.Reconcile(cat)
			assert.Equal(t, tt.dropped, dropped)
			assert.Equal(t, "2.0.0", p.CurriculumVersion)
			assert.True(t, p.IsMastered("keep"))
			assert.Equal(t, tt.dropped == nil, p.IsMastered("gone"))
		})
	}
}

func TestReconcile_EmbeddedCatalog(t *testing.T) {
	cat, err := curriculum.Load()
	require.NoError(t, err)

	p := New("0.9.0")
	p.Mastered["concept-1-1"] = time.Now()
	p.Mastered["concept-9-9"] = time.Now()
	p.Checkpoints[CheckpointKey("operating-systems", "quiz-checkpoint-2")] = Result{Rounds: 1, Passes: 1}

	assert.Equal(t, []string{"concept-9-9"}, p.Reconcile(cat))
	_, ok := p.Checkpoint("operating-systems", "quiz-checkpoint-2")
	assert.True(t, ok)
}

func TestDataRoundTrip(t *testing.T) {
	p := New("1.0.0")
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p.Mastered["a"] = at
	p.Checkpoints["os/cp"] = Result{Rounds: 3, Passes: 2, CompletedAt: at}

	d := p.Data()
	assert.Equal(t, store.CheckpointResultData{Rounds: 3, Passes: 2, CompletedAt: at}, d.Checkpoints["os/cp"])

	back := FromData(d)
	assert.Equal(t, p, back)
	assert.Nil(t, FromData(nil))
}
