package review

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/store"
)

type recorder struct {
	mu          sync.Mutex
	checkpoints []store.CheckpointEventData
	answers     []store.AnswerEventData
	err         error
}

func (r *recorder) AppendCheckpointEvent(_ context.Context, d store.CheckpointEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.checkpoints = append(r.checkpoints, d)
	return nil
}

func (r *recorder) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.answers = append(r.answers, d)
	return nil
}

func (r *recorder) actions() []string {
	var out []string
	for _, c := range r.checkpoints {
		out = append(out, c.Action)
	}
	return out
}

type saver struct {
	saved []*progress.Progress
	err   error
}

func (s *saver) Save(_ context.Context, p *progress.Progress) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, p)
	return nil
}

// source answers every question with option 0.
var source = checkpoint.SourceFunc(func(_ context.Context, ids []string) ([]checkpoint.Question, error) {
	qs := make([]checkpoint.Question, len(ids))
	for i, id := range ids {
		qs[i] = checkpoint.Question{
			ConceptID:    id,
			Prompt:       "What is " + id + "?",
			Options:      []string{"right", "wrong", "wrong too", "also wrong"},
			CorrectIndex: 0,
		}
	}
	return qs, nil
})

var cp = checkpoint.Checkpoint{ID: "quiz-checkpoint-2", ConceptIDs: []string{"a", "b", "c"}}

type clock struct{ t time.Time }

func (c *clock) now() time.Time {
	c.t = c.t.Add(2 * time.Second)
	return c.t
}

func newTestService(t *testing.T) (*Service, *recorder, *saver) {
	t.Helper()
	rec := &recorder{}
	sv := &saver{}
	c := &clock{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewService(source, progress.New("1.0.0"),
		WithRecorder(rec),
		WithProgressSaver(sv),
		WithClock(c.now),
	)
	return svc, rec, sv
}

func TestAttempt_PassFirstRound(t *testing.T) {
	svc, rec, sv := newTestService(t)
	ctx := context.Background()

	a, err := svc.Begin(ctx, "os", cp)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)

	var out checkpoint.Outcome
	for range cp.ConceptIDs {
		out, err = a.Answer(ctx, 0)
		require.NoError(t, err)
	}
	assert.True(t, out.Completed)

	assert.Equal(t, []string{store.ActionStart, store.ActionComplete}, rec.actions())
	assert.Equal(t, 3, rec.checkpoints[0].Questions)
	assert.Equal(t, "os", rec.checkpoints[0].SubjectID)
	require.Len(t, rec.answers, 3)
	for _, ans := range rec.answers {
		assert.Equal(t, a.ID, ans.AttemptID)
		assert.True(t, ans.Correct)
		assert.Equal(t, 2000, ans.TimeMs)
	}

	require.Len(t, sv.saved, 1)
	assert.True(t, sv.saved[0].IsMastered("b"))
	assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true}, svc.Mastered())

	res, ok := svc.CheckpointResult("os", cp.ID)
	require.True(t, ok)
	assert.Equal(t, 1, res.Rounds)
}

func TestAttempt_AdaptiveRound(t *testing.T) {
	svc, rec, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Begin(ctx, "os", cp)
	require.NoError(t, err)

	_, err = a.Answer(ctx, 0)
	require.NoError(t, err)
	_, err = a.Answer(ctx, 1)
	require.NoError(t, err)
	out, err := a.Answer(ctx, 2)
	require.NoError(t, err)
	require.True(t, out.Retry)

	require.Equal(t, []string{store.ActionStart, store.ActionRound}, rec.actions())
	round := rec.checkpoints[1]
	assert.Equal(t, 2, round.Round)
	assert.Equal(t, 2, round.Questions)
	assert.Equal(t, []string{"b", "c"}, round.MissedConcepts)

	q, ok := a.Current()
	require.True(t, ok)
	assert.Equal(t, "b", q.ConceptID)
	done, total := a.Progress()
	assert.Equal(t, 0, done)
	assert.Equal(t, 2, total)

	_, err = a.Answer(ctx, 0)
	require.NoError(t, err)
	out, err = a.Answer(ctx, 0)
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.True(t, out.Adaptive)

	assert.True(t, rec.answers[3].Adaptive)
	assert.Equal(t, 2, rec.answers[3].Round)

	res, ok := svc.CheckpointResult("os", cp.ID)
	require.True(t, ok)
	assert.Equal(t, 2, res.Rounds)
}

func TestAttempt_Abandon(t *testing.T) {
	svc, rec, sv := newTestService(t)
	ctx := context.Background()

	a, err := svc.Begin(ctx, "os", cp)
	require.NoError(t, err)
	_, err = a.Answer(ctx, 1)
	require.NoError(t, err)

	a.Abandon(ctx)
	a.Abandon(ctx)
	assert.Equal(t, []string{store.ActionStart, store.ActionAbandon}, rec.actions())

	_, err = a.Answer(ctx, 0)
	assert.ErrorIs(t, err, checkpoint.ErrInvalidInput)
	assert.Empty(t, sv.saved)
	assert.Empty(t, svc.Mastered())
}

func TestAttempt_AbandonAfterCompleteIsNoop(t *testing.T) {
	svc, rec, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Begin(ctx, "os", checkpoint.Checkpoint{ID: "cp", ConceptIDs: []string{"a"}})
	require.NoError(t, err)
	_, err = a.Answer(ctx, 0)
	require.NoError(t, err)

	a.Abandon(ctx)
	assert.Equal(t, []string{store.ActionStart, store.ActionComplete}, rec.actions())

	_, err = a.Answer(ctx, 0)
	assert.ErrorIs(t, err, checkpoint.ErrSessionComplete)
}

func TestAttempt_RejectedAnswerRecordsNothing(t *testing.T) {
	svc, rec, _ := newTestService(t)
	ctx := context.Background()

	a, err := svc.Begin(ctx, "os", cp)
	require.NoError(t, err)

	_, err = a.Answer(ctx, 9)
	assert.ErrorIs(t, err, checkpoint.ErrInvalidInput)
	assert.Empty(t, rec.answers)
	done, _ := a.Progress()
	assert.Equal(t, 0, done)
}

func TestBegin_SourceFailure(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{}
	svc := NewService(checkpoint.SourceFunc(func(context.Context, []string) ([]checkpoint.Question, error) {
		return nil, boom
	}), progress.New("1.0.0"), WithRecorder(rec))

	_, err := svc.Begin(context.Background(), "os", cp)
	require.Error(t, err)
	assert.ErrorIs(t, err, checkpoint.ErrQuestionSource)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, rec.checkpoints)
}

func TestRecorderFailureDoesNotFailAttempt(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	rec := &recorder{err: errors.New("disk full")}
	sv := &saver{err: errors.New("disk full")}
	svc := NewService(source, progress.New("1.0.0"),
		WithRecorder(rec),
		WithProgressSaver(sv),
		WithLogger(zap.New(core)),
	)
	ctx := context.Background()

	a, err := svc.Begin(ctx, "os", checkpoint.Checkpoint{ID: "cp", ConceptIDs: []string{"a"}})
	require.NoError(t, err)
	out, err := a.Answer(ctx, 0)
	require.NoError(t, err)
	assert.True(t, out.Completed)

	assert.Equal(t, map[string]bool{"a": true}, svc.Mastered())
	assert.Equal(t, 1, logs.FilterMessage("failed to record answer event").Len())
	assert.Equal(t, 2, logs.FilterMessage("failed to record checkpoint event").Len())
	assert.Equal(t, 1, logs.FilterMessage("failed to save progress").Len())
}

func TestService_WithoutRecorder(t *testing.T) {
	svc := NewService(source, progress.New("1.0.0"))
	ctx := context.Background()

	a, err := svc.Begin(ctx, "os", checkpoint.Checkpoint{ID: "cp", ConceptIDs: []string{"a", "b"}})
	require.NoError(t, err)
	_, err = a.Answer(ctx, 0)
	require.NoError(t, err)
	out, err := a.Answer(ctx, 0)
	require.NoError(t, err)
	assert.True(t, out.Completed)
	assert.True(t, a.View().IsComplete)
}
