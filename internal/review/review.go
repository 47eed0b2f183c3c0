// Package review runs checkpoint attempts for the TUI and the CLI: it
// drives the checkpoint engine, records attempt events and updates
// learner progress when a checkpoint is passed.
package review

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/store"
)

// Recorder appends attempt events.
type Recorder interface {
	AppendCheckpointEvent(ctx context.Context, data store.CheckpointEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
}

// ProgressSaver persists progress after a checkpoint is passed.
type ProgressSaver interface {
	Save(ctx context.Context, p *progress.Progress) error
}

// Service starts checkpoint attempts and owns the learner's progress.
type Service struct {
	source checkpoint.QuestionSource
	events Recorder
	saver  ProgressSaver
	log    *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	progress *progress.Progress
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder records attempt events. Recording failures are logged and
// never fail an attempt.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.events = r }
}

// WithProgressSaver persists progress whenever a checkpoint is passed.
func WithProgressSaver(p ProgressSaver) Option {
	return func(s *Service) { s.saver = p }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a Service generating questions from source and
// updating p.
func NewService(source checkpoint.QuestionSource, p *progress.Progress, opts ...Option) *Service {
	s := &Service{
		source:   source,
		progress: p,
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mastered returns the set of mastered concept IDs.
func (s *Service) Mastered() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.MasteredSet()
}

// CheckpointResult returns the stored result of a passed checkpoint.
func (s *Service) CheckpointResult(subjectID, checkpointID string) (progress.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Checkpoint(subjectID, checkpointID)
}

// Begin starts an attempt at a checkpoint. It blocks while the question
// source generates the batch.
func (s *Service) Begin(ctx context.Context, subjectID string, cp checkpoint.Checkpoint) (*Attempt, error) {
	sess, err := checkpoint.StartSession(ctx, cp.ID, cp.ConceptIDs, s.source)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a := &Attempt{
		ID:            uuid.NewString(),
		SubjectID:     subjectID,
		Checkpoint:    cp,
		svc:           s,
		session:       checkpoint.NewGuarded(sess),
		startedAt:     now,
		questionStart: now,
	}
	s.record(context.WithoutCancel(ctx), store.CheckpointEventData{
		AttemptID:    a.ID,
		CheckpointID: cp.ID,
		SubjectID:    subjectID,
		Action:       store.ActionStart,
		Round:        1,
		Questions:    len(cp.ConceptIDs),
	})
	s.log.Info("checkpoint started",
		zap.String("attempt", a.ID),
		zap.String("subject", subjectID),
		zap.String("checkpoint", cp.ID),
	)
	return a, nil
}

func (s *Service) record(ctx context.Context, data store.CheckpointEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendCheckpointEvent(ctx, data); err != nil {
		s.log.Warn("failed to record checkpoint event", zap.String("action", data.Action), zap.Error(err))
	}
}

func (s *Service) recordAnswer(ctx context.Context, data store.AnswerEventData) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendAnswerEvent(ctx, data); err != nil {
		s.log.Warn("failed to record answer event", zap.Error(err))
	}
}

func (s *Service) complete(ctx context.Context, a *Attempt, v checkpoint.View) {
	s.mu.Lock()
	err := s.progress.RecordCheckpoint(a.SubjectID, v, s.now())
	var snapshot *progress.Progress
	if err == nil && s.saver != nil {
		snapshot = progress.FromData(s.progress.Data())
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error("failed to record checkpoint progress", zap.Error(err))
		return
	}
	if snapshot != nil {
		if err := s.saver.Save(ctx, snapshot); err != nil {
			s.log.Warn("failed to save progress", zap.Error(err))
		}
	}
}

// Attempt is one run through a checkpoint. It is safe for concurrent use.
type Attempt struct {
	ID         string
	SubjectID  string
	Checkpoint checkpoint.Checkpoint

	svc     *Service
	session *checkpoint.Guarded

	mu            sync.Mutex
	startedAt     time.Time
	questionStart time.Time
	closed        bool
}

// Current returns the question awaiting an answer.
func (a *Attempt) Current() (checkpoint.Question, bool) {
	return a.session.Current()
}

// Progress reports answered and total questions in the current round.
func (a *Attempt) Progress() (done, total int) {
	return a.session.Progress()
}

// View returns a copy of the session state.
func (a *Attempt) View() checkpoint.View {
	return a.session.Snapshot()
}

// Answer submits an answer, records it and, when the checkpoint is passed,
// updates progress.
func (a *Attempt) Answer(ctx context.Context, optionIndex int) (checkpoint.Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed && !a.session.Snapshot().IsComplete {
		return checkpoint.Outcome{}, fmt.Errorf("%w: attempt abandoned", checkpoint.ErrInvalidInput)
	}

	out, err := a.session.Submit(optionIndex)
	if err != nil {
		return out, err
	}

	now := a.svc.now()
	a.svc.recordAnswer(ctx, store.AnswerEventData{
		AttemptID:    a.ID,
		CheckpointID: a.Checkpoint.ID,
		ConceptID:    out.Question.ConceptID,
		Round:        out.Round,
		Prompt:       out.Question.Prompt,
		OptionIndex:  optionIndex,
		Correct:      out.Correct,
		Adaptive:     out.Adaptive,
		TimeMs:       int(now.Sub(a.questionStart).Milliseconds()),
	})
	a.questionStart = now

	switch {
	case out.Retry:
		a.svc.record(ctx, store.CheckpointEventData{
			AttemptID:      a.ID,
			CheckpointID:   a.Checkpoint.ID,
			SubjectID:      a.SubjectID,
			Action:         store.ActionRound,
			Round:          out.Round + 1,
			Questions:      len(out.MissedConceptIDs),
			MissedConcepts: out.MissedConceptIDs,
		})
	case out.Completed:
		a.closed = true
		a.svc.record(ctx, store.CheckpointEventData{
			AttemptID:    a.ID,
			CheckpointID: a.Checkpoint.ID,
			SubjectID:    a.SubjectID,
			Action:       store.ActionComplete,
			Round:        out.Round,
			DurationSecs: int(now.Sub(a.startedAt).Seconds()),
		})
		a.svc.complete(ctx, a, a.session.Snapshot())
		a.svc.log.Info("checkpoint passed",
			zap.String("attempt", a.ID),
			zap.String("checkpoint", a.Checkpoint.ID),
			zap.Int("rounds", out.Round),
		)
	}
	return out, nil
}

// Abandon ends an unfinished attempt. It is a no-op on a completed or
// already abandoned attempt.
func (a *Attempt) Abandon(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}
	a.closed = true
	v := a.session.Snapshot()
	a.svc.record(ctx, store.CheckpointEventData{
		AttemptID:    a.ID,
		CheckpointID: a.Checkpoint.ID,
		SubjectID:    a.SubjectID,
		Action:       store.ActionAbandon,
		Round:        v.Round,
		DurationSecs: int(a.svc.now().Sub(a.startedAt).Seconds()),
	})
}
