package timeline

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masteryloop/internal/cards"
	engine "github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screens/card"
	"github.com/abhisek/masteryloop/internal/screens/checkpoint"
)

var alwaysFirst = engine.SourceFunc(func(_ context.Context, ids []string) ([]engine.Question, error) {
	qs := make([]engine.Question, len(ids))
	for i, id := range ids {
		qs[i] = engine.Question{ConceptID: id, Prompt: id + "?", Options: []string{"a", "b"}, CorrectIndex: 0}
	}
	return qs, nil
})

func newTimeline(t *testing.T) (*TimelineScreen, *review.Service) {
	t.Helper()
	cat, err := curriculum.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	subject, err := cat.Subject("cpu-scheduling")
	if err != nil {
		t.Fatalf("subject: %v", err)
	}
	reviews := review.NewService(alwaysFirst, progress.New(cat.Version()))
	return New(cat, subject, reviews, cards.NewService(nil, cards.DefaultConfig(), nil)), reviews
}

func down(s *TimelineScreen, n int) {
	for range n {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
}

func TestTimeline_Rows(t *testing.T) {
	s, _ := newTimeline(t)

	var concepts, checkpoints int
	for _, r := range s.rows {
		switch r.kind {
		case rowConcept:
			concepts++
		case rowCheckpoint:
			checkpoints++
		}
	}
	if concepts != 6 || checkpoints != 2 {
		t.Errorf("concepts=%d checkpoints=%d, want 6 and 2", concepts, checkpoints)
	}
	if s.rows[s.cursor].kind != rowConcept {
		t.Error("cursor should start on the first concept")
	}

	view := s.View(120, 40)
	for _, want := range []string{"SCHEDULING ALGORITHMS", "Why scheduling is needed", "Review Checkpoint 1", "Not passed", "🔓", "🔒"} {
		if !strings.Contains(view, want) {
			t.Errorf("timeline view missing %q", want)
		}
	}
}

func TestTimeline_OpenConcept(t *testing.T) {
	s, _ := newTimeline(t)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*card.CardScreen); !ok {
		t.Errorf("expected card screen, got %T", msg.Screen)
	}
}

func TestTimeline_OpenCheckpoint(t *testing.T) {
	s, _ := newTimeline(t)
	down(s, 3)

	concept, cp := s.Selected()
	if concept != nil || cp == nil {
		t.Fatalf("expected the first checkpoint under the cursor, got concept=%v", concept)
	}
	if cp.ID != "quiz-checkpoint-2" {
		t.Errorf("checkpoint id = %q", cp.ID)
	}

	opts := s.checkpointOptions(*cp)
	if opts.Next != "SJF (Shortest Job First)" {
		t.Errorf("next = %q", opts.Next)
	}
	if opts.Titles["fcfs"] != "FCFS (First Come First Serve)" {
		t.Errorf("titles = %v", opts.Titles)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*checkpoint.CheckpointScreen); !ok {
		t.Errorf("expected checkpoint screen, got %T", msg.Screen)
	}
}

func TestTimeline_ReflectsPassedCheckpoint(t *testing.T) {
	s, reviews := newTimeline(t)
	down(s, 3)
	_, cp := s.Selected()

	a, err := reviews.Begin(context.Background(), "cpu-scheduling", *cp)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	for range cp.ConceptIDs {
		if _, err := a.Answer(context.Background(), 0); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}

	view := s.View(120, 40)
	if !strings.Contains(view, "Passed · 1 round(s)") {
		t.Error("checkpoint row should show the pass")
	}
	if !strings.Contains(view, "✅") {
		t.Error("covered concepts should be mastered")
	}
	if !strings.Contains(view, "3/6") {
		t.Error("progress should count mastered concepts")
	}
}

func TestTimeline_Navigation(t *testing.T) {
	s, _ := newTimeline(t)
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.cursor != 1 {
		t.Errorf("cursor = %d, want to stay on the first concept", s.cursor)
	}
	down(s, 100)
	if s.cursor != len(s.rows)-1 {
		t.Errorf("cursor = %d, want last row", s.cursor)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.cursor != 1 {
		t.Errorf("tab should wrap to the first module, cursor = %d", s.cursor)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("q should pop")
	}
}
