package history

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/store"
)

var alwaysFirst = checkpoint.SourceFunc(func(_ context.Context, ids []string) ([]checkpoint.Question, error) {
	qs := make([]checkpoint.Question, len(ids))
	for i, id := range ids {
		qs[i] = checkpoint.Question{ConceptID: id, Prompt: id + "?", Options: []string{"a", "b"}, CorrectIndex: 0}
	}
	return qs, nil
})

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func loaded(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a load command")
	}
	s.Update(cmd())
}

func TestHistory_Empty(t *testing.T) {
	st := openStore(t)
	s := New(st.EventRepo(), nil)

	if !strings.Contains(s.View(100, 30), "Loading history") {
		t.Error("expected loading view")
	}
	loaded(t, s)
	if !strings.Contains(s.View(100, 30), "No checkpoints attempted yet") {
		t.Error("expected empty view")
	}
}

func TestHistory_Attempts(t *testing.T) {
	ctx := context.Background()
	st := openStore(t)
	cat, err := curriculum.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	cp, err := cat.Checkpoint("cpu-scheduling", "quiz-checkpoint-2")
	if err != nil {
		t.Fatalf("checkpoint: %v", err)
	}
	reviews := review.NewService(alwaysFirst, progress.New(cat.Version()), review.WithRecorder(st.EventRepo()))

	// Left early after one answer.
	a, err := reviews.Begin(ctx, "cpu-scheduling", cp)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if _, err := a.Answer(ctx, 0); err != nil {
		t.Fatalf("answer: %v", err)
	}
	a.Abandon(ctx)

	// Passed in two rounds, missing fcfs once.
	a, err = reviews.Begin(ctx, "cpu-scheduling", cp)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	for _, opt := range []int{0, 0, 1, 0} {
		if _, err := a.Answer(ctx, opt); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}

	s := New(st.EventRepo(), cat)
	loaded(t, s)
	if len(s.attempts) != 2 {
		t.Fatalf("attempts = %d, want 2", len(s.attempts))
	}

	view := s.View(120, 40)
	for _, want := range []string{"Review Checkpoint 1", "passed in 2 rounds", "left early", "NEEDS WORK", "FCFS (First Come First Serve)", "1/2 correct"} {
		if !strings.Contains(view, want) {
			t.Errorf("history view missing %q", want)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !strings.Contains(s.View(120, 40), "Rounds: 2") {
		t.Error("expanded attempt should show its rounds")
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop")
	}
}

func TestWeakest(t *testing.T) {
	acc := []store.ConceptAccuracy{
		{ConceptID: "a", Answers: 4, Correct: 4},
		{ConceptID: "b", Answers: 4, Correct: 1},
		{ConceptID: "c", Answers: 2, Correct: 1},
		{ConceptID: "d", Answers: 3, Correct: 0},
		{ConceptID: "e", Answers: 2, Correct: 1},
	}
	got := weakest(acc, 3)
	var ids []string
	for _, c := range got {
		ids = append(ids, c.ConceptID)
	}
	if strings.Join(ids, ",") != "d,b,c" {
		t.Errorf("weakest = %v, want d,b,c", ids)
	}
}
