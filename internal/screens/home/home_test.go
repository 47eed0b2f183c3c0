package home

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masteryloop/internal/cards"
	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/profile"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screens/account"
	"github.com/abhisek/masteryloop/internal/screens/history"
	"github.com/abhisek/masteryloop/internal/screens/timeline"
	"github.com/abhisek/masteryloop/internal/store"
)

var alwaysFirst = checkpoint.SourceFunc(func(_ context.Context, ids []string) ([]checkpoint.Question, error) {
	qs := make([]checkpoint.Question, len(ids))
	for i, id := range ids {
		qs[i] = checkpoint.Question{ConceptID: id, Prompt: id + "?", Options: []string{"a", "b"}, CorrectIndex: 0}
	}
	return qs, nil
})

func newDeps(t *testing.T) Deps {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cat, err := curriculum.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return Deps{
		Catalog:  cat,
		Reviews:  review.NewService(alwaysFirst, progress.New(cat.Version())),
		Cards:    cards.NewService(nil, cards.DefaultConfig(), nil),
		Profiles: profile.NewSessionStore(st.ProfileRepo()),
		Events:   st.EventRepo(),
	}
}

func pushed(t *testing.T, cmd tea.Cmd) any {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	return msg.Screen
}

func TestHome_MenuItems(t *testing.T) {
	h := New(newDeps(t))
	var labels []string
	for _, item := range h.menu.Items {
		labels = append(labels, item.Label)
	}
	want := "OPERATING SYSTEMS,CPU SCHEDULING,PROFILE,HISTORY,QUIT"
	if got := strings.Join(labels, ","); got != want {
		t.Errorf("menu = %s, want %s", got, want)
	}

	view := h.View(100, 40)
	for _, s := range []string{"0/6 mastered", "0/12 CONCEPTS MASTERED", "0 CHECKPOINTS"} {
		if !strings.Contains(view, s) {
			t.Errorf("home view missing %q", s)
		}
	}
}

func TestHome_OpenScreens(t *testing.T) {
	h := New(newDeps(t))

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*timeline.TimelineScreen); !ok {
		t.Error("subject should open its timeline")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*account.ProfileScreen); !ok {
		t.Error("PROFILE should open the profile screen")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := pushed(t, cmd).(*history.HistoryScreen); !ok {
		t.Error("HISTORY should open the history screen")
	}

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd = h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("QUIT should quit")
	}
}

func TestHome_ReflectsMastery(t *testing.T) {
	deps := newDeps(t)
	h := New(deps)

	cp, err := deps.Catalog.Checkpoint("cpu-scheduling", "quiz-checkpoint-2")
	if err != nil {
		t.Fatalf("checkpoint: %v", err)
	}
	a, err := deps.Reviews.Begin(t.Context(), "cpu-scheduling", cp)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	for range cp.ConceptIDs {
		if _, err := a.Answer(t.Context(), 0); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}

	view := h.View(100, 40)
	for _, s := range []string{"3/6 mastered", "3/12 CONCEPTS MASTERED", "1 CHECKPOINTS"} {
		if !strings.Contains(view, s) {
			t.Errorf("home view missing %q", s)
		}
	}
}

func TestHome_StartsOnLastSubject(t *testing.T) {
	deps := newDeps(t)
	if _, err := deps.Profiles.SignIn(t.Context(), profile.Learner{Name: "Ada", Subject: "cpu-scheduling"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	h := New(deps)
	if h.menu.Selected != 1 {
		t.Errorf("selected = %d, want the CPU Scheduling subject", h.menu.Selected)
	}
	if !strings.Contains(h.View(100, 40), "Welcome back, Ada") {
		t.Error("expected a greeting for the signed-in learner")
	}
}
