package checkpoint

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	engine "github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/screens/summary"
	"github.com/abhisek/masteryloop/internal/store"
)

// recorder captures checkpoint events.
type recorder struct {
	actions []string
}

func (r *recorder) AppendCheckpointEvent(_ context.Context, d store.CheckpointEventData) error {
	r.actions = append(r.actions, d.Action)
	return nil
}

func (r *recorder) AppendAnswerEvent(context.Context, store.AnswerEventData) error { return nil }

// source generates questions whose first option is always right.
var source = engine.SourceFunc(func(_ context.Context, ids []string) ([]engine.Question, error) {
	qs := make([]engine.Question, len(ids))
	for i, id := range ids {
		qs[i] = engine.Question{
			ConceptID:    id,
			Prompt:       "What does " + id + " do?",
			Options:      []string{"right", "wrong", "wrong", "wrong"},
			CorrectIndex: 0,
			Explanation:  "Because " + id + ".",
		}
	}
	return qs, nil
})

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testOptions() Options {
	return Options{
		SubjectID: "cpu-scheduling",
		Checkpoint: engine.Checkpoint{
			ID:         "quiz-checkpoint-2",
			Title:      "Review Checkpoint 1",
			ConceptIDs: []string{"fcfs", "sjf", "round-robin"},
		},
		Titles: map[string]string{"fcfs": "FCFS", "sjf": "SJF", "round-robin": "Round Robin"},
		Next:   "Priority Scheduling",
	}
}

// startedScreen returns a screen whose attempt has been started.
func startedScreen(t *testing.T, src engine.QuestionSource) (*CheckpointScreen, *review.Service, *recorder) {
	t.Helper()
	rec := &recorder{}
	svc := review.NewService(src, progress.New("1.0.0"), review.WithRecorder(rec))
	s := New(svc, testOptions())

	msg := s.Init()()
	scr, _ := s.Update(msg)
	return scr.(*CheckpointScreen), svc, rec
}

func press(t *testing.T, s *CheckpointScreen, msg tea.KeyPressMsg) tea.Cmd {
	t.Helper()
	scr, cmd := s.Update(msg)
	if scr != s {
		t.Fatal("screen identity changed")
	}
	return cmd
}

func TestCheckpointScreen_Loading(t *testing.T) {
	s := New(review.NewService(source, progress.New("1.0.0")), testOptions())
	if !strings.Contains(s.View(80, 24), "Preparing 3 review questions") {
		t.Error("expected loading view")
	}
	if !s.HandlesEscape() {
		t.Error("checkpoint screen should handle Esc itself")
	}
}

func TestCheckpointScreen_PerfectRound(t *testing.T) {
	s, svc, rec := startedScreen(t, source)
	if s.phase != phaseQuestion {
		t.Fatalf("phase = %v, want question", s.phase)
	}

	view := s.View(100, 30)
	for _, want := range []string{"Question 1 of 3", "Concept: FCFS", "ROUND 1", "What does fcfs do?"} {
		if !strings.Contains(view, want) {
			t.Errorf("question view missing %q", want)
		}
	}

	for i := range 3 {
		press(t, s, keyPress('1'))
		if s.phase != phaseFeedback {
			t.Fatalf("answer %d: phase = %v, want feedback", i, s.phase)
		}
		if !strings.Contains(s.View(100, 30), "Correct!") {
			t.Errorf("answer %d: feedback missing Correct!", i)
		}
		if i < 2 {
			press(t, s, keyPress(' '))
		}
	}

	if !s.outcome.Completed {
		t.Fatal("expected completion after a perfect round")
	}
	if !strings.Contains(s.View(100, 30), "Checkpoint passed") {
		t.Error("feedback should announce the pass")
	}

	cmd := press(t, s, keyPress(' '))
	if cmd == nil {
		t.Fatal("expected a command after completion")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if _, ok := msg.Screen.(*summary.SummaryScreen); !ok {
		t.Errorf("expected summary screen, got %T", msg.Screen)
	}

	if got := svc.Mastered(); len(got) != 3 || !got["sjf"] {
		t.Errorf("mastered = %v, want all three concepts", got)
	}
	if strings.Join(rec.actions, ",") != "start,complete" {
		t.Errorf("actions = %v", rec.actions)
	}
}

func TestCheckpointScreen_AdaptiveRound(t *testing.T) {
	s, svc, rec := startedScreen(t, source)

	press(t, s, keyPress('1')) // fcfs right
	press(t, s, keyPress(' '))
	press(t, s, keyPress('2')) // sjf wrong
	if !strings.Contains(s.View(100, 30), "Correct answer: right") {
		t.Error("wrong answer should reveal the correct option")
	}
	press(t, s, keyPress(' '))
	press(t, s, keyPress('3')) // round-robin wrong

	if !s.outcome.Retry {
		t.Fatal("expected a retry after misses")
	}
	fb := s.View(100, 30)
	if !strings.Contains(fb, "Round 1 finished with 2 missed.") || !strings.Contains(fb, "SJF, Round Robin") {
		t.Errorf("feedback should list the missed concepts:\n%s", fb)
	}

	press(t, s, keyPress(' '))
	view := s.View(100, 30)
	for _, want := range []string{"ADAPTIVE REVIEW · ROUND 2", "Question 1 of 2", "Concept: SJF"} {
		if !strings.Contains(view, want) {
			t.Errorf("adaptive view missing %q", want)
		}
	}

	press(t, s, keyPress('1'))
	press(t, s, keyPress(' '))
	press(t, s, keyPress('1'))
	if !s.outcome.Completed {
		t.Fatal("expected completion after the adaptive round")
	}

	res := s.result()
	if len(res.Rounds) != 2 || len(res.Rounds[0].Missed) != 2 || !res.Rounds[1].Adaptive {
		t.Errorf("rounds = %+v", res.Rounds)
	}
	if res.Next != "Priority Scheduling" {
		t.Errorf("next = %q", res.Next)
	}
	if len(svc.Mastered()) != 3 {
		t.Errorf("mastered = %v", svc.Mastered())
	}
	if strings.Join(rec.actions, ",") != "start,round,complete" {
		t.Errorf("actions = %v", rec.actions)
	}
}

func TestCheckpointScreen_ArrowsAndEnter(t *testing.T) {
	s, _, _ := startedScreen(t, source)
	press(t, s, specialKey(tea.KeyDown))
	press(t, s, specialKey(tea.KeyEnter))
	if s.phase != phaseFeedback || s.outcome.Correct {
		t.Errorf("phase=%v correct=%v, want feedback with a wrong answer", s.phase, s.outcome.Correct)
	}
}

func TestCheckpointScreen_QuitConfirm(t *testing.T) {
	s, svc, rec := startedScreen(t, source)

	press(t, s, specialKey(tea.KeyEscape))
	if s.phase != phaseQuitConfirm {
		t.Fatalf("phase = %v, want quit confirm", s.phase)
	}
	press(t, s, keyPress('n'))
	if s.phase != phaseQuestion {
		t.Fatalf("phase = %v, want question", s.phase)
	}

	press(t, s, specialKey(tea.KeyEscape))
	cmd := press(t, s, keyPress('y'))
	if cmd == nil {
		t.Fatal("expected a command after confirming")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
	if strings.Join(rec.actions, ",") != "start,abandon" {
		t.Errorf("actions = %v", rec.actions)
	}
	if len(svc.Mastered()) != 0 {
		t.Error("abandoning must not master anything")
	}
}

func TestCheckpointScreen_EscWhileLoadingAbandons(t *testing.T) {
	rec := &recorder{}
	svc := review.NewService(source, progress.New("1.0.0"), review.WithRecorder(rec))
	s := New(svc, testOptions())
	start := s.Init()

	cmd := press(t, s, specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command after Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}

	if msg := start(); msg != nil {
		t.Errorf("cancelled start should deliver nothing, got %T", msg)
	}
	if strings.Join(rec.actions, ",") != "start,abandon" {
		t.Errorf("actions = %v, want start,abandon", rec.actions)
	}
}

func TestCheckpointScreen_EscWhileLoadingCancelsGeneration(t *testing.T) {
	var sawCancel bool
	waiting := engine.SourceFunc(func(ctx context.Context, ids []string) ([]engine.Question, error) {
		<-ctx.Done()
		sawCancel = true
		return nil, ctx.Err()
	})
	rec := &recorder{}
	s := New(review.NewService(waiting, progress.New("1.0.0"), review.WithRecorder(rec)), testOptions())
	start := s.Init()

	press(t, s, specialKey(tea.KeyEscape))
	if msg := start(); msg != nil {
		t.Errorf("cancelled start should deliver nothing, got %T", msg)
	}
	if !sawCancel {
		t.Error("question generation should see the cancellation")
	}
	if len(rec.actions) != 0 {
		t.Errorf("no attempt was created, got actions %v", rec.actions)
	}
}

func TestCheckpointScreen_SourceError(t *testing.T) {
	failing := engine.SourceFunc(func(context.Context, []string) ([]engine.Question, error) {
		return nil, errors.New("all question sources failed")
	})
	s, _, _ := startedScreen(t, failing)
	if s.phase != phaseError {
		t.Fatalf("phase = %v, want error", s.phase)
	}
	if !strings.Contains(s.View(200, 30), "all question sources failed") {
		t.Error("error view should show the cause")
	}

	var scr screen.Screen = s
	_, cmd := scr.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestCheckpointScreen_KeyHints(t *testing.T) {
	s, _, _ := startedScreen(t, source)
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
