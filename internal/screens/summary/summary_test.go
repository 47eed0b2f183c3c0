package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masteryloop/internal/router"
)

func testResult() Result {
	return Result{
		CheckpointTitle: "Review Checkpoint 1",
		Duration:        95 * time.Second,
		Rounds: []Round{
			{Number: 1, Asked: 3, Missed: []string{"FCFS", "SJF"}},
			{Number: 2, Adaptive: true, Asked: 2, Missed: []string{"SJF"}},
			{Number: 3, Adaptive: true, Asked: 1},
		},
		Mastered: []string{"Why Scheduling", "FCFS", "SJF"},
		Next:     "Round Robin",
	}
}

func TestResult_Counts(t *testing.T) {
	r := testResult()
	if got := r.Answers(); got != 6 {
		t.Errorf("Answers() = %d, want 6", got)
	}
	if got := r.Correct(); got != 3 {
		t.Errorf("Correct() = %d, want 3", got)
	}
}

func TestSummaryScreen_View(t *testing.T) {
	view := New(testResult()).View(100, 30)
	for _, want := range []string{"Checkpoint passed!", "Rounds: 3", "1:35", "Adaptive review", "missed: FCFS, SJF", "Up next: Round Robin"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EnterPops(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on enter")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	if got := New(Result{}).Title(); got != "Checkpoint Passed" {
		t.Errorf("Title = %q", got)
	}
}
