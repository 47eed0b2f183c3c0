package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/store"
)

var firstRight = checkpoint.SourceFunc(func(_ context.Context, ids []string) ([]checkpoint.Question, error) {
	qs := make([]checkpoint.Question, len(ids))
	for i, id := range ids {
		qs[i] = checkpoint.Question{
			ConceptID: id,
			Prompt:    "Which is " + id + "?",
			Options:   []string{"right", "wrong", "wrong", "wrong"},
		}
	}
	return qs, nil
})

func testCheckpoint() checkpoint.Checkpoint {
	return checkpoint.Checkpoint{
		ID:         "quiz-checkpoint-2",
		Title:      "Review Checkpoint 1",
		ConceptIDs: []string{"fcfs", "sjf", "round-robin"},
	}
}

var testTitles = map[string]string{"fcfs": "FCFS", "sjf": "SJF", "round-robin": "Round Robin"}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{" 4 ", 3, true},
		{"b", 1, true},
		{"D", 3, true},
		{"5", 0, false},
		{"e", 0, false},
		{"0", 0, false},
		{"12", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseOption(tt.in, 4)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestPlayCheckpoint_AdaptiveRound(t *testing.T) {
	prog := progress.New("1.0.0")
	svc := review.NewService(firstRight, prog)

	// Miss SJF in round 1, reject an out-of-range answer, then pass the retry.
	in := strings.NewReader("1\n2\na\n9\n1\n")
	var out bytes.Buffer
	err := playCheckpoint(context.Background(), in, &out, svc, "cpu-scheduling", testCheckpoint(), testTitles)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "── Question 1/3 ──")
	assert.Contains(t, text, "Concept: SJF")
	assert.Contains(t, text, "Not quite.")
	assert.Contains(t, text, "Round 1 finished with 1 missed. Adaptive review: SJF")
	assert.Contains(t, text, "Adaptive Review · Round 2 · Question 1/1")
	assert.Contains(t, text, "Enter 1-4 or a-d.")
	assert.Contains(t, text, "Checkpoint passed in 2 round(s)")

	res, ok := svc.CheckpointResult("cpu-scheduling", "quiz-checkpoint-2")
	require.True(t, ok)
	assert.Equal(t, 2, res.Rounds)
	assert.True(t, prog.IsMastered("sjf"))
}

func TestPlayCheckpoint_Quit(t *testing.T) {
	svc := review.NewService(firstRight, progress.New("1.0.0"))

	var out bytes.Buffer
	err := playCheckpoint(context.Background(), strings.NewReader("1\nq\n"), &out, svc, "cpu-scheduling", testCheckpoint(), testTitles)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Checkpoint left.")
	_, ok := svc.CheckpointResult("cpu-scheduling", "quiz-checkpoint-2")
	assert.False(t, ok)
	assert.Empty(t, svc.Mastered())
}

func TestPlayCheckpoint_EOFAbandons(t *testing.T) {
	svc := review.NewService(firstRight, progress.New("1.0.0"))

	var out bytes.Buffer
	err := playCheckpoint(context.Background(), strings.NewReader(""), &out, svc, "cpu-scheduling", testCheckpoint(), testTitles)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Checkpoint left.")
}

func TestPickCheckpoint(t *testing.T) {
	catalog, err := curriculum.Load()
	require.NoError(t, err)
	prog := progress.New(catalog.Version())

	_, err = pickCheckpoint(catalog, prog, "", "")
	assert.Error(t, err)

	_, err = pickCheckpoint(catalog, prog, "no-such-subject", "")
	assert.Error(t, err)

	cp, err := pickCheckpoint(catalog, prog, "cpu-scheduling", "")
	require.NoError(t, err)
	assert.Equal(t, "quiz-checkpoint-2", cp.ID)

	// Once the first checkpoint is passed the next one is picked.
	svc := review.NewService(firstRight, prog)
	attempt, err := svc.Begin(context.Background(), "cpu-scheduling", cp)
	require.NoError(t, err)
	for range cp.ConceptIDs {
		_, err := attempt.Answer(context.Background(), 0)
		require.NoError(t, err)
	}
	next, err := pickCheckpoint(catalog, prog, "cpu-scheduling", "")
	require.NoError(t, err)
	assert.NotEqual(t, cp.ID, next.ID)

	explicit, err := pickCheckpoint(catalog, prog, "cpu-scheduling", cp.ID)
	require.NoError(t, err)
	assert.Equal(t, cp.ID, explicit.ID)
}

func TestPrintSubject(t *testing.T) {
	catalog, err := curriculum.Load()
	require.NoError(t, err)
	subj, err := catalog.Subject("cpu-scheduling")
	require.NoError(t, err)

	var out bytes.Buffer
	printSubject(&out, catalog, progress.New(catalog.Version()), subj)

	text := out.String()
	assert.Contains(t, text, "0/6 mastered")
	assert.Contains(t, text, "SCHEDULING ALGORITHMS")
	assert.Contains(t, text, "Review Checkpoint 1")
	assert.Contains(t, text, "not passed")

	// The checkpoint row follows the last concept it covers.
	fcfs := strings.Index(text, "fcfs")
	cpRow := strings.Index(text, "quiz-checkpoint-2")
	sjf := strings.Index(text, " sjf ")
	assert.Less(t, fcfs, cpRow)
	assert.Less(t, cpRow, sjf)
}

func TestPrintHistory(t *testing.T) {
	var out bytes.Buffer
	printHistory(&out, nil, nil)
	assert.Contains(t, out.String(), "No checkpoint attempts yet.")

	out.Reset()
	started := time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)
	printHistory(&out,
		[]store.CheckpointAttempt{{
			AttemptID:    "a1",
			CheckpointID: "quiz-checkpoint-2",
			SubjectID:    "cpu-scheduling",
			StartedAt:    started,
			Status:       store.AttemptCompleted,
			Rounds:       2,
			Answers:      4,
			Correct:      3,
		}},
		[]store.ConceptAccuracy{
			{ConceptID: "fcfs", Answers: 1, Correct: 1},
			{ConceptID: "sjf", Answers: 2, Correct: 1},
		},
	)
	text := out.String()
	assert.Contains(t, text, "2026-03-01 09:30")
	assert.Contains(t, text, "3/4")
	assert.Contains(t, text, "completed")
	assert.Less(t, strings.Index(text, "sjf"), strings.Index(text, "fcfs"))
}
