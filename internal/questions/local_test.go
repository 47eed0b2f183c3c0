package questions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
)

func TestLocalSource_CuratedAndTemplate(t *testing.T) {
	src := NewLocalSource(testConcepts())

	qs, err := src.Generate(context.Background(), []string{"fcfs", "rr"})
	require.NoError(t, err)
	require.Len(t, qs, 2)

	assert.Equal(t, "FCFS suffers from which major issue?", qs[0].Prompt)
	assert.Equal(t, 2, qs[0].CorrectIndex)
	assert.Equal(t, "fcfs", qs[0].ConceptID)

	assert.Equal(t, "What is the core purpose of Round Robin?", qs[1].Prompt)
	assert.Equal(t, 1, qs[1].CorrectIndex)
	assert.Equal(t, "Review Round Robin: It is critical for system stability.", qs[1].Explanation)
	assert.Equal(t, "Fundamental concept for Round Robin stability and structure.", qs[1].Options[1])
}

func TestLocalSource_UnknownConceptFailsCall(t *testing.T) {
	src := NewLocalSource(testConcepts())
	qs, err := src.Generate(context.Background(), []string{"rr", "missing"})
	require.Error(t, err)
	assert.Nil(t, qs)
	assert.Contains(t, err.Error(), "missing")
}

func TestLocalSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocalSource(testConcepts()).Generate(ctx, []string{"rr"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalSource_PassesStructuralChecks(t *testing.T) {
	qs, err := NewLocalSource(testConcepts()).Generate(context.Background(), []string{"fcfs", "rr", "paging"})
	require.NoError(t, err)
	assert.Nil(t, (&StructuralValidator{}).Validate(qs, nil))
	assert.Nil(t, (&CoverageValidator{}).Validate(qs, []string{"fcfs", "rr", "paging"}))
}

func TestLocalSource_DrivesEmbeddedCheckpoint(t *testing.T) {
	cat, err := curriculum.Load()
	require.NoError(t, err)

	for _, s := range cat.Subjects() {
		for _, cp := range cat.Checkpoints(s.ID) {
			sess, err := checkpoint.StartSession(context.Background(), cp.ID, cp.ConceptIDs, NewLocalSource(cat))
			require.NoError(t, err, "%s/%s", s.ID, cp.ID)
			assert.Len(t, sess.OriginalQuestions(), len(cp.ConceptIDs))
		}
	}
}
