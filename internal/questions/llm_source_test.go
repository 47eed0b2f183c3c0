package questions

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masteryloop/internal/llm"
)

func TestLLMSource_Generate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockJSON(batchJSON("fcfs", "rr")))
	src := NewLLMSource(mock, testConcepts(), DefaultConfig())

	qs, err := src.Generate(context.Background(), []string{"fcfs", "rr"})
	require.NoError(t, err)
	require.Len(t, qs, 2)
	assert.Equal(t, "fcfs", qs[0].ConceptID)
	assert.Equal(t, "rr", qs[1].ConceptID)
	assert.Equal(t, 2, qs[1].CorrectIndex)
	assert.Equal(t, "Because three.", qs[0].Explanation)

	require.Equal(t, 1, mock.CallCount())
	assert.Equal(t, []string{llm.PurposeCheckpointQuestions}, mock.Purposes)

	req := mock.Calls[0]
	assert.Same(t, BatchSchema, req.Schema)
	assert.Equal(t, 2048, req.MaxTokens)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Write 2 questions")
	assert.Contains(t, msg, "concept_id: fcfs")
	assert.Contains(t, msg, "Title: Round Robin")
	assert.Contains(t, msg, "Difficulty: Hard")
	assert.Contains(t, msg, "Summary: Processes run in arrival order.")
	assert.Less(t, strings.Index(msg, "fcfs"), strings.Index(msg, "concept_id: rr"))
}

func TestLLMSource_UnknownConceptSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	src := NewLLMSource(mock, testConcepts(), DefaultConfig())

	_, err := src.Generate(context.Background(), []string{"fcfs", "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope")
	assert.Zero(t, mock.CallCount())
}

func TestLLMSource_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	src := NewLLMSource(mock, testConcepts(), DefaultConfig())

	_, err := src.Generate(context.Background(), []string{"fcfs"})
	require.Error(t, err)
	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl), "provider error should stay inspectable")
}

func TestLLMSource_BadJSON(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: []byte(`{"questions": "nope"}`)})
	src := NewLLMSource(mock, testConcepts(), DefaultConfig())

	_, err := src.Generate(context.Background(), []string{"fcfs"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse LLM response")
}

func TestLLMSource_ValidationFailsWholeBatch(t *testing.T) {
	tests := []struct {
		name      string
		body      map[string]any
		validator string
	}{
		{
			name:      "missing question",
			body:      batchJSON("fcfs"),
			validator: "coverage",
		},
		{
			name:      "wrong order",
			body:      batchJSON("rr", "fcfs"),
			validator: "coverage",
		},
		{
			name: "three options",
			body: func() map[string]any {
				b := batchJSON("fcfs", "rr")
				b["questions"].([]map[string]any)[1]["options"] = []string{"a", "b", "c"}
				return b
			}(),
			validator: "structural",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockJSON(tt.body))
			src := NewLLMSource(mock, testConcepts(), DefaultConfig())

			qs, err := src.Generate(context.Background(), []string{"fcfs", "rr"})
			require.Error(t, err)
			assert.Nil(t, qs)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.validator, verr.Validator)
			assert.True(t, verr.Retryable)
		})
	}
}

func TestNewLLMSource_DefaultsValidators(t *testing.T) {
	src := NewLLMSource(llm.NewMockProvider(), testConcepts(), Config{MaxTokens: 10})
	require.Len(t, src.config.Validators, 2)
	assert.Equal(t, "structural", src.config.Validators[0].Name())
	assert.Equal(t, "coverage", src.config.Validators[1].Name())
}
