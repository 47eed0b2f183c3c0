package questions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/masteryloop/internal/checkpoint"
)

func validQuestion(conceptID string) checkpoint.Question {
	return checkpoint.Question{
		ConceptID:    conceptID,
		Prompt:       "What does the dispatcher do?",
		Options:      []string{"Selects", "Switches context", "Allocates memory", "Handles I/O"},
		CorrectIndex: 1,
		Explanation:  "The dispatcher performs the context switch.",
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Validator: "test-validator", Message: "something went wrong", Retryable: true}
	assert.Equal(t, `validator "test-validator": something went wrong`, err.Error())
}

func TestStructuralValidator(t *testing.T) {
	v := &StructuralValidator{}

	tests := []struct {
		name   string
		mutate func(q *checkpoint.Question)
		want   string // empty means valid
	}{
		{"valid", func(q *checkpoint.Question) {}, ""},
		{"no explanation is fine", func(q *checkpoint.Question) { q.Explanation = "" }, ""},
		{"empty prompt", func(q *checkpoint.Question) { q.Prompt = "  " }, "prompt is empty"},
		{"long prompt", func(q *checkpoint.Question) { q.Prompt = strings.Repeat("x", MaxPromptLen+1) }, "prompt exceeds"},
		{"five options", func(q *checkpoint.Question) { q.Options = append(q.Options, "extra") }, "exactly 4 options"},
		{"empty option", func(q *checkpoint.Question) { q.Options[2] = "" }, "option is empty"},
		{"duplicate option", func(q *checkpoint.Question) { q.Options[3] = "selects" }, "duplicate option"},
		{"index too high", func(q *checkpoint.Question) { q.CorrectIndex = 4 }, "out of range"},
		{"negative index", func(q *checkpoint.Question) { q.CorrectIndex = -1 }, "out of range"},
		{"long explanation", func(q *checkpoint.Question) { q.Explanation = strings.Repeat("y", MaxExplanationLen+1) }, "explanation exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := validQuestion("c1")
			tt.mutate(&q)
			verr := v.Validate([]checkpoint.Question{validQuestion("c0"), q}, nil)
			if tt.want == "" {
				assert.Nil(t, verr)
				return
			}
			if assert.NotNil(t, verr) {
				assert.Equal(t, "structural", verr.Validator)
				assert.Contains(t, verr.Message, "question 1")
				assert.Contains(t, verr.Message, tt.want)
			}
		})
	}
}

func TestCoverageValidator(t *testing.T) {
	v := &CoverageValidator{}
	batch := []checkpoint.Question{validQuestion("a"), validQuestion("b")}

	assert.Nil(t, v.Validate(batch, []string{"a", "b"}))

	verr := v.Validate(batch, []string{"a", "b", "c"})
	if assert.NotNil(t, verr) {
		assert.Contains(t, verr.Message, "expected 3 questions, got 2")
	}

	verr = v.Validate(batch, []string{"b", "a"})
	if assert.NotNil(t, verr) {
		assert.Contains(t, verr.Message, `question 0 is for concept "a", want "b"`)
	}
}
