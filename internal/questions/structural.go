package questions

import (
	"fmt"
	"strings"

	"github.com/abhisek/masteryloop/internal/checkpoint"
)

// Limits enforced on every generated question.
const (
	OptionCount       = 4
	MaxPromptLen      = 500
	MaxExplanationLen = 1000
)

// StructuralValidator checks that every question has a prompt, exactly
// four distinct options and a correct index inside them.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(batch []checkpoint.Question, _ []string) *ValidationError {
	for i, q := range batch {
		if msg := v.check(q); msg != "" {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("question %d: %s", i, msg),
				Retryable: true,
			}
		}
	}
	return nil
}

func (v *StructuralValidator) check(q checkpoint.Question) string {
	prompt := strings.TrimSpace(q.Prompt)
	if prompt == "" {
		return "prompt is empty"
	}
	if len(prompt) > MaxPromptLen {
		return fmt.Sprintf("prompt exceeds %d characters", MaxPromptLen)
	}
	if len(q.Options) != OptionCount {
		return fmt.Sprintf("expected exactly %d options, got %d", OptionCount, len(q.Options))
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" {
			return "option is empty"
		}
		if seen[key] {
			return fmt.Sprintf("duplicate option %q", opt)
		}
		seen[key] = true
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Sprintf("correct_index %d out of range", q.CorrectIndex)
	}
	if len(q.Explanation) > MaxExplanationLen {
		return fmt.Sprintf("explanation exceeds %d characters", MaxExplanationLen)
	}
	return ""
}
