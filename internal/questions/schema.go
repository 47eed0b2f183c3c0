package questions

import "github.com/abhisek/masteryloop/internal/llm"

// BatchSchema defines the JSON schema for checkpoint question batches.
var BatchSchema = &llm.Schema{
	Name:        "checkpoint-questions",
	Description: "One multiple-choice review question per requested concept, in request order",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"concept_id": map[string]any{
							"type":        "string",
							"description": "The concept ID this question tests, copied exactly from the request",
						},
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question text shown to the learner",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"minItems":    OptionCount,
							"maxItems":    OptionCount,
							"description": "Exactly 4 distinct answer choices",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"maximum":     OptionCount - 1,
							"description": "Zero-based index of the correct option",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "One or two sentences on why the correct option is right",
						},
					},
					"required":             []any{"concept_id", "prompt", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
