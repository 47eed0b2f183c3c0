package cards

import "github.com/abhisek/masteryloop/internal/llm"

// CardSchema defines the JSON schema for learning card responses.
var CardSchema = &llm.Schema{
	Name:        "learning-card",
	Description: "A short learning card explaining one concept with an analogy and a check question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"definition": map[string]any{
				"type":        "string",
				"description": "One or two sentence definition of the concept",
			},
			"visual_prompt": map[string]any{
				"type":        "string",
				"description": "A picture the learner can imagine that captures the idea",
			},
			"examples": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       map[string]any{"type": "string"},
						"explanation": map[string]any{"type": "string"},
					},
					"required":             []any{"title", "explanation"},
					"additionalProperties": false,
				},
				"description": "One or two real-world analogies",
			},
			"sub_concepts": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":      map[string]any{"type": "string"},
						"definition": map[string]any{"type": "string"},
					},
					"required":             []any{"title", "definition"},
					"additionalProperties": false,
				},
				"description": "Two to four key terms with short definitions",
			},
			"quiz": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": 4,
							"maxItems": 4,
						},
						"correct_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
						"explanation":   map[string]any{"type": "string"},
					},
					"required":             []any{"question", "options", "correct_index", "explanation"},
					"additionalProperties": false,
				},
				"description": "One to three multiple-choice check questions",
			},
		},
		"required":             []any{"definition", "visual_prompt", "examples", "sub_concepts", "quiz"},
		"additionalProperties": false,
	},
}
