package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 3,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt":     map[string]any{"type": "string", "description": "text"},
						"difficulty": map[string]any{"type": "string", "enum": []string{"Easy", "Hard"}},
						"index":      map[string]any{"type": "integer"},
					},
					"required": []any{"prompt"},
				},
			},
		},
		"required": []string{"questions"},
	}

	s := geminiSchema(def)
	if s.Type != genai.TypeObject {
		t.Fatalf("Type = %s", s.Type)
	}
	if len(s.Required) != 1 || s.Required[0] != "questions" {
		t.Fatalf("Required = %v", s.Required)
	}
	qs := s.Properties["questions"]
	if qs.Type != genai.TypeArray || qs.MinItems == nil || *qs.MinItems != 1 || *qs.MaxItems != 3 {
		t.Fatalf("unexpected array schema: %+v", qs)
	}
	item := qs.Items
	if item.Properties["index"].Type != genai.TypeInteger {
		t.Fatalf("index type = %s", item.Properties["index"].Type)
	}
	if len(item.Properties["difficulty"].Enum) != 2 {
		t.Fatalf("enum = %v", item.Properties["difficulty"].Enum)
	}
	if item.Properties["prompt"].Description != "text" {
		t.Fatalf("description lost")
	}
}
