package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"prompt":"p","correct_index":0,"difficulty":"Easy"}`, false},
		{"optional omitted", `{"prompt":"p","correct_index":3}`, false},
		{"missing required", `{"prompt":"p"}`, true},
		{"wrong type", `{"prompt":"p","correct_index":"one"}`, true},
		{"enum violation", `{"prompt":"p","correct_index":0,"difficulty":"Brutal"}`, true},
		{"negative index", `{"prompt":"p","correct_index":-1}`, true},
		{"extra property", `{"prompt":"p","correct_index":0,"x":1}`, true},
		{"not json", `prompt: p`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(quizSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *ErrInvalidResponse
				if !errors.As(err, &inv) {
					t.Fatalf("expected ErrInvalidResponse, got %T", err)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := ValidateJSON(nil, json.RawMessage(`anything`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEstimateCost(t *testing.T) {
	cost, ok := EstimateCost("gpt-4o-mini", 1_000_000, 1_000_000)
	if !ok || cost != 0.75 {
		t.Fatalf("EstimateCost = %v, %v", cost, ok)
	}
	if _, ok := EstimateCost("no-such-model", 1, 1); ok {
		t.Fatal("expected unknown model")
	}
}
