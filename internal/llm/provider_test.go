package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5}},
		MockResponse{Content: json.RawMessage(`{"b":2}`)},
	)

	first, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(first.Content) != `{"a":1}` || first.Usage.InputTokens != 10 {
		t.Fatalf("unexpected first response: %+v", first)
	}
	second, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(second.Content) != `{"b":2}` {
		t.Fatalf("unexpected second content: %s", second.Content)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable on empty queue, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("CallCount = %d, want 3", mock.CallCount())
	}
}

func TestMockProvider_RecordsPurpose(t *testing.T) {
	mock := NewMockProvider(MockJSON(map[string]int{"x": 1}))
	ctx := WithPurpose(context.Background(), PurposeLearningCard)

	if _, err := mock.Generate(ctx, Request{System: "sys"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.Purposes[0] != PurposeLearningCard {
		t.Fatalf("purpose = %q, want %q", mock.Purposes[0], PurposeLearningCard)
	}
	if mock.Calls[0].System != "sys" {
		t.Fatalf("request not recorded: %+v", mock.Calls[0])
	}
}

func TestPurposeFrom_Default(t *testing.T) {
	if got := PurposeFrom(context.Background()); got != "unknown" {
		t.Fatalf("PurposeFrom = %q, want unknown", got)
	}
}

func TestFinishResponse(t *testing.T) {
	req := Request{Schema: quizSchema()}

	resp, err := finishResponse(req, json.RawMessage(`{"prompt":"p","correct_index":1}`), Usage{InputTokens: 3, OutputTokens: 4}, "m", StopEnd)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 7 {
		t.Fatalf("TotalTokens = %d, want 7", resp.Usage.TotalTokens)
	}

	_, err = finishResponse(req, json.RawMessage(`{"prompt":"p"`), Usage{}, "m", StopMaxTokens)
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}

	_, err = finishResponse(req, json.RawMessage(`{"prompt":"p"}`), Usage{}, "m", StopEnd)
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}
