package llm

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestRateLimit_Disabled(t *testing.T) {
	mock := NewMockProvider()
	if p := WithRateLimit(mock, 0, 1); p != Provider(mock) {
		t.Fatal("expected the provider unchanged when the limit is disabled")
	}
}

func TestRateLimit_BurstThenWait(t *testing.T) {
	ok := MockResponse{Content: json.RawMessage(`{}`)}
	mock := NewMockProvider(ok, ok, ok)
	p := WithRateLimit(mock, 60, 2)

	for i := range 2 {
		if _, err := p.Generate(context.Background(), Request{}); err != nil {
			t.Fatalf("call %d within burst: %v", i, err)
		}
	}

	// The third call needs a token one second away.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected the limiter to give up before the deadline")
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", mock.CallCount())
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}
