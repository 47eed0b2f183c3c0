package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"ok":true}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 8},
	})
	p := WithLogging(mock, "anthropic", repo, nil)

	ctx := WithPurpose(context.Background(), PurposeCheckpointQuestions)
	_, err := p.Generate(ctx, Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   quizSchema(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Provider != "anthropic" || ev.Model != "mock" || ev.Purpose != PurposeCheckpointQuestions {
		t.Fatalf("unexpected event identity: %+v", ev)
	}
	if !ev.Success || ev.InputTokens != 12 || ev.OutputTokens != 8 {
		t.Fatalf("unexpected event metrics: %+v", ev)
	}
	if ev.ResponseBody != `{"ok":true}` {
		t.Fatalf("ResponseBody = %q", ev.ResponseBody)
	}
	for _, want := range []string{"[system]", "be brief", "[user]", "hello", "[schema: test-quiz]"} {
		if !strings.Contains(ev.RequestBody, want) {
			t.Fatalf("RequestBody missing %q:\n%s", want, ev.RequestBody)
		}
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Err: errors.New("boom")})
	p := WithLogging(mock, "openai", repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	ev := repo.events[0]
	if ev.Success || ev.ErrorMessage != "boom" || ev.Purpose != "unknown" {
		t.Fatalf("unexpected failure event: %+v", ev)
	}
}

func TestLoggingProvider_RepoFailureDoesNotFailCall(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "gemini", repo, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, "mock", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
