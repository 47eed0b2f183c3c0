package store

import (
	"context"
	"testing"
)

func TestLLMEventQueries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "checkpoint-questions", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "[user]\nq", ResponseBody: `{"questions":[]}`},
		{Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "learning-card", InputTokens: 80, OutputTokens: 120, LatencyMs: 400, Success: true},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "checkpoint-questions", InputTokens: 90, LatencyMs: 100, Success: false, ErrorMessage: "rate limited"},
	}
	for _, ev := range events {
		if err := repo.AppendLLMRequest(ctx, ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 || all[0].Model != "gpt-4o-mini" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	limited, _ := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "checkpoint-questions", Before: 3})
	if len(limited) != 1 || limited[0].Sequence != 1 {
		t.Fatalf("filtered query = %+v", limited)
	}

	one, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one.RequestBody != "[user]\nq" || one.ResponseBody != `{"questions":[]}` {
		t.Errorf("bodies not stored: %+v", one)
	}
	if _, err := repo.GetLLMEvent(ctx, 9999); err == nil {
		t.Error("expected not found error")
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("usage by purpose = %+v", byPurpose)
	}
	cq := byPurpose[0]
	if cq.Key != "checkpoint-questions" || cq.Calls != 2 || cq.Failures != 1 || cq.InputTokens != 190 || cq.AvgLatencyMs != 150 {
		t.Errorf("checkpoint-questions usage = %+v", cq)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Key != "claude-haiku-4-5" || byModel[0].OutputTokens != 170 {
		t.Errorf("usage by model = %+v", byModel)
	}
}

func TestCheckpointHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}

	// Attempt one: one retry round then complete.
	must(repo.AppendCheckpointEvent(ctx, CheckpointEventData{AttemptID: "a1", CheckpointID: "quiz-checkpoint-2", SubjectID: "os", Action: ActionStart, Round: 1, Questions: 3}))
	must(repo.AppendAnswerEvent(ctx, AnswerEventData{AttemptID: "a1", CheckpointID: "quiz-checkpoint-2", ConceptID: "c1", Round: 1, Correct: true}))
	must(repo.AppendAnswerEvent(ctx, AnswerEventData{AttemptID: "a1", CheckpointID: "quiz-checkpoint-2", ConceptID: "c2", Round: 1, Correct: false}))
	must(repo.AppendAnswerEvent(ctx, AnswerEventData{AttemptID: "a1", CheckpointID: "quiz-checkpoint-2", ConceptID: "c3", Round: 1, Correct: true}))
	must(repo.AppendCheckpointEvent(ctx, CheckpointEventData{AttemptID: "a1", CheckpointID: "quiz-checkpoint-2", Action: ActionRound, Round: 2, Questions: 1, MissedConcepts: []string{"c2"}}))
	must(repo.AppendAnswerEvent(ctx, AnswerEventData{AttemptID: "a1", CheckpointID: "quiz-checkpoint-2", ConceptID: "c2", Round: 2, Correct: true, Adaptive: true}))
	must(repo.AppendCheckpointEvent(ctx, CheckpointEventData{AttemptID: "a1", CheckpointID: "quiz-checkpoint-2", Action: ActionComplete, Round: 2}))

	// Attempt two: abandoned.
	must(repo.AppendCheckpointEvent(ctx, CheckpointEventData{AttemptID: "a2", CheckpointID: "quiz-checkpoint-5", Action: ActionStart, Round: 1, Questions: 3}))
	must(repo.AppendCheckpointEvent(ctx, CheckpointEventData{AttemptID: "a2", CheckpointID: "quiz-checkpoint-5", Action: ActionAbandon, Round: 1}))

	// Attempt three: still running.
	must(repo.AppendCheckpointEvent(ctx, CheckpointEventData{AttemptID: "a3", CheckpointID: "quiz-checkpoint-2", Action: ActionStart, Round: 1, Questions: 3}))

	history, err := repo.CheckpointHistory(ctx, 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history len = %d", len(history))
	}
	if history[0].AttemptID != "a3" || history[0].Status != AttemptInProgress {
		t.Errorf("history[0] = %+v", history[0])
	}
	if history[1].Status != AttemptAbandoned {
		t.Errorf("history[1] = %+v", history[1])
	}
	a1 := history[2]
	if a1.Status != AttemptCompleted || a1.Rounds != 2 || a1.Answers != 4 || a1.Correct != 3 || a1.SubjectID != "os" {
		t.Errorf("a1 = %+v", a1)
	}
	if a1.EndedAt.IsZero() {
		t.Error("a1 has no end time")
	}

	limited, _ := repo.CheckpointHistory(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("limited history len = %d", len(limited))
	}

	acc, err := repo.ConceptAccuracy(ctx)
	if err != nil {
		t.Fatalf("accuracy: %v", err)
	}
	if len(acc) != 3 || acc[1].ConceptID != "c2" || acc[1].Answers != 2 || acc[1].Correct != 1 {
		t.Errorf("accuracy = %+v", acc)
	}
	if acc[1].Rate() != 0.5 {
		t.Errorf("rate = %v", acc[1].Rate())
	}
}

func TestCheckpointHistory_Empty(t *testing.T) {
	s := openTestStore(t)
	history, err := s.EventRepo().CheckpointHistory(context.Background(), 5)
	if err != nil || len(history) != 0 {
		t.Fatalf("history = %v, %v", history, err)
	}
}
