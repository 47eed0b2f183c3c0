package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)

	tests := []struct {
		pragma string
		want   string
	}{
		// journal_mode reports "memory" for in-memory databases; see
		// TestOpenFileUsesWAL.
		{"foreign_keys", "1"},
		{"synchronous", "1"},
	}
	for _, tt := range tests {
		var got string
		if err := s.DB().QueryRow("PRAGMA " + tt.pragma).Scan(&got); err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpenFileUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "masteryloop.db")
	if err := EnsureDir(path); err != nil {
		t.Fatalf("ensure dir: %v", err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if want := filepath.Join(dir, "masteryloop", "masteryloop.db"); p != want {
		t.Errorf("path = %q, want %q", p, want)
	}
}

func TestSequenceCounterSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendCheckpointEvent(ctx, CheckpointEventData{AttemptID: "a", CheckpointID: "cp", Action: ActionStart, Round: 1, Questions: 3}); err != nil {
		t.Fatalf("append checkpoint: %v", err)
	}
	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "p", Success: true}); err != nil {
		t.Fatalf("append llm: %v", err)
	}
	if err := repo.AppendAnswerEvent(ctx, AnswerEventData{AttemptID: "a", CheckpointID: "cp", ConceptID: "c1", Round: 1}); err != nil {
		t.Fatalf("append answer: %v", err)
	}

	seq, err := repo.LatestSequence(ctx)
	if err != nil {
		t.Fatalf("latest sequence: %v", err)
	}
	if seq != 3 {
		t.Errorf("latest sequence = %d, want 3", seq)
	}

	ans, err := s.Client().AnswerEvent.Query().Only(ctx)
	if err != nil {
		t.Fatalf("query answer: %v", err)
	}
	if ans.Sequence != 3 {
		t.Errorf("answer sequence = %d, want 3", ans.Sequence)
	}
}

func TestSnapshotSaveLatestPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	if err != nil || snap != nil {
		t.Fatalf("latest (empty) = %v, %v", snap, err)
	}

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data: SnapshotData{
				Version: 1,
				Progress: &ProgressData{
					CurriculumVersion: "1.0.0",
					Mastered:          map[string]time.Time{fmt.Sprintf("c%d", i): base},
				},
			},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	count, err := s.Client().Snapshot.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 5 {
		t.Errorf("remaining snapshots = %d, want 5", count)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
	if snap.Data.Progress == nil || snap.Data.Progress.CurriculumVersion != "1.0.0" {
		t.Fatalf("progress not round-tripped: %+v", snap.Data.Progress)
	}
	if _, ok := snap.Data.Progress.Mastered["c6"]; !ok {
		t.Errorf("mastered = %v, want c6", snap.Data.Progress.Mastered)
	}
}

func TestCheckpointResultDataKeys(t *testing.T) {
	raw, err := json.Marshal(CheckpointResultData{Rounds: 2, Passes: 3})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"passes":3`) {
		t.Errorf("encoded result = %s, want a passes key", raw)
	}
	if strings.Contains(string(raw), "attempts") {
		t.Errorf("encoded result = %s, should not mention attempts", raw)
	}
}

func TestProfileRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProfileRepo()
	ctx := context.Background()

	got, err := repo.Load(ctx)
	if err != nil || got != nil {
		t.Fatalf("load (empty) = %v, %v", got, err)
	}

	if err := repo.Save(ctx, LearnerData{Name: "Ada", Role: "student", Track: "academic", SignedIn: true}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, LearnerData{Name: "Ada L", Email: "ada@example.com", Role: "student", Track: "academic", SignedIn: true}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	n, err := s.Client().Learner.Query().Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("learner rows = %d, want 1", n)
	}

	got, err = repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Name != "Ada L" || got.Email != "ada@example.com" || !got.SignedIn {
		t.Errorf("loaded = %+v", got)
	}

	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := repo.Load(ctx); got != nil {
		t.Errorf("profile still present after delete")
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	_ = repo.AppendCheckpointEvent(ctx, CheckpointEventData{AttemptID: "a", CheckpointID: "cp", Action: ActionStart, Round: 1})
	_ = repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "p"})
	_ = s.ProfileRepo().Save(ctx, LearnerData{Name: "Ada", Role: "student", Track: "academic"})
	_ = s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 1, Data: SnapshotData{Version: 1}})

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for name, count := range map[string]func(context.Context) (int, error){
		"checkpoint": s.Client().CheckpointEvent.Query().Count,
		"llm":        s.Client().LLMRequestEvent.Query().Count,
		"learner":    s.Client().Learner.Query().Count,
		"snapshot":   s.Client().Snapshot.Query().Count,
	} {
		n, err := count(ctx)
		if err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if n != 0 {
			t.Errorf("%s rows after reset = %d", name, n)
		}
	}

	// The counter keeps going after a reset.
	_ = repo.AppendCheckpointEvent(ctx, CheckpointEventData{AttemptID: "b", CheckpointID: "cp", Action: ActionStart, Round: 1})
	if seq, _ := repo.LatestSequence(ctx); seq != 3 {
		t.Errorf("sequence after reset = %d, want 3", seq)
	}
}
