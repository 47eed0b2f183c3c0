package curriculum

import (
	"slices"
	"strings"
	"testing"
)

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	if err != nil {
		t.Fatalf("embedded catalog failed to load: %v", err)
	}
	return c
}

func TestLoad_EmbeddedCatalog(t *testing.T) {
	c := mustLoad(t)

	if c.Version() != "1.0.0" {
		t.Errorf("Version() = %q, want 1.0.0", c.Version())
	}

	var ids []string
	for _, s := range c.Subjects() {
		ids = append(ids, s.ID)
	}
	if want := []string{"operating-systems", "cpu-scheduling"}; !slices.Equal(ids, want) {
		t.Errorf("subjects = %v, want %v", ids, want)
	}

	again, _ := Load()
	if again != c {
		t.Error("Load() should return the cached catalog")
	}
}

func TestConcepts_TimelineOrder(t *testing.T) {
	c := mustLoad(t)

	got := c.ConceptIDs("operating-systems")
	want := []string{"concept-1-1", "concept-1-2", "concept-1-3", "concept-1-4", "concept-2-1", "concept-2-2"}
	if !slices.Equal(got, want) {
		t.Fatalf("ConceptIDs = %v, want %v", got, want)
	}

	concepts := c.Concepts("operating-systems")
	if concepts[4].ModuleID != "memory-management" || concepts[4].SubjectID != "operating-systems" {
		t.Errorf("concept-2-1 placement = %s/%s", concepts[4].SubjectID, concepts[4].ModuleID)
	}

	if got := c.Concepts("nope"); len(got) != 0 {
		t.Errorf("unknown subject should have no concepts, got %d", len(got))
	}
}

func TestConcept_Lookup(t *testing.T) {
	c := mustLoad(t)

	fcfs, err := c.Concept("concept-1-3")
	if err != nil {
		t.Fatalf("Concept: %v", err)
	}
	if fcfs.Title != "FCFS Scheduling" || fcfs.Difficulty != DifficultyMedium || fcfs.EstimatedMins != 20 {
		t.Errorf("concept-1-3 = %+v", fcfs)
	}
	if !fcfs.HasCuratedCard() || len(fcfs.Quiz) != 3 {
		t.Errorf("concept-1-3 should carry a curated card and 3 quiz items")
	}

	rr, _ := c.Concept("concept-1-4")
	if rr.HasCuratedCard() {
		t.Error("concept-1-4 has no curated card")
	}

	if _, err := c.Concept("missing"); err == nil {
		t.Error("expected error for unknown concept")
	}
	if c.HasConcept("missing") {
		t.Error("HasConcept(missing) = true")
	}
}

func TestNext(t *testing.T) {
	c := mustLoad(t)

	next, ok := c.Next("concept-1-4")
	if !ok || next.ID != "concept-2-1" {
		t.Errorf("Next(concept-1-4) = %q, %v; want concept-2-1 across modules", next.ID, ok)
	}
	if _, ok := c.Next("priority-scheduling"); ok {
		t.Error("last concept should have no next")
	}
	if _, ok := c.Next("missing"); ok {
		t.Error("unknown concept should have no next")
	}
}

func TestPrerequisitesMetAndState(t *testing.T) {
	c := mustLoad(t)

	tests := []struct {
		id       string
		mastered map[string]bool
		met      bool
		state    State
	}{
		{"why-scheduling", nil, true, StateAvailable},
		{"scheduling-criteria", nil, false, StateLocked},
		{"scheduling-criteria", map[string]bool{"why-scheduling": true}, true, StateAvailable},
		{"round-robin", map[string]bool{"fcfs": true, "round-robin": true}, true, StateMastered},
		{"priority-scheduling", map[string]bool{"fcfs": true}, false, StateLocked},
		{"missing", map[string]bool{}, false, StateLocked},
	}
	for _, tt := range tests {
		if got := c.PrerequisitesMet(tt.id, tt.mastered); got != tt.met {
			t.Errorf("PrerequisitesMet(%q, %v) = %v, want %v", tt.id, tt.mastered, got, tt.met)
		}
		if got := c.State(tt.id, tt.mastered); got != tt.state {
			t.Errorf("State(%q, %v) = %s, want %s", tt.id, tt.mastered, got.Label(), tt.state.Label())
		}
	}
}

func TestCheckpoints(t *testing.T) {
	c := mustLoad(t)

	cps := c.Checkpoints("cpu-scheduling")
	if len(cps) != 2 {
		t.Fatalf("got %d checkpoints, want 2", len(cps))
	}
	if cps[0].ID != "quiz-checkpoint-2" || !slices.Equal(cps[0].ConceptIDs, []string{"why-scheduling", "scheduling-criteria", "fcfs"}) {
		t.Errorf("first checkpoint = %+v", cps[0])
	}
	if cps[1].ID != "quiz-checkpoint-5" || cps[1].Title != "Review Checkpoint 2" {
		t.Errorf("second checkpoint = %+v", cps[1])
	}

	cp, err := c.Checkpoint("operating-systems", "quiz-checkpoint-5")
	if err != nil {
		t.Fatalf("Checkpoint: %v", err)
	}
	if !slices.Equal(cp.ConceptIDs, []string{"concept-1-4", "concept-2-1", "concept-2-2"}) {
		t.Errorf("concepts = %v", cp.ConceptIDs)
	}
	if _, err := c.Checkpoint("operating-systems", "quiz-checkpoint-9"); err == nil {
		t.Error("expected error for unknown checkpoint")
	}
}

func TestQuizItem_Question(t *testing.T) {
	item := QuizItem{Question: "Q?", Options: []string{"a", "b"}, Answer: 1, Explanation: "because"}
	q := item.CheckpointQuestion("c1")
	if q.ConceptID != "c1" || q.Prompt != "Q?" || q.CorrectIndex != 1 || q.Explanation != "because" || !q.Valid() {
		t.Errorf("Question() = %+v", q)
	}
	q.Options[0] = "changed"
	if item.Options[0] != "a" {
		t.Error("Question() must copy options")
	}
}

func TestParse_RejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("subjects: [\n"))
	if err == nil || !strings.Contains(err.Error(), "decode curriculum") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
