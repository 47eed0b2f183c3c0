package curriculum

import (
	"strings"
	"testing"
)

func subjectWith(concepts ...Concept) []Subject {
	return []Subject{{ID: "s", Title: "S", Modules: []Module{{ID: "m", Concepts: concepts}}}}
}

func concept(id string, prereqs ...string) Concept {
	return Concept{ID: id, Title: id, Difficulty: DifficultyEasy, Prerequisites: prereqs}
}

func TestValidateCatalog_Valid(t *testing.T) {
	if err := validateCatalog("1.0.0", subjectWith(concept("a"), concept("b", "a"))); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateCatalog_Detects(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		subjects []Subject
		want     string
	}{
		{"cycle", "1.0.0", subjectWith(concept("a", "b"), concept("b", "a")), "cycle"},
		{"dangling prerequisite", "1.0.0", subjectWith(concept("a"), concept("b", "nonexistent")), "nonexistent"},
		{"duplicate ID", "1.0.0", subjectWith(concept("a"), concept("a")), "duplicate concept"},
		{"bad version", "one", subjectWith(concept("a")), "invalid catalog version"},
		{"no subjects", "1.0.0", nil, "no subjects"},
		{"bad difficulty", "1.0.0", subjectWith(Concept{ID: "a", Title: "A", Difficulty: "Insane"}), "difficulty"},
		{
			"quiz answer out of range", "1.0.0",
			subjectWith(Concept{ID: "a", Title: "A", Difficulty: DifficultyHard, Quiz: []QuizItem{{Question: "q", Options: []string{"x", "y"}, Answer: 2}}}),
			"out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCatalog(tt.version, tt.subjects)
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should mention %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestValidateCatalog_CycleReportsOnlyCycleMembers(t *testing.T) {
	err := validateCatalog("1.0.0", subjectWith(concept("root"), concept("a", "root", "b"), concept("b", "a")))
	if err == nil {
		t.Fatal("expected cycle error")
	}
	if !strings.Contains(err.Error(), "a, b") || strings.Contains(err.Error(), "root,") {
		t.Errorf("unexpected cycle report: %v", err)
	}
}

func TestParse_ValidatesAfterDecode(t *testing.T) {
	yml := `
version: 2.1.0
subjects:
  - id: s
    title: S
    modules:
      - id: m
        title: M
        concepts:
          - id: a
            title: A
            difficulty: Easy
          - id: b
            title: B
            difficulty: Medium
            prerequisites: [a]
`
	c, err := Parse([]byte(yml))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Version() != "2.1.0" || len(c.ConceptIDs("s")) != 2 {
		t.Errorf("parsed catalog = %s %v", c.Version(), c.ConceptIDs("s"))
	}
	if len(c.Checkpoints("s")) != 0 {
		t.Error("two concepts are not enough for a checkpoint")
	}

	if _, err := Parse([]byte(strings.Replace(yml, "[a]", "[zzz]", 1))); err == nil {
		t.Error("expected validation error for dangling prerequisite")
	}
}
