package card

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masteryloop/internal/cards"
	"github.com/abhisek/masteryloop/internal/curriculum"
)

func loadConcept(t *testing.T, id string) curriculum.Concept {
	t.Helper()
	cat, err := curriculum.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	c, err := cat.Concept(id)
	if err != nil {
		t.Fatalf("concept %s: %v", id, err)
	}
	return c
}

func TestCardScreen_CuratedCard(t *testing.T) {
	svc := cards.NewService(nil, cards.DefaultConfig(), nil)
	s := New(svc, loadConcept(t, "concept-1-1"), curriculum.StateAvailable)

	if !strings.Contains(s.View(100, 40), "Preparing the card") {
		t.Error("expected loading view before generation")
	}

	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected a generation command")
	}
	s.Update(cmd())

	view := s.View(120, 200)
	for _, want := range []string{"DEFINITION", "separation of privilege levels", "curated", "Available"} {
		if !strings.Contains(view, want) {
			t.Errorf("card view missing %q", want)
		}
	}
}

func TestCardScreen_UsesCache(t *testing.T) {
	svc := cards.NewService(nil, cards.DefaultConfig(), nil)
	concept := loadConcept(t, "concept-2-1")
	first := New(svc, concept, curriculum.StateLocked)
	first.Update(first.Init()())

	second := New(svc, concept, curriculum.StateLocked)
	if second.Init() != nil {
		t.Error("cached card should not be generated again")
	}
	view := second.View(120, 200)
	if !strings.Contains(view, "offline") {
		t.Error("concept without curated content should fall back to the offline card")
	}
	if !strings.Contains(view, "Prerequisites not yet mastered") {
		t.Error("locked concept should say so")
	}
}

func TestCardScreen_Scroll(t *testing.T) {
	svc := cards.NewService(nil, cards.DefaultConfig(), nil)
	s := New(svc, loadConcept(t, "concept-1-1"), curriculum.StateAvailable)
	s.Update(s.Init()())

	top := s.View(100, 5)
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.View(100, 5) == top {
		t.Error("scrolling down should change the visible lines")
	}
	s.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	if s.View(100, 5) != top {
		t.Error("g should return to the top")
	}
	if got := len(strings.Split(top, "\n")); got != 5 {
		t.Errorf("visible lines = %d, want 5", got)
	}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func assertView(t *testing.T, s *CardScreen, wants ...string) {
	t.Helper()
	view := s.View(120, 200)
	for _, want := range wants {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestCardScreen_MicroQuiz(t *testing.T) {
	svc := cards.NewService(nil, cards.DefaultConfig(), nil)
	s := New(svc, loadConcept(t, "concept-1-2"), curriculum.StateAvailable)
	s.Update(s.Init()())

	assertView(t, s, "Press p to practice 3 question(s).")
	if s.HandlesEscape() {
		t.Error("Esc should leave the card while reading")
	}

	s.Update(keyPress('p'))
	if s.mode != modeQuiz {
		t.Fatalf("mode = %v, want quiz", s.mode)
	}
	if !s.HandlesEscape() {
		t.Error("Esc should return to the card during the quiz")
	}
	assertView(t, s, "MICRO-QUIZ", "Question 1 of 3", "What is the main goal of CPU scheduling?")

	// Correct, wrong, correct.
	s.Update(keyPress('2'))
	assertView(t, s, "Correct!")
	s.Update(keyPress(' '))
	assertView(t, s, "Question 2 of 3")

	s.Update(keyPress('1'))
	assertView(t, s, "Not quite", "Correct answer: Dispatcher")
	s.Update(keyPress(' '))

	s.Update(keyPress('1'))
	s.Update(keyPress(' '))
	if s.mode != modeResult {
		t.Fatalf("mode = %v, want result", s.mode)
	}
	assertView(t, s, "Score 2/3", "Keep practicing")
	if strings.Contains(s.View(120, 200), "Concept Mastered!") {
		t.Error("a missed question should not read as mastered")
	}

	// A clean second run.
	s.Update(keyPress('r'))
	assertView(t, s, "Question 1 of 3")
	for _, answer := range []rune{'2', '2', '1'} {
		s.Update(keyPress(answer))
		s.Update(keyPress(' '))
	}
	assertView(t, s, "Concept Mastered!", "Score 3/3")

	s.Update(keyPress(' '))
	if s.mode != modeReading {
		t.Fatalf("mode = %v, want reading", s.mode)
	}
	assertView(t, s, "DEFINITION", "Last score 3/3.")
}

func TestCardScreen_MicroQuizEscReturnsToCard(t *testing.T) {
	svc := cards.NewService(nil, cards.DefaultConfig(), nil)
	s := New(svc, loadConcept(t, "concept-1-1"), curriculum.StateAvailable)
	s.Update(s.Init()())

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.mode != modeQuiz {
		t.Fatalf("mode = %v, want quiz", s.mode)
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.mode != modeReading {
		t.Fatalf("mode = %v, want reading", s.mode)
	}
	assertView(t, s, "DEFINITION")
	if strings.Contains(s.View(120, 200), "Last score") {
		t.Error("an unfinished quiz should not report a score")
	}
}

func TestCardScreen_KeyHints(t *testing.T) {
	svc := cards.NewService(nil, cards.DefaultConfig(), nil)
	s := New(svc, loadConcept(t, "concept-1-1"), curriculum.StateAvailable)
	s.Update(s.Init()())

	hasKey := func(key string) bool {
		for _, h := range s.KeyHints() {
			if h.Key == key {
				return true
			}
		}
		return false
	}
	if !hasKey("P") {
		t.Error("reading hints should offer practice")
	}
	s.Update(keyPress('p'))
	if !hasKey("1-4") {
		t.Error("quiz hints should offer answering")
	}
}
