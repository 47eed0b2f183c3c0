package card

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/ui/components"
	"github.com/abhisek/masteryloop/internal/ui/layout"
	"github.com/abhisek/masteryloop/internal/ui/theme"
)

type mode int

const (
	modeReading mode = iota
	modeQuiz
	modeFeedback
	modeResult
)

// quiz is a run through a card's practice questions. It never touches
// mastery; only checkpoints do that.
type quiz struct {
	questions []checkpoint.Question
	step      int
	score     int
	choice    components.MultiChoice
	correct   bool
}

func newQuiz(questions []checkpoint.Question) *quiz {
	q := &quiz{questions: questions}
	q.load()
	return q
}

func (q *quiz) load() {
	cur := q.questions[q.step]
	q.choice = components.NewMultiChoice(cur.Prompt, cur.Options, cur.CorrectIndex)
}

func (q *quiz) current() checkpoint.Question {
	return q.questions[q.step]
}

func (q *quiz) done() bool {
	return q.step >= len(q.questions)-1
}

func (q *quiz) mastered() bool {
	return q.score == len(q.questions)
}

// startQuiz begins a fresh practice run.
func (s *CardScreen) startQuiz() {
	s.quiz = newQuiz(s.card.Quiz)
	s.mode = modeQuiz
}

func (s *CardScreen) handleQuizKey(msg tea.KeyPressMsg) {
	key := msg.String()

	switch s.mode {
	case modeFeedback:
		if key == "esc" {
			s.mode = modeReading
			return
		}
		if s.quiz.done() {
			s.lastScore = fmt.Sprintf("%d/%d", s.quiz.score, len(s.quiz.questions))
			s.mode = modeResult
			return
		}
		s.quiz.step++
		s.quiz.load()
		s.mode = modeQuiz
		return

	case modeResult:
		switch key {
		case "r":
			s.startQuiz()
		default:
			s.mode = modeReading
		}
		return
	}

	if key == "esc" {
		s.mode = modeReading
		return
	}
	s.quiz.choice, _ = s.quiz.choice.Update(msg)
	if s.quiz.choice.Submitted {
		s.quiz.correct = s.quiz.choice.IsCorrect()
		if s.quiz.correct {
			s.quiz.score++
		}
		s.mode = modeFeedback
	}
}

func (s *CardScreen) quizHints() []layout.KeyHint {
	switch s.mode {
	case modeFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
			{Key: "Esc", Description: "Back to card"},
		}
	case modeResult:
		return []layout.KeyHint{
			{Key: "R", Description: "Practice again"},
			{Key: "any key", Description: "Back to card"},
		}
	default:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Back to card"},
		}
	}
}

func (s *CardScreen) renderQuiz(width int) string {
	q := s.quiz
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + s.card.Title))
	b.WriteString("  ")
	b.WriteString(theme.SectionLabel.Render("MICRO-QUIZ"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	switch s.mode {
	case modeResult:
		b.WriteString("\n")
		if q.mastered() {
			b.WriteString(layout.Centered(theme.Correct, width, "Concept Mastered!"))
		} else {
			b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Warning).Bold(true), width, "Keep practicing"))
		}
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Body, width, fmt.Sprintf("Score %d/%d", q.score, len(q.questions))))
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Dim, width, "Checkpoints decide mastery. Press r to practice again."))
		return b.String()

	case modeFeedback:
		cur := q.current()
		if q.correct {
			b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
		} else {
			b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite"))
			if cur.CorrectIndex >= 0 && cur.CorrectIndex < len(cur.Options) {
				b.WriteString("\n")
				b.WriteString(layout.Centered(theme.Dim, width, "Correct answer: "+cur.Options[cur.CorrectIndex]))
			}
		}
		b.WriteString("\n\n")
		if cur.Explanation != "" {
			exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(cur.Explanation)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
			b.WriteString("\n\n")
		}
		b.WriteString(layout.Centered(theme.Dim, width, "Press any key to continue..."))
		return b.String()
	}

	bar := components.NewProgressBar(fmt.Sprintf("Question %d of %d", q.step+1, len(q.questions)), q.step, len(q.questions), min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")
	block := lipgloss.NewStyle().Width(min(width-8, 72)).Render(q.choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	return b.String()
}
