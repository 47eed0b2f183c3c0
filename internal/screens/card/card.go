// Package card shows the learning card for a single concept.
package card

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masteryloop/internal/cards"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/ui/layout"
	"github.com/abhisek/masteryloop/internal/ui/theme"
)

// cardReadyMsg carries a generated card back to the screen.
type cardReadyMsg struct {
	Card *cards.Card
}

// CardScreen renders a concept's learning card and runs its micro-quiz.
// Generation runs in a command so slow providers never block the UI.
type CardScreen struct {
	cards   *cards.Service
	concept curriculum.Concept
	state   curriculum.State

	card   *cards.Card
	scroll int

	mode      mode
	quiz      *quiz
	lastScore string
}

var _ screen.Screen = (*CardScreen)(nil)
var _ screen.KeyHintProvider = (*CardScreen)(nil)
var _ screen.EscapeHandler = (*CardScreen)(nil)

// New creates a CardScreen for concept, shown with the learner's state.
func New(svc *cards.Service, concept curriculum.Concept, state curriculum.State) *CardScreen {
	s := &CardScreen{cards: svc, concept: concept, state: state}
	if c, ok := svc.Cached(concept.ID); ok {
		s.card = c
	}
	return s
}

func (s *CardScreen) Init() tea.Cmd {
	if s.card != nil {
		return nil
	}
	svc, concept := s.cards, s.concept
	return func() tea.Msg {
		return cardReadyMsg{Card: svc.Generate(context.Background(), concept)}
	}
}

func (s *CardScreen) Title() string {
	return s.concept.Title
}

// HandlesEscape reports true during the quiz, where Esc returns to the card.
func (s *CardScreen) HandlesEscape() bool {
	return s.mode != modeReading
}

func (s *CardScreen) KeyHints() []layout.KeyHint {
	if s.mode != modeReading {
		return s.quizHints()
	}
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.card != nil && len(s.card.Quiz) > 0 {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Practice"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *CardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardReadyMsg:
		s.card = msg.Card
		s.scroll = 0
		s.mode = modeReading
	case tea.KeyPressMsg:
		if s.mode != modeReading {
			s.handleQuizKey(msg)
			return s, nil
		}
		switch msg.String() {
		case "up", "k":
			if s.scroll > 0 {
				s.scroll--
			}
		case "down", "j":
			s.scroll++
		case "home", "g":
			s.scroll = 0
		case "p", "enter":
			if s.card != nil && len(s.card.Quiz) > 0 {
				s.startQuiz()
			}
		}
	}
	return s, nil
}

func (s *CardScreen) View(width, height int) string {
	if s.card == nil {
		return layout.Centered(theme.Dim, width,
			fmt.Sprintf("\n\n\n  Preparing the card for %s...", s.concept.Title))
	}

	if s.mode != modeReading {
		return s.renderQuiz(width)
	}

	lines := strings.Split(s.render(width), "\n")
	if height <= 0 || len(lines) <= height {
		s.scroll = 0
		return strings.Join(lines, "\n")
	}
	if maxScroll := len(lines) - height; s.scroll > maxScroll {
		s.scroll = maxScroll
	}
	return strings.Join(lines[s.scroll:s.scroll+height], "\n")
}

func (s *CardScreen) render(width int) string {
	c := s.card
	contentWidth := min(width-8, 76)
	para := lipgloss.NewStyle().Width(contentWidth).Foreground(theme.Text).PaddingLeft(2)

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", s.state.Icon(), c.Title)))
	b.WriteString("  ")
	b.WriteString(theme.OriginBadge.Render(originLabel(c)))
	b.WriteString("\n")

	meta := s.state.Label()
	if c.Difficulty != "" {
		meta += " · " + string(c.Difficulty)
	}
	if s.concept.EstimatedMins > 0 {
		meta += fmt.Sprintf(" · %d min", s.concept.EstimatedMins)
	}
	b.WriteString(theme.Dim.Render("  " + meta))
	b.WriteString("\n")
	if s.state == curriculum.StateLocked {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("  Prerequisites not yet mastered"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(section("Definition"))
	b.WriteString(para.Render(c.Definition))
	b.WriteString("\n\n")

	if c.VisualPrompt != "" {
		b.WriteString(section("Picture it"))
		b.WriteString(para.Foreground(theme.Secondary).Italic(true).Render(c.VisualPrompt))
		b.WriteString("\n\n")
	}

	if len(c.Examples) > 0 {
		b.WriteString(section("Examples"))
		for _, ex := range c.Examples {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("  • " + ex.Title))
			b.WriteString("\n")
			b.WriteString(para.PaddingLeft(4).Render(ex.Explanation))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(c.SubConcepts) > 0 {
		b.WriteString(section("Key terms"))
		for _, sc := range c.SubConcepts {
			term := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(sc.Title)
			b.WriteString(para.Render(term + " · " + sc.Definition))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if n := len(c.Quiz); n > 0 {
		hint := fmt.Sprintf("  Press p to practice %d question(s).", n)
		if s.lastScore != "" {
			hint += " Last score " + s.lastScore + "."
		}
		b.WriteString(theme.Hint.Render(hint))
		b.WriteString("\n")
	}

	return b.String()
}

func section(title string) string {
	return theme.SectionLabel.Render("  "+strings.ToUpper(title)) + "\n"
}

func originLabel(c *cards.Card) string {
	switch c.Origin {
	case cards.OriginCurated:
		return "curated"
	case cards.OriginAI:
		if c.Provider != "" {
			return "AI · " + c.Provider
		}
		return "AI"
	default:
		return "offline"
	}
}
