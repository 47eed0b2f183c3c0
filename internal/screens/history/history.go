package history

import (
	"context"
	"fmt"
	"image/color"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/store"
	"github.com/abhisek/masteryloop/internal/ui/layout"
	"github.com/abhisek/masteryloop/internal/ui/theme"
)

// historyLimit caps how many attempts are listed.
const historyLimit = 50

// weakLimit caps the "needs work" list.
const weakLimit = 3

type historyLoadedMsg struct {
	Attempts []store.CheckpointAttempt
	Accuracy []store.ConceptAccuracy
	Err      error
}

// HistoryScreen lists past checkpoint attempts and the concepts missed most.
type HistoryScreen struct {
	eventRepo store.EventRepo
	catalog   *curriculum.Catalog
	attempts  []store.CheckpointAttempt
	weak      []store.ConceptAccuracy
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen. catalog resolves display titles and may
// be nil.
func New(eventRepo store.EventRepo, catalog *curriculum.Catalog) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		catalog:   catalog,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		ctx := context.Background()

		attempts, err := repo.CheckpointHistory(ctx, historyLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}

		// Accuracy is secondary; show the attempts even if it fails.
		accuracy, err := repo.ConceptAccuracy(ctx)
		if err != nil {
			return historyLoadedMsg{Attempts: attempts}
		}
		return historyLoadedMsg{Attempts: attempts, Accuracy: accuracy}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
			s.weak = weakest(msg.Accuracy, weakLimit)
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return layout.Centered(theme.Dim, width, "\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return layout.Centered(theme.Dim.Italic(true), width,
			"\n\n  No checkpoints attempted yet. Pick a subject to start!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-28s  %s",
			prefix, a.StartedAt.Format("Jan 02, 2006"), s.checkpointTitle(a), statusText(a))

		style := lipgloss.NewStyle().Foreground(statusColor(a.Status))
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, d := range s.details(a) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					theme.Dim.Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}

	if len(s.weak) > 0 {
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.SectionLabel, width, "NEEDS WORK"))
		b.WriteString("\n")
		for _, c := range s.weak {
			line := fmt.Sprintf("%-32s %d/%d correct", s.conceptTitle(c.ConceptID), c.Correct, c.Answers)
			b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Warning), width, line))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (s *HistoryScreen) details(a store.CheckpointAttempt) []string {
	lines := []string{
		fmt.Sprintf("Subject: %s", s.subjectTitle(a.SubjectID)),
		fmt.Sprintf("Rounds: %d   Answers: %d   Correct: %d", a.Rounds, a.Answers, a.Correct),
	}
	if !a.EndedAt.IsZero() {
		secs := int(a.EndedAt.Sub(a.StartedAt).Seconds())
		lines = append(lines, fmt.Sprintf("Time: %d:%02d", secs/60, secs%60))
	}
	return lines
}

func (s *HistoryScreen) checkpointTitle(a store.CheckpointAttempt) string {
	if s.catalog != nil {
		if cp, err := s.catalog.Checkpoint(a.SubjectID, a.CheckpointID); err == nil {
			return cp.Title
		}
	}
	return a.CheckpointID
}

func (s *HistoryScreen) subjectTitle(id string) string {
	if s.catalog != nil {
		if subj, err := s.catalog.Subject(id); err == nil {
			return subj.Title
		}
	}
	return id
}

func (s *HistoryScreen) conceptTitle(id string) string {
	if s.catalog != nil {
		if c, err := s.catalog.Concept(id); err == nil {
			return c.Title
		}
	}
	return id
}

func statusText(a store.CheckpointAttempt) string {
	switch a.Status {
	case store.AttemptCompleted:
		if a.Rounds == 1 {
			return "passed first try"
		}
		return fmt.Sprintf("passed in %d rounds", a.Rounds)
	case store.AttemptAbandoned:
		return "left early"
	default:
		return "in progress"
	}
}

func statusColor(status string) color.Color {
	switch status {
	case store.AttemptCompleted:
		return theme.Success
	case store.AttemptAbandoned:
		return theme.TextDim
	default:
		return theme.Text
	}
}

// weakest returns up to n concepts with at least one miss, lowest
// accuracy first.
func weakest(acc []store.ConceptAccuracy, n int) []store.ConceptAccuracy {
	var out []store.ConceptAccuracy
	for _, c := range acc {
		if c.Correct < c.Answers {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b store.ConceptAccuracy) int {
		switch ra, rb := a.Rate(), b.Rate(); {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return strings.Compare(a.ConceptID, b.ConceptID)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
