package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/ui/layout"
	"github.com/abhisek/masteryloop/internal/ui/theme"
)

// Round summarizes one round of a passed checkpoint.
type Round struct {
	Number   int
	Adaptive bool
	Asked    int
	Missed   []string // concept titles
}

// Result is the outcome of a passed checkpoint.
type Result struct {
	CheckpointTitle string
	Duration        time.Duration
	Rounds          []Round
	Mastered        []string // concept titles
	Next            string   // title of the next concept, if any
}

// Answers returns the total number of answers given.
func (r Result) Answers() int {
	n := 0
	for _, rd := range r.Rounds {
		n += rd.Asked
	}
	return n
}

// Correct returns the number of correct answers.
func (r Result) Correct() int {
	n := 0
	for _, rd := range r.Rounds {
		n += rd.Asked - len(rd.Missed)
	}
	return n
}

// SummaryScreen displays the result of a passed checkpoint.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Checkpoint Passed"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back to timeline"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok && kmsg.String() == "enter" {
		return s, router.Pop()
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	center := func(style lipgloss.Style, text string) string {
		return layout.Centered(style, width, text)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(center(theme.Correct, "Checkpoint passed!"))
	b.WriteString("\n")
	b.WriteString(center(theme.Subtitle, r.CheckpointTitle))
	b.WriteString("\n\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	stats := fmt.Sprintf("Rounds: %d        Answers: %d        Correct: %d        Time: %d:%02d",
		len(r.Rounds), r.Answers(), r.Correct(), mins, secs)
	b.WriteString(center(theme.Body, stats))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 60)))
	b.WriteString(center(theme.Dim, "Rounds"))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n")
	for _, rd := range r.Rounds {
		kind := "Review"
		if rd.Adaptive {
			kind = "Adaptive review"
		}
		line := fmt.Sprintf("Round %d  %s  %d/%d correct", rd.Number, kind, rd.Asked-len(rd.Missed), rd.Asked)
		var style lipgloss.Style
		if len(rd.Missed) > 0 {
			line += "  missed: " + strings.Join(rd.Missed, ", ")
			style = lipgloss.NewStyle().Foreground(theme.Warning)
		} else {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		b.WriteString(center(style, line))
		b.WriteString("\n")
	}

	if len(r.Mastered) > 0 {
		b.WriteString("\n")
		b.WriteString(center(theme.Dim, "Mastered"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n")
		for _, title := range r.Mastered {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Success), "✓ "+title))
			b.WriteString("\n")
		}
	}

	if r.Next != "" {
		b.WriteString("\n")
		b.WriteString(center(theme.Hint, "Up next: "+r.Next))
	}

	return b.String()
}
