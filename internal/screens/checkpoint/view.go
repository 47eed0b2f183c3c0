package checkpoint

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masteryloop/internal/ui/components"
	"github.com/abhisek/masteryloop/internal/ui/layout"
	"github.com/abhisek/masteryloop/internal/ui/theme"
)

// renderQuestion renders the active question with round and progress info.
func (s *CheckpointScreen) renderQuestion(width int) string {
	q, ok := s.attempt.Current()
	if !ok {
		return ""
	}
	v := s.attempt.View()
	done, total := s.attempt.Progress()

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + s.opts.Checkpoint.Title)

	var infoRight string
	if v.IsAdaptiveRound {
		infoRight = theme.AdaptiveBadge.Render(fmt.Sprintf("ADAPTIVE REVIEW · ROUND %d", v.Round))
	} else {
		infoRight = theme.CheckpointBadge.Render("ROUND 1")
	}

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	} else {
		infoLine += "  " + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	counter := fmt.Sprintf("Question %d of %d", done+1, total)
	bar := components.NewProgressBar(counter, done, total, min(width-8, 60))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Dim, width, "Concept: "+s.title(q.ConceptID)))
	b.WriteString("\n\n")

	block := lipgloss.NewStyle().Width(min(width-8, 72)).Render(s.choice.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, block))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Hint, width, fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(q.Options))))

	return b.String()
}

// renderFeedback renders the result of the last answer.
func (s *CheckpointScreen) renderFeedback(width int) string {
	out := s.outcome
	q := out.Question

	var b strings.Builder
	b.WriteString("\n\n")

	if out.Correct {
		b.WriteString(layout.Centered(theme.Correct, width, "Correct!"))
	} else {
		b.WriteString(layout.Centered(theme.Incorrect, width, "Not quite"))
		if q.CorrectIndex >= 0 && q.CorrectIndex < len(q.Options) {
			b.WriteString("\n")
			b.WriteString(layout.Centered(theme.Dim, width, "Correct answer: "+q.Options[q.CorrectIndex]))
		}
	}
	b.WriteString("\n\n")

	if q.Explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(q.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	switch {
	case out.Retry:
		missed := make([]string, len(out.MissedConceptIDs))
		for i, id := range out.MissedConceptIDs {
			missed[i] = s.title(id)
		}
		warn := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true)
		b.WriteString(layout.Centered(warn, width,
			fmt.Sprintf("Round %d finished with %d missed.", out.Round, len(missed))))
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Body, width,
			"Adaptive review: "+strings.Join(missed, ", ")))
		b.WriteString("\n\n")
	case out.Completed:
		b.WriteString(layout.Centered(theme.Correct, width, "Perfect round! Checkpoint passed."))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Centered(theme.Dim, width, "Press any key to continue..."))
	return b.String()
}

// renderQuitConfirm renders the leave confirmation dialog.
func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true), width, "Leave this checkpoint?"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(theme.Dim, width, "Concepts are only mastered after a perfect round."))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary), width, "[N] No, keep going"))
	return b.String()
}

// renderLoading renders the question generation state.
func renderLoading(width, n int) string {
	return layout.Centered(theme.Dim, width,
		fmt.Sprintf("\n\n\n  Preparing %d review questions...", n))
}

// renderError renders an error message.
func renderError(width int, errMsg string) string {
	return layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width,
		fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
