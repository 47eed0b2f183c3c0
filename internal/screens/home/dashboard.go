package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/masteryloop/internal/ui/theme"
)

const titleFull = `╔╦╗╔═╗╔═╗╔╦╗╔═╗╦═╗╦ ╦  ╦  ╔═╗╔═╗╔═╗
║║║╠═╣╚═╗ ║ ║╣ ╠╦╝╚╦╝  ║  ║ ║║ ║╠═╝
╩ ╩╩ ╩╚═╝ ╩ ╚═╝╩╚═ ╩   ╩═╝╚═╝╚═╝╩  `

const titleCompact = "M A S T E R Y L O O P"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	title := titleFull
	if compact || cw < 40 {
		title = titleCompact
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(title))
}

// renderStatsBar renders mastery totals in a bordered box.
func renderStatsBar(mastered, total, checkpoints, cw int, compact bool) string {
	masteredStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	cpStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s  %s",
			masteredStyle.Render(fmt.Sprintf("✓%d/%d", mastered, total)),
			cpStyle.Render(fmt.Sprintf("◆%d", checkpoints)))
	} else {
		stats = fmt.Sprintf("%s   %s",
			masteredStyle.Render(fmt.Sprintf("✓ %d/%d CONCEPTS MASTERED", mastered, total)),
			cpStyle.Render(fmt.Sprintf("◆ %d CHECKPOINTS", checkpoints)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Render(stats)
}

func renderMenuPanel(menu string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(menu)
}

func renderGreeting(name string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Italic(true).
		Render("Welcome back, " + name + ". One checkpoint at a time.")
}

// renderPanel centers the dashboard in the content area.
func renderPanel(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
