package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masteryloop/internal/ui/theme"
)

// MenuItem is one row of a Menu.
type MenuItem struct {
	Label  string
	Detail string
	Action func() tea.Cmd

	Disabled bool

	// Divider draws a rule above the item, separating e.g. subjects from
	// account actions.
	Divider bool
}

// Menu is a vertical menu. Up and down wrap around and skip disabled
// items; the digits 1-9 open the matching item directly.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// Select moves the cursor to item i if it exists and is enabled.
func (m *Menu) Select(i int) bool {
	if i < 0 || i >= len(m.Items) || m.Items[i].Disabled {
		return false
	}
	m.Selected = i
	return true
}

// move steps the cursor by dir to the next enabled item, wrapping.
func (m *Menu) move(dir int) {
	n := len(m.Items)
	for step := 1; step <= n; step++ {
		i := ((m.Selected+dir*step)%n + n) % n
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) activate() tea.Cmd {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	item := m.Items[m.Selected]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

// Update handles navigation keys.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		return m, m.activate()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if m.Select(int(key[0] - '1')) {
				return m, m.activate()
			}
		}
	}
	return m, nil
}

// View renders the menu, numbering the first nine items.
func (m Menu) View() string {
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render("    " + strings.Repeat("─", 18))
	detail := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	for i, item := range m.Items {
		if item.Divider && i > 0 {
			b.WriteString(rule)
			b.WriteString("\n")
		}
		num := "  "
		if i < 9 {
			num = fmt.Sprintf("%d ", i+1)
		}

		var line string
		switch {
		case item.Disabled:
			line = theme.Dim.Render("    " + num + item.Label)
		case i == m.Selected:
			line = theme.Selected.Render("  ▸ " + num + item.Label)
		default:
			line = theme.Unselected.Render("    " + num + item.Label)
		}
		if item.Detail != "" {
			line += "  " + detail.Render(item.Detail)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
