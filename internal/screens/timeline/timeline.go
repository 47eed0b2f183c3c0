// Package timeline shows a subject as a learning timeline: modules,
// concepts with their lock state and the review checkpoints between them.
package timeline

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masteryloop/internal/cards"
	engine "github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/screens/card"
	"github.com/abhisek/masteryloop/internal/screens/checkpoint"
	"github.com/abhisek/masteryloop/internal/ui/components"
	"github.com/abhisek/masteryloop/internal/ui/layout"
	"github.com/abhisek/masteryloop/internal/ui/theme"
)

type rowKind int

const (
	rowModuleHeader rowKind = iota
	rowConcept
	rowCheckpoint
)

type row struct {
	kind       rowKind
	module     curriculum.Module
	concept    *curriculum.Concept
	checkpoint *engine.Checkpoint
}

func (r row) selectable() bool {
	return r.kind != rowModuleHeader
}

// TimelineScreen displays one subject's timeline.
type TimelineScreen struct {
	catalog *curriculum.Catalog
	subject curriculum.Subject
	reviews *review.Service
	cards   *cards.Service

	rows         []row
	titles       map[string]string
	cursor       int
	scrollOffset int
}

var _ screen.Screen = (*TimelineScreen)(nil)
var _ screen.KeyHintProvider = (*TimelineScreen)(nil)

// New builds the timeline for subject.
func New(catalog *curriculum.Catalog, subject curriculum.Subject, reviews *review.Service, cardSvc *cards.Service) *TimelineScreen {
	after := make(map[string][]engine.Checkpoint)
	for _, cp := range catalog.Checkpoints(subject.ID) {
		last := cp.ConceptIDs[len(cp.ConceptIDs)-1]
		after[last] = append(after[last], cp)
	}

	s := &TimelineScreen{
		catalog: catalog,
		subject: subject,
		reviews: reviews,
		cards:   cardSvc,
		titles:  make(map[string]string),
	}
	for _, m := range subject.Modules {
		s.rows = append(s.rows, row{kind: rowModuleHeader, module: m})
		for i := range m.Concepts {
			c := &m.Concepts[i]
			s.titles[c.ID] = c.Title
			s.rows = append(s.rows, row{kind: rowConcept, module: m, concept: c})
			for j := range after[c.ID] {
				s.rows = append(s.rows, row{kind: rowCheckpoint, module: m, checkpoint: &after[c.ID][j]})
			}
		}
	}

	for i, r := range s.rows {
		if r.selectable() {
			s.cursor = i
			break
		}
	}
	return s
}

func (s *TimelineScreen) Init() tea.Cmd {
	return nil
}

func (s *TimelineScreen) Title() string {
	return s.subject.Title
}

func (s *TimelineScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Module"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TimelineScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "up", "k":
			s.moveCursor(-1)
		case "down", "j":
			s.moveCursor(1)
		case "tab":
			s.nextModule()
		case "enter":
			return s, s.open()
		case "q":
			return s, router.Pop()
		}
	}
	return s, nil
}

func (s *TimelineScreen) View(width, height int) string {
	if len(s.rows) == 0 {
		return layout.Centered(theme.Dim, width, "\n\n  This subject has no concepts yet.")
	}

	mastered := s.reviews.Mastered()
	header := s.renderProgress(mastered, width)
	body := height - lipgloss.Height(header)

	s.adjustScroll(body)

	lines := []string{header}
	visible := 0
	for i := s.scrollOffset; i < len(s.rows) && (body <= 0 || visible < body); i++ {
		r := s.rows[i]
		selected := i == s.cursor
		switch r.kind {
		case rowModuleHeader:
			lines = append(lines, renderModuleHeader(r.module, width))
		case rowConcept:
			lines = append(lines, s.renderConceptRow(r, mastered, selected, width))
		case rowCheckpoint:
			lines = append(lines, s.renderCheckpointRow(r, selected, width))
		}
		visible++
	}
	return strings.Join(lines, "\n")
}

// Selected returns the concept or checkpoint under the cursor.
func (s *TimelineScreen) Selected() (concept *curriculum.Concept, cp *engine.Checkpoint) {
	r := s.rows[s.cursor]
	return r.concept, r.checkpoint
}

func (s *TimelineScreen) moveCursor(delta int) {
	for next := s.cursor + delta; next >= 0 && next < len(s.rows); next += delta {
		if s.rows[next].selectable() {
			s.cursor = next
			return
		}
	}
}

// nextModule jumps to the first row of the next module, wrapping around.
func (s *TimelineScreen) nextModule() {
	current := s.rows[s.cursor].module.ID
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].selectable() && s.rows[i].module.ID != current {
			s.cursor = i
			return
		}
	}
	for i, r := range s.rows {
		if r.selectable() {
			s.cursor = i
			return
		}
	}
}

func (s *TimelineScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	top := s.cursor
	for top > 0 && s.rows[top-1].kind == rowModuleHeader {
		top--
	}
	if top < s.scrollOffset {
		s.scrollOffset = top
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// open pushes the card or checkpoint screen for the selected row.
func (s *TimelineScreen) open() tea.Cmd {
	r := s.rows[s.cursor]
	switch r.kind {
	case rowConcept:
		state := s.catalog.State(r.concept.ID, s.reviews.Mastered())
		return router.Push(card.New(s.cards, *r.concept, state))
	case rowCheckpoint:
		return router.Push(checkpoint.New(s.reviews, s.checkpointOptions(*r.checkpoint)))
	}
	return nil
}

func (s *TimelineScreen) checkpointOptions(cp engine.Checkpoint) checkpoint.Options {
	opts := checkpoint.Options{
		SubjectID:  s.subject.ID,
		Checkpoint: cp,
		Titles:     make(map[string]string, len(cp.ConceptIDs)),
	}
	for _, id := range cp.ConceptIDs {
		opts.Titles[id] = s.titles[id]
	}
	if next, ok := s.catalog.Next(cp.ConceptIDs[len(cp.ConceptIDs)-1]); ok {
		opts.Next = next.Title
	}
	return opts
}

func (s *TimelineScreen) renderProgress(mastered map[string]bool, width int) string {
	ids := s.catalog.ConceptIDs(s.subject.ID)
	done := 0
	for _, id := range ids {
		if mastered[id] {
			done++
		}
	}
	bar := components.NewProgressBar("Mastered", done, len(ids), min(width-8, 50))
	return "  " + bar.View()
}

func renderModuleHeader(m curriculum.Module, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(m.Title))
}

func (s *TimelineScreen) renderConceptRow(r row, mastered map[string]bool, selected bool, width int) string {
	c := r.concept
	state := s.catalog.State(c.ID, mastered)

	nameWidth := max(width-4-3-8-10-4, 10)
	name := c.Title
	if len([]rune(name)) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}

	var nameStyle, labelStyle lipgloss.Style
	switch {
	case selected:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	case state == curriculum.StateMastered:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Success)
		labelStyle = nameStyle
	case state == curriculum.StateAvailable:
		nameStyle = lipgloss.NewStyle().Foreground(theme.Text)
		labelStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	default:
		nameStyle = theme.Dim
		labelStyle = theme.Dim
	}

	cursor := "  "
	if selected {
		cursor = "▸ "
	}
	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		state.Icon(),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		theme.Dim.Render(fmt.Sprintf("%-6s", c.Difficulty)),
		labelStyle.Render(fmt.Sprintf("%9s", state.Label())),
	)
}

func (s *TimelineScreen) renderCheckpointRow(r row, selected bool, width int) string {
	cp := r.checkpoint
	status := "Not passed"
	statusStyle := theme.Dim
	if res, ok := s.reviews.CheckpointResult(s.subject.ID, cp.ID); ok {
		status = fmt.Sprintf("Passed · %d round(s)", res.Rounds)
		statusStyle = lipgloss.NewStyle().Foreground(theme.Success)
	}

	cursor := "  "
	label := theme.CheckpointBadge.Render(fmt.Sprintf("%s · %d concepts", cp.Title, len(cp.ConceptIDs)))
	if selected {
		cursor = "▸ "
		label = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).
			Render(fmt.Sprintf("%s · %d concepts", cp.Title, len(cp.ConceptIDs)))
	}
	line := fmt.Sprintf("  %s📝 %s  %s", cursor, label, statusStyle.Render(status))
	if lipgloss.Width(line) > width && width > 0 {
		return fmt.Sprintf("  %s📝 %s", cursor, label)
	}
	return line
}
