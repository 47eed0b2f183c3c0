// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/screens/home"
	"github.com/abhisek/masteryloop/internal/screens/welcome"
	"github.com/abhisek/masteryloop/internal/ui/layout"
)

// Options configure the TUI.
type Options struct {
	Deps home.Deps

	// Log receives navigation and lifecycle logs. It must not write to the
	// terminal the TUI draws on.
	Log *zap.Logger

	// SkipWelcome starts on the home screen.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   home.Deps
	log    *zap.Logger
	total  int
	width  int
	height int
}

// New creates the root model, starting on the welcome screen unless
// opts.SkipWelcome is set.
func New(opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	deps := opts.Deps
	homeFactory := func() screen.Screen { return home.New(deps) }

	var initial screen.Screen
	if opts.SkipWelcome {
		initial = homeFactory()
	} else {
		initial = welcome.New(homeFactory)
	}

	total := 0
	for _, subj := range deps.Catalog.Subjects() {
		total += len(deps.Catalog.ConceptIDs(subj.ID))
	}

	return AppModel{
		router: router.New(initial),
		deps:   deps,
		log:    log,
		total:  total,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.log.Info("quit requested")
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}

	case router.PushScreenMsg:
		m.log.Debug("screen pushed", zap.String("screen", msg.Screen.Title()), zap.Int("depth", m.router.Depth()+1))
	case router.ReplaceScreenMsg:
		m.log.Debug("screen replaced", zap.String("screen", msg.Screen.Title()))
	case router.PopScreenMsg:
		m.log.Debug("screen popped", zap.String("screen", m.router.Active().Title()))
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// Active returns the screen on top of the stack.
func (m AppModel) Active() screen.Screen {
	return m.router.Active()
}

// status summarizes the learner for the header.
func (m AppModel) status() layout.Status {
	st := layout.Status{Total: m.total}
	if m.deps.Reviews != nil {
		st.Mastered = len(m.deps.Reviews.Mastered())
	}
	if m.deps.Profiles != nil {
		if l, err := m.deps.Profiles.Load(context.Background()); err == nil && l != nil {
			st.Learner = l.Name
		}
	}
	return st
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(m.router.Breadcrumb(), m.status(), m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("tui starting")
	p := tea.NewProgram(New(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		log.Error("tui exited with error", zap.Error(err))
		return fmt.Errorf("run tui: %w", err)
	}
	log.Info("tui stopped")
	return nil
}
