package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masteryloop/internal/ui/layout"
)

// Screen is one page of the TUI, managed by the router.
type Screen interface {
	// Init returns an initial command when the screen is pushed.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeHandler is implemented by screens that handle Esc themselves,
// for example to confirm before leaving. The app pops other screens on Esc.
type EscapeHandler interface {
	HandlesEscape() bool
}
