// Package account is the sign-in and profile screen.
package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/masteryloop/internal/profile"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/ui/components"
	"github.com/abhisek/masteryloop/internal/ui/layout"
	"github.com/abhisek/masteryloop/internal/ui/theme"
)

type mode int

const (
	modeLoading mode = iota
	modeView
	modeEdit
)

// learnerMsg carries the result of a load, sign-in, update or sign-out.
// Prefill is the last stored profile, set when nobody is signed in.
type learnerMsg struct {
	Learner *profile.Learner
	Prefill *profile.Learner
	Err     error
}

// ProfileScreen shows the local learner and lets them sign in, edit their
// details or sign out.
type ProfileScreen struct {
	profiles *profile.SessionStore
	learner  *profile.Learner

	mode    mode
	inputs  []components.TextInput
	focus   int
	errMsg  string
	status  string
	pending string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.EscapeHandler = (*ProfileScreen)(nil)

// New creates a ProfileScreen backed by profiles.
func New(profiles *profile.SessionStore) *ProfileScreen {
	return &ProfileScreen{profiles: profiles}
}

func (s *ProfileScreen) Init() tea.Cmd {
	profiles := s.profiles
	return func() tea.Msg {
		ctx := context.Background()
		l, err := profiles.Load(ctx)
		if err != nil || l != nil {
			return learnerMsg{Learner: l, Err: err}
		}
		return signedOut(ctx, profiles)
	}
}

func signedOut(ctx context.Context, profiles *profile.SessionStore) learnerMsg {
	last, err := profiles.Last(ctx)
	if err != nil {
		return learnerMsg{Err: err}
	}
	return learnerMsg{Prefill: last}
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

// HandlesEscape reports true while editing so Esc cancels the form.
func (s *ProfileScreen) HandlesEscape() bool {
	return s.mode == modeEdit && s.learner != nil
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	if s.mode == modeEdit {
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "E", Description: "Edit"},
		{Key: "O", Description: "Sign out"},
		{Key: "Esc", Description: "Back"},
	}
}

// Learner returns the learner shown by the screen, or nil when signed out.
func (s *ProfileScreen) Learner() *profile.Learner {
	return s.learner
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case learnerMsg:
		return s.handleLearner(msg)
	case tea.KeyPressMsg:
		if s.mode == modeEdit {
			return s.handleEditKey(msg)
		}
		if s.mode == modeView {
			return s.handleViewKey(msg)
		}
		return s, nil
	}

	if s.mode == modeEdit {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ProfileScreen) handleLearner(msg learnerMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, profile.ErrInvalidEmail) && len(s.inputs) > 1 {
			s.inputs[1].Err = "Enter a valid email or leave it blank"
			s.pending = ""
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		s.pending = ""
		return s, nil
	}
	s.errMsg = ""
	s.status, s.pending = s.pending, ""
	s.learner = msg.Learner
	if s.learner == nil {
		return s, s.startEdit(msg.Prefill)
	}
	s.mode = modeView
	return s, nil
}

func (s *ProfileScreen) handleViewKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "e", "E":
		s.status = ""
		return s, s.startEdit(s.learner)
	case "o", "O":
		profiles := s.profiles
		s.pending = "Signed out."
		return s, func() tea.Msg {
			ctx := context.Background()
			if err := profiles.SignOut(ctx); err != nil {
				return learnerMsg{Err: err}
			}
			return signedOut(ctx, profiles)
		}
	case "q":
		return s, router.Pop()
	}
	return s, nil
}

func (s *ProfileScreen) handleEditKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if s.learner != nil {
			s.mode = modeView
		}
		return s, nil
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % len(s.inputs))
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + len(s.inputs) - 1) % len(s.inputs))
	case "enter":
		return s, s.save()
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

// startEdit opens the form, pre-filled from l when given.
func (s *ProfileScreen) startEdit(l *profile.Learner) tea.Cmd {
	name := components.NewTextInput("Name", profile.DefaultName, 40)
	email := components.NewTextInput("Email", "optional", 80)
	if l != nil {
		name.SetValue(l.Name)
		email.SetValue(l.Email)
	}
	s.inputs = []components.TextInput{name, email}
	s.mode = modeEdit
	return s.setFocus(0)
}

func (s *ProfileScreen) setFocus(i int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = i
	return s.inputs[i].Focus()
}

// save signs in when nobody is signed in and updates the learner otherwise.
func (s *ProfileScreen) save() tea.Cmd {
	for i := range s.inputs {
		s.inputs[i].Err = ""
	}
	l := profile.Learner{
		Name:  strings.TrimSpace(s.inputs[0].Value()),
		Email: strings.TrimSpace(s.inputs[1].Value()),
	}
	profiles, signedIn := s.profiles, s.learner != nil
	if signedIn {
		s.pending = "Profile updated."
	} else {
		s.pending = "Signed in."
	}
	return func() tea.Msg {
		ctx := context.Background()
		if signedIn {
			out, err := profiles.Update(ctx, l)
			return learnerMsg{Learner: out, Err: err}
		}
		out, err := profiles.SignIn(ctx, l)
		return learnerMsg{Learner: out, Err: err}
	}
}

func (s *ProfileScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	switch {
	case s.mode == modeLoading:
		b.WriteString(layout.Centered(theme.Dim, width, "Loading profile..."))
	case s.mode == modeEdit:
		heading := "Sign in"
		if s.learner != nil {
			heading = "Edit profile"
		}
		b.WriteString(layout.Centered(theme.Title, width, heading))
		b.WriteString("\n")
		b.WriteString(layout.Centered(theme.Dim, width, "Your profile stays on this machine."))
		b.WriteString("\n\n")
		var form strings.Builder
		for i, in := range s.inputs {
			if i > 0 {
				form.WriteString("\n\n")
			}
			form.WriteString(in.View())
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(form.String())))
	default:
		b.WriteString(s.renderLearner(width))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Error), width, "Error: "+s.errMsg))
	} else if s.status != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(theme.Correct, width, s.status))
	}
	return b.String()
}

func (s *ProfileScreen) renderLearner(width int) string {
	l := s.learner
	dim := theme.Dim
	val := lipgloss.NewStyle().Foreground(theme.Text)

	var card strings.Builder
	card.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(l.Name))
	card.WriteString("\n")
	card.WriteString(dim.Render(l.Label()))
	card.WriteString("\n\n")
	card.WriteString(dim.Render("Plan:   ") + val.Render(l.Role) + "\n")
	card.WriteString(dim.Render("Track:  ") + val.Render(l.Track))
	if !l.UpdatedAt.IsZero() {
		card.WriteString("\n" + dim.Render("Since:  ") + val.Render(l.UpdatedAt.Format("Jan 02, 2006")))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, theme.Card.Render(card.String())) +
		"\n\n" + layout.Centered(theme.Hint, width, fmt.Sprintf("Signed in as %s", l.Name))
}
