package account

import (
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masteryloop/internal/profile"
	"github.com/abhisek/masteryloop/internal/store"
)

func newScreen(t *testing.T) (*ProfileScreen, *profile.SessionStore) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	profiles := profile.NewSessionStore(st.ProfileRepo())
	s := New(profiles)
	s.Update(s.Init()())
	return s, profiles
}

func typeText(s *ProfileScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// run delivers the command's message back to the screen.
func run(t *testing.T, s *ProfileScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	s.Update(cmd())
}

func TestProfile_SignedOutShowsSignIn(t *testing.T) {
	s, _ := newScreen(t)
	if s.mode != modeEdit {
		t.Fatalf("mode = %v, want edit", s.mode)
	}
	if s.HandlesEscape() {
		t.Error("Esc should leave the screen when nobody is signed in")
	}
	if !strings.Contains(s.View(100, 30), "Sign in") {
		t.Error("expected the sign-in form")
	}
}

func TestProfile_SignInEditSignOut(t *testing.T) {
	s, profiles := newScreen(t)

	typeText(s, "Ada")
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(s, "ada@example.com")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(t, s, cmd)

	if s.mode != modeView || s.Learner() == nil {
		t.Fatalf("mode = %v, want view with a learner", s.mode)
	}
	if s.Learner().Name != "Ada" || s.Learner().Email != "ada@example.com" {
		t.Errorf("learner = %+v", s.Learner())
	}
	view := s.View(100, 30)
	for _, want := range []string{"Signed in.", "ada@example.com", profile.DefaultRole} {
		if !strings.Contains(view, want) {
			t.Errorf("profile view missing %q", want)
		}
	}

	// Edit the name; Esc cancels without saving.
	s.Update(tea.KeyPressMsg{Code: 'e', Text: "e"})
	if !s.HandlesEscape() {
		t.Error("Esc should cancel editing")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if s.mode != modeView {
		t.Errorf("mode = %v, want view after cancel", s.mode)
	}

	s.Update(tea.KeyPressMsg{Code: 'e', Text: "e"})
	typeText(s, " L")
	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(t, s, cmd)
	if s.Learner().Name != "Ada L" {
		t.Errorf("name = %q, want Ada L", s.Learner().Name)
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'o', Text: "o"})
	run(t, s, cmd)
	if s.Learner() != nil || s.mode != modeEdit {
		t.Errorf("expected sign-in form after sign out, mode = %v", s.mode)
	}
	if !strings.Contains(s.View(100, 30), "Signed out.") {
		t.Error("expected sign-out confirmation")
	}

	last, err := profiles.Last(t.Context())
	if err != nil {
		t.Fatalf("last: %v", err)
	}
	if last == nil || last.Name != "Ada L" {
		t.Errorf("last learner = %+v, want the signed-out profile kept", last)
	}
}

func TestProfile_InvalidEmail(t *testing.T) {
	s, _ := newScreen(t)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	typeText(s, "not-an-email")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	run(t, s, cmd)

	if s.mode != modeEdit || s.Learner() != nil {
		t.Fatal("invalid email should keep the form open")
	}
	if !strings.Contains(s.View(100, 30), "valid email") {
		t.Error("expected an email error on the form")
	}
}

func TestProfile_SignInFormPrefilledFromLastProfile(t *testing.T) {
	s, profiles := newScreen(t)
	if _, err := profiles.SignIn(t.Context(), profile.Learner{Name: "Grace"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := profiles.SignOut(t.Context()); err != nil {
		t.Fatalf("sign out: %v", err)
	}

	s.Update(s.Init()())
	if s.mode != modeEdit {
		t.Fatalf("mode = %v, want edit", s.mode)
	}
	if got := s.inputs[0].Value(); got != "Grace" {
		t.Errorf("name prefill = %q, want Grace", got)
	}
}
