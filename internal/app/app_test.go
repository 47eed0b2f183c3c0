package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/masteryloop/internal/cards"
	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/profile"
	"github.com/abhisek/masteryloop/internal/progress"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/screens/home"
	"github.com/abhisek/masteryloop/internal/screens/welcome"
	"github.com/abhisek/masteryloop/internal/store"
)

// escScreen records the keys it receives.
type escScreen struct {
	handles bool
	keys    []string
}

func (s *escScreen) Init() tea.Cmd        { return nil }
func (s *escScreen) View(int, int) string { return "esc" }
func (s *escScreen) Title() string        { return "Esc" }
func (s *escScreen) HandlesEscape() bool  { return s.handles }
func (s *escScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}

func newDeps(t *testing.T) home.Deps {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	cat, err := curriculum.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	source := checkpoint.SourceFunc(func(context.Context, []string) ([]checkpoint.Question, error) {
		return nil, nil
	})
	return home.Deps{
		Catalog:  cat,
		Reviews:  review.NewService(source, progress.New(cat.Version())),
		Cards:    cards.NewService(nil, cards.DefaultConfig(), nil),
		Profiles: profile.NewSessionStore(st.ProfileRepo()),
		Events:   st.EventRepo(),
	}
}

func update(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(AppModel), cmd
}

func TestNew_StartScreen(t *testing.T) {
	deps := newDeps(t)

	if _, ok := New(Options{Deps: deps}).Active().(*welcome.WelcomeScreen); !ok {
		t.Error("expected the welcome screen first")
	}
	m := New(Options{Deps: deps, SkipWelcome: true})
	if _, ok := m.Active().(*home.HomeScreen); !ok {
		t.Error("expected the home screen when skipping the welcome")
	}
	if m.total != 12 {
		t.Errorf("total concepts = %d, want 12", m.total)
	}
}

func TestEscape(t *testing.T) {
	m := New(Options{Deps: newDeps(t), SkipWelcome: true})

	m, cmd := update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}

	plain := &escScreen{}
	m, _ = update(m, router.PushScreenMsg{Screen: plain})
	_, cmd = update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop a plain screen")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
	if len(plain.keys) != 0 {
		t.Error("plain screen should not see esc")
	}

	m, _ = update(m, router.PopScreenMsg{})
	handler := &escScreen{handles: true}
	m, _ = update(m, router.PushScreenMsg{Screen: handler})
	update(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if len(handler.keys) != 1 || handler.keys[0] != "esc" {
		t.Errorf("handler keys = %v, want [esc]", handler.keys)
	}
}

func TestStatus(t *testing.T) {
	deps := newDeps(t)
	if _, err := deps.Profiles.SignIn(t.Context(), profile.Learner{Name: "Ada"}); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	m := New(Options{Deps: deps, SkipWelcome: true})
	st := m.status()
	if st.Learner != "Ada" || st.Mastered != 0 || st.Total != 12 {
		t.Errorf("status = %+v", st)
	}
}

func TestNavigationLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	m := New(Options{Deps: newDeps(t), SkipWelcome: true, Log: zap.New(core)})

	m, _ = update(m, router.PushScreenMsg{Screen: &escScreen{}})
	update(m, router.PopScreenMsg{})

	if n := logs.FilterMessage("screen pushed").Len(); n != 1 {
		t.Errorf("push logs = %d, want 1", n)
	}
	if n := logs.FilterMessage("screen popped").Len(); n != 1 {
		t.Errorf("pop logs = %d, want 1", n)
	}
}

func TestFooterHints(t *testing.T) {
	m := New(Options{Deps: newDeps(t), SkipWelcome: true})
	hints := m.footerHints(m.Active())
	if hints[len(hints)-1].Key != "Ctrl+C" {
		t.Errorf("last hint = %+v, want Ctrl+C", hints[len(hints)-1])
	}
}
