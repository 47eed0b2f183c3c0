package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/masteryloop/internal/cards"
	"github.com/abhisek/masteryloop/internal/curriculum"
	"github.com/abhisek/masteryloop/internal/profile"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/screens/account"
	"github.com/abhisek/masteryloop/internal/screens/history"
	"github.com/abhisek/masteryloop/internal/screens/timeline"
	"github.com/abhisek/masteryloop/internal/store"
	"github.com/abhisek/masteryloop/internal/ui/components"
)

// Deps are the services the home screen hands to the screens it opens.
type Deps struct {
	Catalog  *curriculum.Catalog
	Reviews  *review.Service
	Cards    *cards.Service
	Profiles *profile.SessionStore
	Events   store.EventRepo
}

// HomeScreen lists the subjects and the account screens.
type HomeScreen struct {
	deps     Deps
	menu     components.Menu
	subjects []curriculum.Subject
	learner  *profile.Learner
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. The cursor starts on the learner's last
// subject when there is one.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{
		deps:     deps,
		subjects: deps.Catalog.Subjects(),
	}
	if deps.Profiles != nil {
		h.learner, _ = deps.Profiles.Load(context.Background())
	}

	var items []components.MenuItem
	for _, subj := range h.subjects {
		items = append(items, components.MenuItem{
			Label:  strings.ToUpper(subj.Title),
			Action: func() tea.Cmd { return h.openSubject(subj) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "PROFILE", Action: func() tea.Cmd {
			return router.Push(account.New(deps.Profiles))
		}, Disabled: deps.Profiles == nil, Divider: true},
		components.MenuItem{Label: "HISTORY", Action: func() tea.Cmd {
			return router.Push(history.New(deps.Events, deps.Catalog))
		}, Disabled: deps.Events == nil},
		components.MenuItem{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)
	h.menu = components.NewMenu(items)

	if h.learner != nil {
		for i, subj := range h.subjects {
			if subj.ID == h.learner.Subject {
				h.menu.Select(i)
			}
		}
	}
	return h
}

// openSubject pushes the subject timeline and remembers the subject for a
// signed-in learner.
func (h *HomeScreen) openSubject(subj curriculum.Subject) tea.Cmd {
	push := router.Push(timeline.New(h.deps.Catalog, subj, h.deps.Reviews, h.deps.Cards))
	if h.learner == nil || h.deps.Profiles == nil {
		return push
	}
	profiles := h.deps.Profiles
	remember := func() tea.Msg {
		_, _ = profiles.Update(context.Background(), profile.Learner{Subject: subj.ID})
		return nil
	}
	return tea.Batch(push, remember)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	mastered := h.deps.Reviews.Mastered()

	total, done := 0, 0
	for i, subj := range h.subjects {
		ids := h.deps.Catalog.ConceptIDs(subj.ID)
		n := 0
		for _, id := range ids {
			if mastered[id] {
				n++
			}
		}
		total += len(ids)
		done += n
		h.menu.Items[i].Detail = fmt.Sprintf("%d/%d mastered", n, len(ids))
	}

	cw := contentWidth(width)
	compact := height < 22 || width < 60

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(done, total, h.passedCheckpoints(), cw, compact),
		renderMenuPanel(h.menu.View(), cw),
	}
	if h.learner != nil && !compact {
		sections = append(sections, renderGreeting(h.learner.Name, cw))
	}
	return renderPanel(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// passedCheckpoints counts passed checkpoints across all subjects.
func (h *HomeScreen) passedCheckpoints() int {
	n := 0
	for _, subj := range h.subjects {
		for _, cp := range h.deps.Catalog.Checkpoints(subj.ID) {
			if _, ok := h.deps.Reviews.CheckpointResult(subj.ID, cp.ID); ok {
				n++
			}
		}
	}
	return n
}
