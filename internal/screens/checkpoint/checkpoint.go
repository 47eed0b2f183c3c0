package checkpoint

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	engine "github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/review"
	"github.com/abhisek/masteryloop/internal/router"
	"github.com/abhisek/masteryloop/internal/screen"
	"github.com/abhisek/masteryloop/internal/screens/summary"
	"github.com/abhisek/masteryloop/internal/ui/components"
	"github.com/abhisek/masteryloop/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseQuitConfirm
	phaseError
)

// Options describes the checkpoint to run.
type Options struct {
	SubjectID  string
	Checkpoint engine.Checkpoint

	// Titles maps concept IDs to display titles.
	Titles map[string]string

	// Next is the title of the concept after the checkpoint, if any.
	Next string
}

// CheckpointScreen runs one checkpoint attempt.
type CheckpointScreen struct {
	reviews *review.Service
	opts    Options

	// ctx scopes question generation. Leaving the screen cancels it.
	ctx    context.Context
	cancel context.CancelFunc

	attempt *review.Attempt
	choice  components.MultiChoice
	outcome engine.Outcome
	rounds  []summary.Round

	phase     phase
	prevPhase phase
	errMsg    string
	startedAt time.Time
}

var _ screen.Screen = (*CheckpointScreen)(nil)
var _ screen.KeyHintProvider = (*CheckpointScreen)(nil)
var _ screen.EscapeHandler = (*CheckpointScreen)(nil)

// New creates a CheckpointScreen. The attempt starts in Init.
func New(reviews *review.Service, opts Options) *CheckpointScreen {
	ctx, cancel := context.WithCancel(context.Background())
	return &CheckpointScreen{
		reviews: reviews,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
	}
}

func (s *CheckpointScreen) Init() tea.Cmd {
	ctx, reviews, opts := s.ctx, s.reviews, s.opts
	return func() tea.Msg {
		a, err := reviews.Begin(ctx, opts.SubjectID, opts.Checkpoint)
		if ctx.Err() != nil {
			// The learner left while questions were loading.
			if a != nil {
				a.Abandon(context.Background())
			}
			return nil
		}
		return attemptStartedMsg{Attempt: a, Err: err}
	}
}

func (s *CheckpointScreen) Title() string {
	return "Checkpoint"
}

// HandlesEscape reports true: Esc asks before abandoning an attempt.
func (s *CheckpointScreen) HandlesEscape() bool {
	return true
}

func (s *CheckpointScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave checkpoint"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (s *CheckpointScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case attemptStartedMsg:
		return s.handleStarted(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *CheckpointScreen) View(width, height int) string {
	switch s.phase {
	case phaseError:
		return renderError(width, s.errMsg)
	case phaseLoading:
		return renderLoading(width, len(s.opts.Checkpoint.ConceptIDs))
	case phaseQuitConfirm:
		return renderQuitConfirm(width)
	case phaseFeedback:
		return s.renderFeedback(width)
	default:
		return s.renderQuestion(width)
	}
}

func (s *CheckpointScreen) handleStarted(msg attemptStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.phase = phaseError
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.attempt = msg.Attempt
	s.startedAt = time.Now()
	s.rounds = []summary.Round{{Number: 1}}
	s.nextQuestion()
	return s, nil
}

func (s *CheckpointScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.phase {
	case phaseError, phaseLoading:
		if s.phase == phaseError || key == "esc" {
			s.cancel()
			return s, router.Pop()
		}
		return s, nil

	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			s.attempt.Abandon(context.Background())
			s.cancel()
			return s, router.Pop()
		case "n", "N", "esc":
			s.phase = s.prevPhase
		}
		return s, nil

	case phaseFeedback:
		if s.outcome.Completed {
			return s, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: summary.New(s.result())}
			}
		}
		s.nextQuestion()
		return s, nil
	}

	if key == "esc" {
		s.prevPhase = s.phase
		s.phase = phaseQuitConfirm
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Submitted {
		return s.submit(s.choice.ChosenIndex)
	}
	return s, nil
}

// submit hands the answer to the engine and shows feedback.
func (s *CheckpointScreen) submit(option int) (screen.Screen, tea.Cmd) {
	out, err := s.attempt.Answer(context.Background(), option)
	if err != nil {
		s.phase = phaseError
		s.errMsg = err.Error()
		return s, nil
	}
	s.outcome = out

	rd := &s.rounds[len(s.rounds)-1]
	rd.Asked++
	if !out.Correct {
		rd.Missed = append(rd.Missed, s.title(out.Question.ConceptID))
	}
	if out.Retry {
		s.rounds = append(s.rounds, summary.Round{Number: out.Round + 1, Adaptive: true})
	}

	s.phase = phaseFeedback
	return s, nil
}

func (s *CheckpointScreen) nextQuestion() {
	q, ok := s.attempt.Current()
	if !ok {
		return
	}
	s.choice = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectIndex)
	s.phase = phaseQuestion
}

func (s *CheckpointScreen) title(conceptID string) string {
	if t, ok := s.opts.Titles[conceptID]; ok {
		return t
	}
	return conceptID
}

func (s *CheckpointScreen) result() summary.Result {
	mastered := make([]string, 0, len(s.opts.Checkpoint.ConceptIDs))
	for _, id := range s.opts.Checkpoint.ConceptIDs {
		mastered = append(mastered, s.title(id))
	}
	return summary.Result{
		CheckpointTitle: s.opts.Checkpoint.Title,
		Duration:        time.Since(s.startedAt),
		Rounds:          s.rounds,
		Mastered:        mastered,
		Next:            s.opts.Next,
	}
}
