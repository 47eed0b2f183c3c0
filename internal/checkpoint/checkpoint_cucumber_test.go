//go:build cucumber

package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// TestAdaptiveCheckpointScenarios runs the adaptive checkpoint feature.
func TestAdaptiveCheckpointScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "adaptive-checkpoint",
		ScenarioInitializer: InitializeCheckpointScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("features", "adaptive_checkpoint.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeCheckpointScenario wires the checkpoint steps.
func InitializeCheckpointScenario(ctx *godog.ScenarioContext) {
	state := &checkpointScenario{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a question source where every correct answer is option (\d+)$`, state.givenSource)
	ctx.Step(`^a checkpoint session for concepts "([^"]*)"$`, state.givenSession)
	ctx.Step(`^I start a checkpoint session with no concepts$`, state.whenStartEmpty)
	ctx.Step(`^I answer ([\d, ]+)$`, state.whenAnswer)
	ctx.Step(`^I submit option (-?\d+)$`, state.whenSubmit)
	ctx.Step(`^the session is complete$`, state.thenComplete(true))
	ctx.Step(`^the session is not complete$`, state.thenComplete(false))
	ctx.Step(`^the session is in an adaptive round$`, state.thenAdaptive(true))
	ctx.Step(`^the session is not in an adaptive round$`, state.thenAdaptive(false))
	ctx.Step(`^the active questions cover "([^"]*)"$`, state.thenActive)
	ctx.Step(`^the current index is (\d+)$`, state.thenCurrentIndex)
	ctx.Step(`^the submission fails with "([^"]*)"$`, state.thenSubmitErr)
	ctx.Step(`^starting fails with "([^"]*)"$`, state.thenStartErr)
	ctx.Step(`^no session is created$`, state.thenNoSession)
}

type checkpointScenario struct {
	correct   int
	session   *Session
	startErr  error
	submitErr error
}

func (s *checkpointScenario) reset() {
	*s = checkpointScenario{}
}

func (s *checkpointScenario) source() QuestionSource {
	return SourceFunc(func(_ context.Context, ids []string) ([]Question, error) {
		qs := make([]Question, len(ids))
		for i, id := range ids {
			qs[i] = Question{ConceptID: id, Prompt: id, Options: []string{"a", "b", "c", "d"}, CorrectIndex: s.correct}
		}
		return qs, nil
	})
}

func (s *checkpointScenario) givenSource(correct int) error {
	s.correct = correct
	return nil
}

func (s *checkpointScenario) givenSession(ids string) error {
	sess, err := StartSession(context.Background(), "cp-feature", strings.Split(ids, ","), s.source())
	if err != nil {
		return err
	}
	s.session = sess
	return nil
}

func (s *checkpointScenario) whenStartEmpty() error {
	s.session, s.startErr = StartSession(context.Background(), "cp-feature", nil, s.source())
	return nil
}

func (s *checkpointScenario) whenAnswer(list string) error {
	for _, part := range strings.Split(list, ",") {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return err
		}
		if _, err := SubmitAnswer(s.session, idx); err != nil {
			return fmt.Errorf("answer %d: %w", idx, err)
		}
	}
	return nil
}

func (s *checkpointScenario) whenSubmit(idx int) error {
	_, s.submitErr = SubmitAnswer(s.session, idx)
	return nil
}

func (s *checkpointScenario) thenComplete(want bool) func() error {
	return func() error {
		if got := s.session.IsComplete(); got != want {
			return fmt.Errorf("IsComplete = %v, want %v", got, want)
		}
		return nil
	}
}

func (s *checkpointScenario) thenAdaptive(want bool) func() error {
	return func() error {
		if got := s.session.IsAdaptiveRound(); got != want {
			return fmt.Errorf("IsAdaptiveRound = %v, want %v", got, want)
		}
		return nil
	}
}

func (s *checkpointScenario) thenActive(ids string) error {
	var got []string
	for _, q := range s.session.ActiveQuestions() {
		got = append(got, q.ConceptID)
	}
	if want := strings.Split(ids, ","); !slices.Equal(got, want) {
		return fmt.Errorf("active concepts = %v, want %v", got, want)
	}
	return nil
}

func (s *checkpointScenario) thenCurrentIndex(want int) error {
	if got := s.session.CurrentIndex(); got != want {
		return fmt.Errorf("CurrentIndex = %d, want %d", got, want)
	}
	return nil
}

func matchErr(err error, name string) error {
	targets := map[string]error{
		"invalid input":    ErrInvalidInput,
		"session complete": ErrSessionComplete,
		"question source":  ErrQuestionSource,
	}
	target, ok := targets[name]
	if !ok {
		return fmt.Errorf("unknown error kind %q", name)
	}
	if !errors.Is(err, target) {
		return fmt.Errorf("error = %v, want %s", err, name)
	}
	return nil
}

func (s *checkpointScenario) thenSubmitErr(name string) error { return matchErr(s.submitErr, name) }

func (s *checkpointScenario) thenStartErr(name string) error { return matchErr(s.startErr, name) }

func (s *checkpointScenario) thenNoSession() error {
	if s.session != nil {
		return fmt.Errorf("session was created")
	}
	return nil
}
