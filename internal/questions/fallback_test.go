package questions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/masteryloop/internal/checkpoint"
	"github.com/abhisek/masteryloop/internal/llm"
)

func TestFallbackSource_FirstSuccessWins(t *testing.T) {
	want := []checkpoint.Question{validQuestion("a")}
	first := &stubSource{qs: want}
	second := &stubSource{err: errors.New("unused")}

	fs := NewFallbackSource(nil, Named{"primary", first}, Named{"local", second})
	qs, err := fs.Generate(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, want, qs)
	assert.Equal(t, 0, second.calls)
}

func TestFallbackSource_FallsThroughAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	want := []checkpoint.Question{validQuestion("a")}

	fs := NewFallbackSource(zap.New(core),
		Named{"anthropic", &stubSource{err: errors.New("rate limited")}},
		Named{"openai", &stubSource{err: errors.New("down")}},
		Named{"local", &stubSource{qs: want}},
	)
	qs, err := fs.Generate(context.Background(), []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, want, qs)

	warns := logs.FilterMessage("question source failed").All()
	require.Len(t, warns, 2)
	assert.Equal(t, "anthropic", warns[0].ContextMap()["source"])
	assert.Equal(t, "openai", warns[1].ContextMap()["source"])
}

func TestFallbackSource_AllFail(t *testing.T) {
	errA := errors.New("a broke")
	errB := errors.New("b broke")
	fs := NewFallbackSource(nil, Named{"a", &stubSource{err: errA}}, Named{"b", &stubSource{err: errB}})

	_, err := fs.Generate(context.Background(), []string{"x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "a: a broke")
}

func TestFallbackSource_Empty(t *testing.T) {
	_, err := NewFallbackSource(nil).Generate(context.Background(), []string{"x"})
	assert.Error(t, err)
}

func TestFallbackSource_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	second := &stubSource{qs: []checkpoint.Question{validQuestion("x")}}
	first := checkpoint.SourceFunc(func(ctx context.Context, _ []string) ([]checkpoint.Question, error) {
		cancel()
		return nil, ctx.Err()
	})

	_, err := NewFallbackSource(nil, Named{"remote", first}, Named{"local", second}).Generate(ctx, []string{"x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, second.calls)
}

func TestFallbackSource_WithEngine(t *testing.T) {
	// A remote source that returns too few questions is rejected by the
	// validator chain, and the engine sees the local result.
	mock := llm.NewMockProvider(llm.MockJSON(batchJSON("fcfs")))
	fs := NewFallbackSource(nil,
		Named{"mock", NewLLMSource(mock, testConcepts(), DefaultConfig())},
		Named{LocalSourceName, NewLocalSource(testConcepts())},
	)

	sess, err := checkpoint.StartSession(context.Background(), "quiz-checkpoint-2", []string{"fcfs", "rr", "paging"}, fs)
	require.NoError(t, err)
	assert.Equal(t, "What is the core purpose of Paging?", sess.OriginalQuestions()[2].Prompt)
}

func TestNewSourceFromConfig(t *testing.T) {
	cfg := llm.DefaultConfig()
	cfg.Provider = llm.ProviderMock
	cfg.Alternate = "unknown-vendor"

	fs := NewSourceFromConfig(context.Background(), cfg, DefaultConfig(), testConcepts(), nil, nil)
	assert.Equal(t, []string{llm.ProviderMock, LocalSourceName}, fs.Names())

	// The bare mock provider has no canned responses, so the chain lands
	// on the local source.
	qs, err := fs.Generate(context.Background(), []string{"rr"})
	require.NoError(t, err)
	assert.Equal(t, "What is the core purpose of Round Robin?", qs[0].Prompt)

	noLocal := DefaultConfig()
	noLocal.DisableLocal = true
	fs = NewSourceFromConfig(context.Background(), cfg, noLocal, testConcepts(), nil, nil)
	assert.Equal(t, []string{llm.ProviderMock}, fs.Names())
}
