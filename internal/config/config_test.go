package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masteryloop/internal/llm"
	"github.com/abhisek/masteryloop/internal/logging"
)

// isolate runs the test in an empty directory with no ambient keys.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, k := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
		"MASTERYLOOP_DB", "MASTERYLOOP_ENV", "MASTERYLOOP_LLM_PROVIDER",
		"MASTERYLOOP_LLM_ANTHROPIC_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, logging.FormatJSON, cfg.Log.Format)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 2048, cfg.Questions.MaxTokens)
	assert.Len(t, cfg.Questions.Validators, 2)
	assert.True(t, cfg.Cards.PreferCurated)
	assert.False(t, cfg.LLMAvailable)
	assert.Empty(t, cfg.File)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	yaml := `env: development
db_path: /tmp/ml.db
llm:
  provider: mock
  timeout: 45s
  retry:
    max_attempts: 5
questions:
  max_tokens: 1000
  disable_local: true
cards:
  prefer_curated: false
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, logging.FormatConsole, cfg.Log.Format)
	assert.Equal(t, "/tmp/ml.db", cfg.DBPath)
	assert.Equal(t, llm.ProviderMock, cfg.LLM.Provider)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 5, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 1000, cfg.Questions.MaxTokens)
	assert.True(t, cfg.Questions.DisableLocal)
	assert.False(t, cfg.Cards.PreferCurated)
	assert.True(t, cfg.LLMAvailable)
	assert.Contains(t, cfg.File, "config.yaml")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /from/file.db\n"), 0o644))

	t.Setenv("MASTERYLOOP_DB", "/from/env.db")
	t.Setenv("MASTERYLOOP_LLM_PROVIDER", "openai")
	t.Setenv("MASTERYLOOP_LLM_OPENAI_API_KEY", "sk-test")

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)

	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAI.APIKey)
	assert.True(t, cfg.LLMAvailable)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GEMINI_API_KEY=g-key\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("GEMINI_API_KEY") })

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.Equal(t, llm.ProviderGemini, cfg.LLM.Provider)
	assert.Equal(t, "g-key", cfg.LLM.Gemini.APIKey)
	assert.True(t, cfg.LLMAvailable)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)
	_, err := Load(Options{ConfigFile: filepath.Join(dir, "nope.yaml")})
	assert.ErrorContains(t, err, "read config file")
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("MASTERYLOOP_ENV", "staging")
	t.Setenv("MASTERYLOOP_QUESTIONS_TEMPERATURE", "1.5")

	_, err := Load(Options{})
	require.Error(t, err)
	assert.ErrorContains(t, err, `unknown environment "staging"`)
	assert.ErrorContains(t, err, "questions.temperature")
}
