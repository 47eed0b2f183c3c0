package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(DefaultConfig(), &buf)
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("checkpoint started", zap.String("checkpoint", "quiz-checkpoint-2"))
	require.NoError(t, log.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "checkpoint started", entry["msg"])
	assert.Equal(t, "quiz-checkpoint-2", entry["checkpoint"])
}

func TestNewWithWriter_ConsoleDebug(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	cfg.Format = FormatConsole

	var buf bytes.Buffer
	log, err := NewWithWriter(cfg, &buf)
	require.NoError(t, err)
	log.Debug("question sources configured")

	out := buf.String()
	assert.Contains(t, out, "DEBUG")
	assert.Contains(t, out, "question sources configured")
	assert.False(t, strings.HasPrefix(out, "{"))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Level = "loud" }, "log level"},
		{"bad format", func(c *Config) { c.Format = "xml" }, "unknown log format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNewFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.File = filepath.Join(t.TempDir(), "logs", "masteryloop.log")

	log, closeFn, err := NewFile(cfg)
	require.NoError(t, err)
	log.Warn("question source failed", zap.String("source", "anthropic"))
	require.NoError(t, closeFn())

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "question source failed")
}

func TestDefaultFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	p, err := DefaultFile()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "masteryloop", "masteryloop.log"), p)
}
