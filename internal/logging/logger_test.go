package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/holotask/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"Warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_TextToFallbackFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LogConfig{Level: "warn", Format: "text"}, &buf)
	require.NoError(t, err)
	defer closeFn()

	logger.Info("hidden")
	logger.Warn("shown", "user", "nova")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "user=nova")
}

func TestNew_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "holotask.log")
	logger, closeFn, err := New(config.LogConfig{Level: "debug", Format: "json", File: path}, nil)
	require.NoError(t, err)

	logger.Debug("persisted", "op", "add task")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &rec))
	assert.Equal(t, "persisted", rec["msg"])
	assert.Equal(t, "add task", rec["op"])
	assert.Equal(t, "DEBUG", rec["level"])
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(context.Background(), slog.LevelError))
}
