package observability_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bkyoung/lgtm/internal/adapter/observability"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"  debug  ", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, observability.ParseLevel(tt.input))
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(&buf, observability.Options{Level: "info", Format: "json"})

	logger.Info("resolved pull request", "pr", 7)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "resolved pull request", record["msg"])
	assert.Equal(t, float64(7), record["pr"])
}

func TestNewLogger_TextFormatWithoutColor(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(&buf, observability.Options{Level: "info", Format: "text"})

	logger.Info("resolved pull request", "pr", 7)

	out := buf.String()
	assert.Contains(t, out, "resolved pull request")
	assert.NotContains(t, out, "\x1b[")
}

func TestNewLogger_TextFormatWithColor(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(&buf, observability.Options{Level: "info", Format: "text", Colored: true})

	logger.Info("resolved pull request")

	assert.Contains(t, buf.String(), "\x1b[")
}

func TestNewLogger_LevelGatesRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(&buf, observability.Options{Level: "warn", Format: "text"})

	logger.Info("should be dropped")
	logger.Warn("should be kept")

	out := buf.String()
	assert.NotContains(t, out, "should be dropped")
	assert.Contains(t, out, "should be kept")
}

func TestNewLogger_DebugLevelKeepsEverything(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewLogger(&buf, observability.Options{Level: "debug", Format: "json"})

	logger.Debug("cache hit", "key", "GET repos/octo/hello")

	assert.Contains(t, buf.String(), "cache hit")
}
