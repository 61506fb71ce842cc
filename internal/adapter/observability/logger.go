// Package observability configures diagnostic logging. Logs go to
// stderr so command output on stdout stays pipeable.
package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Log output encodings.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options configure the root logger.
type Options struct {
	Level   string // debug, info, warn, error
	Format  string // text, json
	Colored bool   // colorize text output, TTY only
}

// ParseLevel converts a textual log level into a slog.Level. Unknown
// values fall back to info.
func ParseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger constructs a slog.Logger writing to w. Text format uses a
// tint handler; json format uses slog's JSON handler.
func NewLogger(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := ParseLevel(opts.Level)

	if strings.EqualFold(strings.TrimSpace(opts.Format), FormatJSON) {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:   level,
		NoColor: !opts.Colored,
	})
	return slog.New(handler)
}
