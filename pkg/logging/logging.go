// Package logging provides the slog.Logger factory shared by every linkdesk app.
//
// Output format is controlled by LOG_FORMAT:
//
//	LOG_FORMAT=json    one JSON object per line (default)
//	LOG_FORMAT=text    key=value pairs, easier to read in a terminal
//
// LOG_LEVEL selects the minimum level (debug, info, warn, error; default info).
// The returned logger is also installed as slog's default so libraries that
// log through slog.Default (the gin access logger, for one) share the handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a logger for app configured from the environment.
func New(app string) *slog.Logger {
	return NewWithLevel(app, os.Getenv("LOG_LEVEL"))
}

// NewWithLevel is New with an explicit level string, for CLIs that take the
// level as a flag.
func NewWithLevel(app, level string) *slog.Logger {
	log := slog.New(newHandler(os.Stdout, os.Getenv("LOG_FORMAT"), ParseLevel(level)))
	if app != "" {
		log = log.With("app", app)
	}
	slog.SetDefault(log)
	return log
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "text", "console":
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewJSONHandler(w, opts)
	}
}

// ParseLevel maps a level name to a slog.Level. Unknown names mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
