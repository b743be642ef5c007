// Package logging provides structured logging infrastructure for skz.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/Bind/skillz.sh/internal/config"
)

// NewFromConfig creates a slog.Logger based on tool configuration.
// Diagnostics always go to stderr; stdout is reserved for command output.
func NewFromConfig(cfg *config.Config) *slog.Logger {
	level := parseLevel(cfg.Logging.Level)
	return slog.New(newHandler(cfg.Logging.Format, os.Stderr, level))
}

// NewForTest creates a silent logger for tests.
func NewForTest() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// NewWithLevel creates a stderr text logger at the given level, bypassing
// the configured level. The --verbose flag uses this for debug output.
func NewWithLevel(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// parseLevel converts config log level to slog.Level.
func parseLevel(level config.LogLevel) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// newHandler creates a slog.Handler based on format.
func newHandler(format config.LogFormat, w io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
	}

	switch format {
	case config.LogFormatJSON:
		return slog.NewJSONHandler(w, opts)
	case config.LogFormatText:
		return slog.NewTextHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

