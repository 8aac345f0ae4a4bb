// Package logging configures the process-wide slog logger. The entry point
// owns the lifecycle; every other component receives an injected *slog.Logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup configures slog.Default() with the given output format and level.
// format: "text" (human-readable) or "json" (structured).
// level: "debug", "info", "warn", "error".
// Logs go to stderr so stdout stays free for listing output.
func Setup(format, level string) *slog.Logger {
	logger := slog.New(newHandler(os.Stderr, format, ParseLevel(level)))
	slog.SetDefault(logger)
	return logger
}

func newHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// ParseLevel converts a level string to slog.Level.
// Unrecognized values fall back to slog.LevelInfo.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// Discard returns a *slog.Logger that drops all output, for tests.
func Discard() *slog.Logger {
	return slog.New(newHandler(io.Discard, "text", slog.LevelError+1))
}
