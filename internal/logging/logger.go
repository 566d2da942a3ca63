// Package logging provides structured logging configuration using log/slog.
//
// Logs are written to stderr so that stdout only carries the tool's own
// output (the confirmation line, or the document in dry-run mode).
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// New builds a logger writing to w.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// Setup builds a logger with New and installs it as the slog default.
func Setup(w io.Writer, level, format string) *slog.Logger {
	logger := New(w, level, format)
	slog.SetDefault(logger)
	return logger
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// ForRun returns a logger tagged with a fresh run id and the input path, so
// every entry of one conversion can be correlated.
//
// Usage:
//
//	logger := logging.ForRun(base, "users.csv")
//	logger.Info("conversion started")
func ForRun(logger *slog.Logger, input string) *slog.Logger {
	return logger.With(
		"run_id", uuid.NewString(),
		"input", input,
	)
}
