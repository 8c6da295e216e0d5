// Package logging builds the slog loggers shared by the CLI and server.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w at the given level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Level picks debug when verbose is set, otherwise fallback.
func Level(verbose bool, fallback slog.Level) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return fallback
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
