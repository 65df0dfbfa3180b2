package main

import (
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// NewLogger returns a structured slog.Logger with the given level.
func NewLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// NewSessionLogger tags every record with a fresh session id.
func NewSessionLogger(level slog.Leveler) *slog.Logger {
	return NewLogger(level).With("session", uuid.NewString())
}
