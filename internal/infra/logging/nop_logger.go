package logging

import (
	"io"
	"log/slog"
)

// NewNopLogger creates a logger that discards all output.
// It is returned by GetLogger until Configure selects an output.
func NewNopLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
