package logger

import (
	"io"
	"log/slog"
)

// NewNope creates a logger that discards all output.
// Library packages use it when no logger is configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
