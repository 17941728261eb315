// Package logging sets up the process logger.
package logging

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// New returns a logger writing human-readable lines to w. Verbose enables
// debug output; otherwise only warnings and errors are shown, since normal
// results go to stdout. Every record carries a short id unique to this run
// so interleaved invocations can be told apart.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run", uuid.NewString()[:8])
}
