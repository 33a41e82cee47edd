package logger

import (
	"io"
	"log/slog"
	"os"
)

// NewConsoleLogger returns a text logger on stderr, so command output on stdout stays machine readable.
func NewConsoleLogger(level string) Logger {
	return newConsoleLogger(os.Stderr, level)
}

func newConsoleLogger(w io.Writer, level string) *slogLogger {
	return newSlogLogger(slog.NewTextHandler(w, handlerOptions(level)), nil)
}
