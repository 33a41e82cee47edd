package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
)

// Logger defines the logging interface
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Fatal(args ...interface{})
	Panic(args ...interface{})
}

// LevelCritical sits above slog.LevelError and is used for Fatal and Panic records.
const LevelCritical = slog.Level(12)

// slogLogger backs both the console and the file logger.
// closer is flushed before the process exits on Fatal.
type slogLogger struct {
	logger *slog.Logger
	closer io.Closer
}

func newSlogLogger(handler slog.Handler, closer io.Closer) *slogLogger {
	return &slogLogger{logger: slog.New(handler), closer: closer}
}

func (l *slogLogger) log(level slog.Level, args ...interface{}) string {
	msg := formatArgs(args...)
	l.logger.Log(context.Background(), level, msg)
	return msg
}

func (l *slogLogger) Debug(args ...interface{}) { l.log(slog.LevelDebug, args...) }
func (l *slogLogger) Info(args ...interface{})  { l.log(slog.LevelInfo, args...) }
func (l *slogLogger) Warn(args ...interface{})  { l.log(slog.LevelWarn, args...) }
func (l *slogLogger) Error(args ...interface{}) { l.log(slog.LevelError, args...) }

// Fatal logs at critical level and exits with status 1.
func (l *slogLogger) Fatal(args ...interface{}) {
	l.log(LevelCritical, args...)
	if l.closer != nil {
		_ = l.closer.Close()
	}
	os.Exit(1)
}

// Panic logs at critical level and panics with the formatted message.
func (l *slogLogger) Panic(args ...interface{}) {
	panic(l.log(LevelCritical, args...))
}

func handlerOptions(level string) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: parseLevel(level),
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelCritical {
					a.Value = slog.StringValue("CRITICAL")
				}
			}
			return a
		},
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	case config.LogLevelCritical:
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

func formatArgs(args ...interface{}) string {
	if len(args) == 0 {
		return ""
	}
	return fmt.Sprint(args...)
}
