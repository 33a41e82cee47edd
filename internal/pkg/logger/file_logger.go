package logger

import (
	"log/slog"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"

	"github.com/natefinch/lumberjack"
)

// NewFileLogger returns a JSON logger writing to a file rotated by lumberjack.
// Settings are expected to be validated.
func NewFileLogger(settings *config.LoggerSettings) Logger {
	writer := &lumberjack.Logger{
		Filename:   settings.FilePath,
		MaxSize:    settings.MaxSize,
		MaxBackups: settings.MaxBackups,
		MaxAge:     settings.MaxAge,
		Compress:   true,
	}
	return newSlogLogger(slog.NewJSONHandler(writer, handlerOptions(settings.LogLevel)), writer)
}
