package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Log levels accepted in LoggerSettings.LogLevel
const (
	LogLevelDebug    = "debug"
	LogLevelInfo     = "info"
	LogLevelWarning  = "warning"
	LogLevelError    = "error"
	LogLevelCritical = "critical"
)

// Log sinks accepted in LoggerSettings.LogType
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// LoggerSettings selects the log sink and level.
// Path and rotation bounds are required for the file sink and ignored for the console.
type LoggerSettings struct {
	LogLevel   string `mapstructure:"log_level" validate:"required,oneof=debug info warning error critical"`
	LogType    string `mapstructure:"log_type" validate:"required,oneof=console file"`
	FilePath   string `mapstructure:"file_path" validate:"required_if=LogType file"`
	MaxSize    int    `mapstructure:"max_size" validate:"required_if=LogType file,omitempty,min=1,max=100"`
	MaxBackups int    `mapstructure:"max_backups" validate:"required_if=LogType file,omitempty,min=1,max=10"`
	MaxAge     int    `mapstructure:"max_age" validate:"required_if=LogType file,omitempty,min=1,max=365"`
}

// DefaultLoggerSettings returns console logging at info level.
func DefaultLoggerSettings() *LoggerSettings {
	return &LoggerSettings{
		LogLevel: LogLevelInfo,
		LogType:  LogTypeConsole,
	}
}

// Validate checks the LoggerSettings, skipping rotation bounds for the console sink
func (s *LoggerSettings) Validate() error {
	validate := validator.New()

	var err error
	if s.LogType == LogTypeFile {
		err = validate.Struct(s)
	} else {
		err = validate.StructPartial(s, "LogLevel", "LogType")
	}
	if err != nil {
		return fmt.Errorf("validation failed for LoggerSettings: %w", err)
	}

	return nil
}
