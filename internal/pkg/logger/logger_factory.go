package logger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
)

// ErrLoggerNotInitialized is returned by GetLogger before a successful InitLogger.
var ErrLoggerNotInitialized = errors.New("logger not initialized: call InitLogger first")

var (
	mu      sync.RWMutex
	current Logger
)

// InitLogger installs the process-wide logger. Once a logger is installed later calls are no-ops,
// a failed call leaves the logger unset so it may be retried with corrected settings.
func InitLogger(settings *config.LoggerSettings) error {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return nil
	}

	l, err := New(settings)
	if err != nil {
		return err
	}
	current = l
	return nil
}

// GetLogger returns the logger installed by InitLogger.
func GetLogger() (Logger, error) {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil {
		return nil, ErrLoggerNotInitialized
	}
	return current, nil
}

// New builds a logger from settings without installing it.
func New(settings *config.LoggerSettings) (Logger, error) {
	if settings == nil {
		return nil, errors.New("logger settings cannot be nil")
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	switch settings.LogType {
	case config.LogTypeFile:
		return NewFileLogger(settings), nil
	default:
		return NewConsoleLogger(settings.LogLevel), nil
	}
}
