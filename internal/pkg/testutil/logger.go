package testutil

import (
	"fmt"
	"sync"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
	"github.com/stretchr/testify/require"
)

// SetupTestLogger sets up a logger for testing purposes.
func SetupTestLogger(t *testing.T) logger.Logger {
	t.Helper()

	err := logger.InitLogger(&config.LoggerSettings{
		LogLevel: config.LogLevelInfo,
		LogType:  config.LogTypeConsole,
	})
	require.NoError(t, err)

	log, err := logger.GetLogger()
	require.NoError(t, err)

	return log
}

// RecordingLogger keeps every message so tests can assert on what was logged.
type RecordingLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (r *RecordingLogger) record(level string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, level+" "+fmt.Sprint(args...))
}

// Debug records a debug message.
func (r *RecordingLogger) Debug(args ...interface{}) { r.record("DEBUG", args...) }

// Info records an info message.
func (r *RecordingLogger) Info(args ...interface{}) { r.record("INFO", args...) }

// Warn records a warning message.
func (r *RecordingLogger) Warn(args ...interface{}) { r.record("WARN", args...) }

// Error records an error message.
func (r *RecordingLogger) Error(args ...interface{}) { r.record("ERROR", args...) }

// Fatal records a fatal message without exiting.
func (r *RecordingLogger) Fatal(args ...interface{}) { r.record("FATAL", args...) }

// Panic records a message and panics.
func (r *RecordingLogger) Panic(args ...interface{}) {
	r.record("PANIC", args...)
	panic(fmt.Sprint(args...))
}

// Snapshot returns a copy of the recorded messages.
func (r *RecordingLogger) Snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Messages...)
}
