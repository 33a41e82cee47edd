//go:build unit
// +build unit

package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileSettings(t *testing.T, level string) *config.LoggerSettings {
	return &config.LoggerSettings{
		LogLevel:   level,
		LogType:    config.LogTypeFile,
		FilePath:   filepath.Join(t.TempDir(), "textbook-rsa.log"),
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
	}
}

func TestNewFileLogger_WritesJSONRecords(t *testing.T) {
	settings := fileSettings(t, config.LogLevelDebug)

	l := NewFileLogger(settings)
	require.NotNil(t, l)

	l.Debug("candidate rejected")
	l.Warn("phi shares a factor with e")
	assert.Panics(t, func() { l.Panic("journal lost") })

	content, err := os.ReadFile(settings.FilePath)
	require.NoError(t, err)

	out := string(content)
	assert.Contains(t, out, `"msg":"candidate rejected"`)
	assert.Contains(t, out, `"level":"DEBUG"`)
	assert.Contains(t, out, `"level":"WARN"`)
	assert.Contains(t, out, `"level":"CRITICAL"`)
}

func TestNewFileLogger_FiltersBelowLevel(t *testing.T) {
	settings := fileSettings(t, config.LogLevelError)

	l := NewFileLogger(settings)
	l.Info("key pair generated")
	l.Error("oracle unreachable")

	content, err := os.ReadFile(settings.FilePath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "key pair generated")
	assert.Contains(t, string(content), "oracle unreachable")
}
