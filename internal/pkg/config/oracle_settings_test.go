//go:build unit
// +build unit

package config

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOracleSettings(t *testing.T) {
	t.Run("valid refused messages", func(t *testing.T) {
		settings := &OracleSettings{
			RefusedMessages:     []string{"4", "123456789012345678901234567890"},
			MaxBlindingAttempts: DefaultMaxBlindingAttempts,
		}
		require.NoError(t, settings.Validate())

		refused, err := settings.RefusedIntegers()
		require.NoError(t, err)
		require.Len(t, refused, 2)
		assert.Equal(t, 0, refused[0].Cmp(big.NewInt(4)))
	})

	t.Run("non numeric refused message", func(t *testing.T) {
		settings := &OracleSettings{
			RefusedMessages:     []string{"four"},
			MaxBlindingAttempts: 1,
		}
		assert.Error(t, settings.Validate())

		_, err := settings.RefusedIntegers()
		assert.Error(t, err)
	})

	t.Run("zero blinding attempts", func(t *testing.T) {
		settings := &OracleSettings{}
		assert.Error(t, settings.Validate())
	})
}

func TestOracleConnectorSettings(t *testing.T) {
	valid := &OracleConnectorSettings{BaseURL: "http://localhost:8080", Timeout: 5 * time.Second}
	assert.NoError(t, valid.Validate())

	missingURL := &OracleConnectorSettings{Timeout: time.Second}
	assert.Error(t, missingURL.Validate())

	missingTimeout := &OracleConnectorSettings{BaseURL: "http://localhost:8080"}
	assert.Error(t, missingTimeout.Validate())
}
