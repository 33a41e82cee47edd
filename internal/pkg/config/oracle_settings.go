package config

import (
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxBlindingAttempts bounds the blinding-factor search of one forgery.
const DefaultMaxBlindingAttempts = 64

// OracleSettings configures the signing oracle and the forgery run against it.
type OracleSettings struct {
	// RefusedMessages are decimal integers the oracle declines to sign directly.
	RefusedMessages     []string `mapstructure:"refused_messages" validate:"dive,numeric"`
	MaxBlindingAttempts int      `mapstructure:"max_blinding_attempts" validate:"required,min=1"`
}

// Validate checks that all fields in OracleSettings are valid
func (s *OracleSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for OracleSettings: %w", err)
	}

	return nil
}

// RefusedIntegers parses RefusedMessages into big integers.
func (s *OracleSettings) RefusedIntegers() ([]*big.Int, error) {
	refused := make([]*big.Int, 0, len(s.RefusedMessages))
	for _, msg := range s.RefusedMessages {
		m, ok := new(big.Int).SetString(msg, 10)
		if !ok || m.Sign() < 0 {
			return nil, fmt.Errorf("invalid refused message %q", msg)
		}
		refused = append(refused, m)
	}
	return refused, nil
}

// OracleConnectorSettings configures the HTTP client used to reach a remote signing oracle.
type OracleConnectorSettings struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"required,min=1"`
}

// Validate checks that all fields in OracleConnectorSettings are valid
func (s *OracleConnectorSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for OracleConnectorSettings: %w", err)
	}

	return nil
}
