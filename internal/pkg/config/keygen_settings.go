package config

import (
	"errors"
	"fmt"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/validators"
	"github.com/go-playground/validator/v10"
)

// Prime generation mode constants
const (
	PrimeModeIndependent = "independent"
	PrimeModeStructured  = "structured"
)

// Defaults mirror the DSA-style construction: a 3072-bit p walked from a 256-bit q.
const (
	DefaultModulusBits         = 3072
	DefaultSubprimeBits        = 256
	DefaultRounds              = 60
	DefaultCofactorStep        = 10
	DefaultMaxCofactorAttempts = 500
	DefaultMaxSubprimeAttempts = 200
	DefaultMaxCandidates       = 100000
	DefaultMaxKeyAttempts      = 16
)

// KeyGenSettings configures prime search and RSA key derivation.
//
// ModulusBits is the bit length of n in independent mode and the target
// bit length of p in structured mode.
type KeyGenSettings struct {
	Mode                string `mapstructure:"mode" validate:"required,oneof=independent structured"`
	ModulusBits         int    `mapstructure:"modulus_bits" validate:"required,primeBitSize"`
	SubprimeBits        int    `mapstructure:"subprime_bits" validate:"subprimeBitSize"`
	Rounds              int    `mapstructure:"rounds" validate:"required,min=1,max=256"`
	CofactorStep        int    `mapstructure:"cofactor_step" validate:"required,min=1"`
	MaxCofactorAttempts int    `mapstructure:"max_cofactor_attempts" validate:"required,min=1"`
	MaxSubprimeAttempts int    `mapstructure:"max_subprime_attempts" validate:"required,min=1"`
	MaxCandidates       int    `mapstructure:"max_candidates" validate:"required,min=1"`
	MaxKeyAttempts      int    `mapstructure:"max_key_attempts" validate:"required,min=1"`
}

// DefaultKeyGenSettings returns structured-mode settings with the original search constants.
func DefaultKeyGenSettings() *KeyGenSettings {
	return &KeyGenSettings{
		Mode:                PrimeModeStructured,
		ModulusBits:         DefaultModulusBits,
		SubprimeBits:        DefaultSubprimeBits,
		Rounds:              DefaultRounds,
		CofactorStep:        DefaultCofactorStep,
		MaxCofactorAttempts: DefaultMaxCofactorAttempts,
		MaxSubprimeAttempts: DefaultMaxSubprimeAttempts,
		MaxCandidates:       DefaultMaxCandidates,
		MaxKeyAttempts:      DefaultMaxKeyAttempts,
	}
}

// Validate checks that all fields in KeyGenSettings are valid
func (s *KeyGenSettings) Validate() error {
	validate := validator.New()

	if err := validate.RegisterValidation("primeBitSize", validators.PrimeBitSizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}
	if err := validate.RegisterValidation("subprimeBitSize", validators.SubprimeBitSizeValidation); err != nil {
		return fmt.Errorf("failed to register custom validator: %w", err)
	}

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
