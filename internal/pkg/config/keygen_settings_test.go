//go:build unit
// +build unit

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyGenSettingsValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(s *KeyGenSettings)
		expectedErr string
	}{
		{
			name:   "defaults",
			mutate: func(_ *KeyGenSettings) {},
		},
		{
			name: "independent mode ignores subprime bits",
			mutate: func(s *KeyGenSettings) {
				s.Mode = PrimeModeIndependent
				s.ModulusBits = 2048
				s.SubprimeBits = 0
			},
		},
		{
			name: "unknown mode",
			mutate: func(s *KeyGenSettings) {
				s.Mode = "safe-prime"
			},
			expectedErr: "Field: Mode, Tag: oneof",
		},
		{
			name: "odd modulus bits",
			mutate: func(s *KeyGenSettings) {
				s.ModulusBits = 1025
			},
			expectedErr: "Field: ModulusBits, Tag: primeBitSize",
		},
		{
			name: "subprime not smaller than p",
			mutate: func(s *KeyGenSettings) {
				s.ModulusBits = 256
				s.SubprimeBits = 256
			},
			expectedErr: "Field: SubprimeBits, Tag: subprimeBitSize",
		},
		{
			name: "zero rounds",
			mutate: func(s *KeyGenSettings) {
				s.Rounds = 0
			},
			expectedErr: "Field: Rounds, Tag: required",
		},
		{
			name: "unit cofactor step",
			mutate: func(s *KeyGenSettings) {
				s.CofactorStep = 1
			},
		},
		{
			name: "negative cofactor step",
			mutate: func(s *KeyGenSettings) {
				s.CofactorStep = -10
			},
			expectedErr: "Field: CofactorStep, Tag: min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultKeyGenSettings()
			tt.mutate(settings)

			err := settings.Validate()
			if tt.expectedErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}
