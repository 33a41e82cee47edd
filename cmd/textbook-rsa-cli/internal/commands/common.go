package commands

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/MGTheTrain/textbook-rsa/internal/app"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func setupLogger() (logger.Logger, error) {
	settings := &config.LoggerSettings{
		LogLevel: "info",
		LogType:  "console",
		FilePath: "",
	}

	if err := logger.InitLogger(settings); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return loggerInstance, nil
}

// setupComponents creates the logger and the core components shared by every handler
func setupComponents() (*app.CryptoComponents, logger.Logger, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	components, err := app.NewCryptoComponents(config.DefaultMaxBlindingAttempts, loggerInstance)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create crypto components: %w", err)
	}

	return components, loggerInstance, nil
}

// randomSource returns crypto/rand.Reader, or a reproducible stream when seed is set
func randomSource(seed string) (io.Reader, error) {
	if seed == "" {
		return rand.Reader, nil
	}
	return cryptography.NewDeterministicReader([]byte(seed))
}

// addKeyGenFlags registers the prime search flags with the given defaults
func addKeyGenFlags(cmd *cobra.Command, defaults *config.KeyGenSettings) {
	cmd.Flags().StringP("mode", "", defaults.Mode, "Prime construction: independent or structured (p-1 = c*q)")
	cmd.Flags().IntP("modulus-bits", "", defaults.ModulusBits, "Bit length of n (independent) or of p (structured)")
	cmd.Flags().IntP("subprime-bits", "", defaults.SubprimeBits, "Bit length of the subprime q in structured mode")
	cmd.Flags().IntP("rounds", "", defaults.Rounds, "Miller-Rabin rounds")
	cmd.Flags().IntP("cofactor-step", "", defaults.CofactorStep, "Increment of the cofactor c per structured attempt")
	cmd.Flags().IntP("max-cofactor-attempts", "", defaults.MaxCofactorAttempts, "Cofactor attempts per subprime")
	cmd.Flags().IntP("max-subprime-attempts", "", defaults.MaxSubprimeAttempts, "Subprimes tried before giving up")
	cmd.Flags().IntP("max-candidates", "", defaults.MaxCandidates, "Random candidates tried per prime")
	cmd.Flags().IntP("max-key-attempts", "", defaults.MaxKeyAttempts, "Prime pairs tried until e is invertible")
	cmd.Flags().StringP("seed", "", "", "Seed for a reproducible run (insecure, testing only)")
}

// keyGenOptionsFromFlags reads and validates the flags registered by addKeyGenFlags
func keyGenOptionsFromFlags(cmd *cobra.Command) (cryptoalg.KeyGenOptions, error) {
	settings := &config.KeyGenSettings{}
	var err error

	if settings.Mode, err = cmd.Flags().GetString("mode"); err != nil {
		return cryptoalg.KeyGenOptions{}, fmt.Errorf("invalid mode flag: %w", err)
	}

	ints := []struct {
		name  string
		field *int
	}{
		{"modulus-bits", &settings.ModulusBits},
		{"subprime-bits", &settings.SubprimeBits},
		{"rounds", &settings.Rounds},
		{"cofactor-step", &settings.CofactorStep},
		{"max-cofactor-attempts", &settings.MaxCofactorAttempts},
		{"max-subprime-attempts", &settings.MaxSubprimeAttempts},
		{"max-candidates", &settings.MaxCandidates},
		{"max-key-attempts", &settings.MaxKeyAttempts},
	}
	for _, f := range ints {
		if *f.field, err = cmd.Flags().GetInt(f.name); err != nil {
			return cryptoalg.KeyGenOptions{}, fmt.Errorf("invalid %s flag: %w", f.name, err)
		}
	}

	if err := settings.Validate(); err != nil {
		return cryptoalg.KeyGenOptions{}, err
	}

	return app.KeyGenOptionsFromSettings(settings)
}

// independentDefaults are the key generation defaults of sign-verify and forge
func independentDefaults() *config.KeyGenSettings {
	settings := config.DefaultKeyGenSettings()
	settings.Mode = config.PrimeModeIndependent
	settings.ModulusBits = 1024
	settings.SubprimeBits = 0
	settings.Rounds = 40
	return settings
}
