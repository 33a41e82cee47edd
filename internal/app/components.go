package app

import (
	"fmt"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// CryptoComponents bundles the core components sharing one logger
type CryptoComponents struct {
	Tester     cryptoalg.PrimalityTester
	Generator  cryptoalg.PrimeGenerator
	KeyFactory cryptoalg.RSAKeyFactory
	Engine     cryptoalg.SignatureEngine
	Forger     cryptoalg.ForgeryOracle
}

// NewCryptoComponents creates the primality tester, prime generator, key factory,
// signature engine and forgery oracle.
func NewCryptoComponents(maxBlindingAttempts int, logger logger.Logger) (*CryptoComponents, error) {
	tester, err := cryptography.NewMillerRabinTester(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create primality tester: %w", err)
	}

	generator, err := cryptography.NewPrimeGenerator(tester, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create prime generator: %w", err)
	}

	keyFactory, err := cryptography.NewRSAKeyFactory(generator, tester, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create key factory: %w", err)
	}

	engine, err := cryptography.NewSignatureEngine(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create signature engine: %w", err)
	}

	forger, err := cryptography.NewForgeryOracle(engine, maxBlindingAttempts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create forgery oracle: %w", err)
	}

	return &CryptoComponents{
		Tester:     tester,
		Generator:  generator,
		KeyFactory: keyFactory,
		Engine:     engine,
		Forger:     forger,
	}, nil
}

// KeyGenOptionsFromSettings converts validated settings into generation options
func KeyGenOptionsFromSettings(settings *config.KeyGenSettings) (cryptoalg.KeyGenOptions, error) {
	mode, err := keys.ParsePrimeMode(settings.Mode)
	if err != nil {
		return cryptoalg.KeyGenOptions{}, err
	}

	return cryptoalg.KeyGenOptions{
		Mode:                mode,
		TargetBits:          settings.ModulusBits,
		SubprimeBits:        settings.SubprimeBits,
		Rounds:              settings.Rounds,
		MaxCandidates:       settings.MaxCandidates,
		MaxCofactorAttempts: settings.MaxCofactorAttempts,
		MaxSubprimeAttempts: settings.MaxSubprimeAttempts,
		CofactorStep:        settings.CofactorStep,
		MaxKeyAttempts:      settings.MaxKeyAttempts,
	}, nil
}
