package cryptography

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// rsaKeyFactory struct that implements the RSAKeyFactory interface
type rsaKeyFactory struct {
	generator cryptoalg.PrimeGenerator
	tester    cryptoalg.PrimalityTester
	logger    logger.Logger
}

// NewRSAKeyFactory creates and returns a new instance of rsaKeyFactory
func NewRSAKeyFactory(generator cryptoalg.PrimeGenerator, tester cryptoalg.PrimalityTester, logger logger.Logger) (cryptoalg.RSAKeyFactory, error) {
	if generator == nil {
		return nil, errors.New("prime generator cannot be nil")
	}
	if tester == nil {
		return nil, errors.New("primality tester cannot be nil")
	}
	return &rsaKeyFactory{
		generator: generator,
		tester:    tester,
		logger:    logger,
	}, nil
}

// Generate searches a prime pair and derives n, e = 65537 and d = e⁻¹ mod φ(n).
// When e has no inverse the primes are discarded and regenerated, at most
// MaxKeyAttempts times.
func (f *rsaKeyFactory) Generate(rnd io.Reader, opts cryptoalg.KeyGenOptions) (*keys.KeyPair, error) {
	opts = withDefaults(opts)

	var last error
	for attempt := 1; attempt <= opts.MaxKeyAttempts; attempt++ {
		pair, err := f.generator.Generate(rnd, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to generate prime pair: %w", err)
		}

		kp, err := keys.NewKeyPair(pair)
		if errors.Is(err, keys.ErrNoModularInverse) {
			f.logger.Warn("Public exponent has no inverse for prime pair attempt ", attempt, ", regenerating primes")
			last = err
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to derive key pair: %w", err)
		}

		f.logger.Info("Generated RSA key pair with ", kp.Public().N.BitLen(), "-bit modulus in ", string(opts.Mode), " mode")
		return kp, nil
	}

	return nil, &keys.SearchExhaustedError{
		Search:   "key",
		Bits:     opts.TargetBits,
		Rounds:   opts.Rounds,
		Attempts: opts.MaxKeyAttempts,
		Last:     last,
	}
}

// FromPrimes verifies p and q with the primality tester and derives a KeyPair from them.
// A structured relation p − 1 = c·q is detected and recorded.
func (f *rsaKeyFactory) FromPrimes(rnd io.Reader, p, q *big.Int, rounds int) (*keys.KeyPair, error) {
	if p == nil || q == nil {
		return nil, keys.DomainViolation("p and q are required")
	}

	for _, prime := range []struct {
		name  string
		value *big.Int
	}{{"p", p}, {"q", q}} {
		ok, err := f.tester.IsProbablyPrime(rnd, prime.value, rounds)
		if err != nil {
			return nil, fmt.Errorf("failed to verify %s: %w", prime.name, err)
		}
		if !ok {
			return nil, keys.DomainViolation("%s is not prime", prime.name)
		}
	}

	pair := &keys.PrimePair{P: p, Q: q, Mode: keys.ModeIndependent}
	if c, rem := new(big.Int).QuoRem(new(big.Int).Sub(p, one), q, new(big.Int)); rem.Sign() == 0 && c.Sign() > 0 {
		pair.Cofactor = c
		pair.Mode = keys.ModeStructured
	}

	kp, err := keys.NewKeyPair(pair)
	if err != nil {
		return nil, fmt.Errorf("failed to derive key pair: %w", err)
	}

	f.logger.Info("Derived RSA key pair with ", kp.Public().N.BitLen(), "-bit modulus from given primes")
	return kp, nil
}
