package cryptography

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// primeGenerator struct that implements the PrimeGenerator interface
type primeGenerator struct {
	tester cryptoalg.PrimalityTester
	logger logger.Logger
}

// NewPrimeGenerator creates and returns a new instance of primeGenerator
func NewPrimeGenerator(tester cryptoalg.PrimalityTester, logger logger.Logger) (cryptoalg.PrimeGenerator, error) {
	if tester == nil {
		return nil, errors.New("primality tester cannot be nil")
	}
	return &primeGenerator{
		tester: tester,
		logger: logger,
	}, nil
}

// withDefaults fills zero fields of opts with the configured defaults
func withDefaults(opts cryptoalg.KeyGenOptions) cryptoalg.KeyGenOptions {
	if opts.Rounds == 0 {
		opts.Rounds = config.DefaultRounds
	}
	if opts.SubprimeBits == 0 {
		opts.SubprimeBits = opts.TargetBits / 2
	}
	if opts.MaxCandidates == 0 {
		opts.MaxCandidates = config.DefaultMaxCandidates
	}
	if opts.MaxCofactorAttempts == 0 {
		opts.MaxCofactorAttempts = config.DefaultMaxCofactorAttempts
	}
	if opts.MaxSubprimeAttempts == 0 {
		opts.MaxSubprimeAttempts = config.DefaultMaxSubprimeAttempts
	}
	if opts.CofactorStep == 0 {
		opts.CofactorStep = config.DefaultCofactorStep
	}
	if opts.MaxKeyAttempts == 0 {
		opts.MaxKeyAttempts = config.DefaultMaxKeyAttempts
	}
	return opts
}

const minIndependentModulusBits = 16

func validateOptions(opts cryptoalg.KeyGenOptions) error {
	if opts.Rounds < 1 {
		return keys.DomainViolation("rounds must be at least 1, got %d", opts.Rounds)
	}
	if opts.MaxCandidates < 1 || opts.MaxCofactorAttempts < 1 || opts.MaxSubprimeAttempts < 1 || opts.MaxKeyAttempts < 1 {
		return keys.DomainViolation("search ceilings must be positive")
	}

	switch opts.Mode {
	case keys.ModeIndependent:
		// below 16 bits the halves have too few primes to draw p != q reliably
		if opts.TargetBits < minIndependentModulusBits || opts.TargetBits%2 != 0 {
			return keys.DomainViolation("modulus size must be even and at least %d bits, got %d", minIndependentModulusBits, opts.TargetBits)
		}
	case keys.ModeStructured:
		if opts.SubprimeBits < 2 || opts.SubprimeBits >= opts.TargetBits {
			return keys.DomainViolation("subprime size must be in [2, %d), got %d", opts.TargetBits, opts.SubprimeBits)
		}
		if opts.CofactorStep < 1 {
			return keys.DomainViolation("cofactor step must be positive, got %d", opts.CofactorStep)
		}
	default:
		return keys.DomainViolation("unknown prime mode %q", opts.Mode)
	}
	return nil
}

// GeneratePrime draws random odd candidates of exactly bits bits until one
// passes the primality tester or maxCandidates have been rejected.
func (g *primeGenerator) GeneratePrime(rnd io.Reader, bits, rounds, maxCandidates int) (*big.Int, error) {
	if maxCandidates < 1 {
		return nil, keys.DomainViolation("candidate ceiling must be positive, got %d", maxCandidates)
	}

	for attempt := 1; attempt <= maxCandidates; attempt++ {
		candidate, err := randomCandidate(rnd, bits)
		if err != nil {
			return nil, err
		}

		ok, err := g.tester.IsProbablyPrime(rnd, candidate.Value, rounds)
		if err != nil {
			return nil, fmt.Errorf("failed to test %s candidate: %w", candidate.Source, err)
		}
		if ok {
			g.logger.Debug("Found ", bits, "-bit prime after ", attempt, " candidates")
			return candidate.Value, nil
		}
	}

	return nil, &keys.SearchExhaustedError{Search: "prime", Bits: bits, Rounds: rounds, Attempts: maxCandidates}
}

// Generate returns a verified prime pair for the requested mode
func (g *primeGenerator) Generate(rnd io.Reader, opts cryptoalg.KeyGenOptions) (*keys.PrimePair, error) {
	opts = withDefaults(opts)
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	var (
		pair *keys.PrimePair
		err  error
	)
	switch opts.Mode {
	case keys.ModeIndependent:
		pair, err = g.generateIndependent(rnd, opts)
	default:
		pair, err = g.generateStructured(rnd, opts)
	}
	if err != nil {
		return nil, err
	}

	g.logger.Info("Generated ", string(opts.Mode), " prime pair with p of ", pair.P.BitLen(), " bits and q of ", pair.Q.BitLen(), " bits")
	return pair, nil
}

// generateIndependent draws p then q from the same stream, each of half the modulus size.
func (g *primeGenerator) generateIndependent(rnd io.Reader, opts cryptoalg.KeyGenOptions) (*keys.PrimePair, error) {
	half := opts.TargetBits / 2

	p, err := g.GeneratePrime(rnd, half, opts.Rounds, opts.MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("failed to generate p: %w", err)
	}

	for attempt := 1; attempt <= opts.MaxCandidates; attempt++ {
		q, err := g.GeneratePrime(rnd, half, opts.Rounds, opts.MaxCandidates)
		if err != nil {
			return nil, fmt.Errorf("failed to generate q: %w", err)
		}
		if q.Cmp(p) != 0 {
			return &keys.PrimePair{P: p, Q: q, Mode: keys.ModeIndependent}, nil
		}
		g.logger.Warn("Drew q equal to p, redrawing q")
	}

	return nil, &keys.SearchExhaustedError{Search: "distinct prime", Bits: half, Rounds: opts.Rounds, Attempts: opts.MaxCandidates}
}

// generateStructured searches p = c·q + 1 for a subprime q, starting from
// c = floor((2^TargetBits − 1)/q) and stepping c by CofactorStep. p ends up with
// TargetBits or TargetBits+1 bits. The step preserves the parity of c, so a q
// yielding an odd start cofactor only produces even candidates and is replaced
// once the cofactor walk is exhausted.
func (g *primeGenerator) generateStructured(rnd io.Reader, opts cryptoalg.KeyGenOptions) (*keys.PrimePair, error) {
	limit := new(big.Int).Lsh(one, uint(opts.TargetBits))
	limit.Sub(limit, one)

	var last error
	for attempt := 1; attempt <= opts.MaxSubprimeAttempts; attempt++ {
		q, err := g.GeneratePrime(rnd, opts.SubprimeBits, opts.Rounds, opts.MaxCandidates)
		if err != nil {
			return nil, fmt.Errorf("failed to generate subprime q: %w", err)
		}
		subprime := &primeCandidate{Value: q, Source: sourceSubprime}

		c := new(big.Int).Quo(limit, subprime.Value)
		pair, err := g.walkCofactor(rnd, subprime.Value, c, opts)
		if err == nil {
			return pair, nil
		}
		if !errors.Is(err, keys.ErrSearchExhausted) {
			return nil, err
		}

		g.logger.Debug("Cofactor walk exhausted for subprime attempt ", attempt, ", drawing new q")
		last = err
	}

	return nil, &keys.SearchExhaustedError{
		Search:   "subprime",
		Bits:     opts.SubprimeBits,
		Rounds:   opts.Rounds,
		Attempts: opts.MaxSubprimeAttempts,
		Last:     last,
	}
}

// walkCofactor tests p = c·q + 1 for c, c+step, c+2·step, ... Candidates are
// filtered with a Baillie-PSW test, and an accepted p is confirmed together
// with q by the configured primality tester.
func (g *primeGenerator) walkCofactor(rnd io.Reader, q, start *big.Int, opts cryptoalg.KeyGenOptions) (*keys.PrimePair, error) {
	step := big.NewInt(int64(opts.CofactorStep))
	c := new(big.Int).Set(start)

	for attempt := 1; attempt <= opts.MaxCofactorAttempts; attempt++ {
		p := new(big.Int).Mul(c, q)
		p.Add(p, one)
		candidate := &primeCandidate{Value: p, Source: sourceCofactorWalk}

		if candidate.Value.ProbablyPrime(0) {
			pair := &keys.PrimePair{P: candidate.Value, Q: q, Cofactor: new(big.Int).Set(c), Mode: keys.ModeStructured}
			if err := pair.Validate(); err != nil {
				return nil, err
			}

			ok, err := g.verifyPair(rnd, pair, opts.Rounds)
			if err != nil {
				return nil, err
			}
			if ok {
				g.logger.Debug("Accepted cofactor after ", attempt, " steps")
				return pair, nil
			}
		}

		c.Add(c, step)
	}

	return nil, &keys.SearchExhaustedError{Search: "cofactor", Bits: opts.TargetBits, Rounds: opts.Rounds, Attempts: opts.MaxCofactorAttempts}
}

// verifyPair runs the primality tester on p and q independently
func (g *primeGenerator) verifyPair(rnd io.Reader, pair *keys.PrimePair, rounds int) (bool, error) {
	ok, err := g.tester.IsProbablyPrime(rnd, pair.P, rounds)
	if err != nil {
		return false, fmt.Errorf("failed to verify p: %w", err)
	}
	if !ok {
		return false, nil
	}

	ok, err = g.tester.IsProbablyPrime(rnd, pair.Q, rounds)
	if err != nil {
		return false, fmt.Errorf("failed to verify q: %w", err)
	}
	return ok, nil
}
