package cryptography

import (
	"io"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

var four = big.NewInt(4)

// millerRabinTester struct that implements the PrimalityTester interface
type millerRabinTester struct {
	logger logger.Logger
}

// NewMillerRabinTester creates and returns a new instance of millerRabinTester
func NewMillerRabinTester(logger logger.Logger) (cryptoalg.PrimalityTester, error) {
	return &millerRabinTester{
		logger: logger,
	}, nil
}

// IsProbablyPrime runs rounds strong-probable-prime tests, each with a base
// drawn uniformly from [2, candidate−2]. The first witness of compositeness
// ends the test.
func (t *millerRabinTester) IsProbablyPrime(rnd io.Reader, candidate *big.Int, rounds int) (bool, error) {
	if rounds < 1 {
		return false, keys.DomainViolation("rounds must be at least 1, got %d", rounds)
	}
	if candidate == nil || candidate.Cmp(two) < 0 {
		return false, keys.DomainViolation("primality candidate must be at least 2")
	}

	// 2 and 3 have no base in [2, n−2] to sample
	if candidate.Cmp(four) < 0 {
		return true, nil
	}
	if candidate.Bit(0) == 0 {
		return false, nil
	}

	nMinusOne := new(big.Int).Sub(candidate, one)
	nMinusTwo := new(big.Int).Sub(candidate, two)
	s := nMinusOne.TrailingZeroBits()
	d := new(big.Int).Rsh(nMinusOne, s)

	for i := 0; i < rounds; i++ {
		base, err := randomInRange(rnd, two, nMinusTwo)
		if err != nil {
			return false, err
		}
		if !isStrongProbablePrime(candidate, nMinusOne, base, d, s) {
			t.logger.Debug("Found Miller-Rabin witness in round ", i+1, " for a ", candidate.BitLen(), "-bit candidate")
			return false, nil
		}
	}

	return true, nil
}

// isStrongProbablePrime tests n against one base, where n−1 = 2^s·d with d odd.
func isStrongProbablePrime(n, nMinusOne, base, d *big.Int, s uint) bool {
	x := new(big.Int).Exp(base, d, n)
	if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
		return true
	}
	for r := uint(1); r < s; r++ {
		x.Mul(x, x).Mod(x, n)
		if x.Cmp(nMinusOne) == 0 {
			return true
		}
		if x.Cmp(one) == 0 {
			return false
		}
	}
	return false
}
