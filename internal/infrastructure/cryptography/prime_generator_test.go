//go:build unit
// +build unit

package cryptography

import (
	"errors"
	"math/big"
	"testing"
	"testing/iotest"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPrimeGenerator(t *testing.T, tester cryptoalg.PrimalityTester) cryptoalg.PrimeGenerator {
	t.Helper()
	generator, err := NewPrimeGenerator(tester, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return generator
}

func TestPrimeGenerator(t *testing.T) {
	generator := setupPrimeGenerator(t, setupTester(t))

	t.Run("GeneratePrime", func(t *testing.T) {
		p, err := generator.GeneratePrime(seededReader(t, "prime"), 64, 20, 10000)
		require.NoError(t, err)
		assert.Equal(t, 64, p.BitLen())
		assert.True(t, p.ProbablyPrime(20))
	})

	t.Run("IndependentMode", func(t *testing.T) {
		pair, err := generator.Generate(seededReader(t, "independent"), cryptoalg.KeyGenOptions{
			Mode:       keys.ModeIndependent,
			TargetBits: 128,
			Rounds:     20,
		})
		require.NoError(t, err)

		assert.Equal(t, keys.ModeIndependent, pair.Mode)
		assert.Nil(t, pair.Cofactor)
		assert.Equal(t, 64, pair.P.BitLen())
		assert.Equal(t, 64, pair.Q.BitLen())
		assert.NotEqual(t, 0, pair.P.Cmp(pair.Q))
		assert.True(t, pair.P.ProbablyPrime(20))
		assert.True(t, pair.Q.ProbablyPrime(20))
		assert.Equal(t, 128, new(big.Int).Mul(pair.P, pair.Q).BitLen())
	})

	t.Run("StructuredMode", func(t *testing.T) {
		pair, err := generator.Generate(seededReader(t, "structured"), cryptoalg.KeyGenOptions{
			Mode:         keys.ModeStructured,
			TargetBits:   128,
			SubprimeBits: 32,
			Rounds:       20,
		})
		require.NoError(t, err)

		assert.Equal(t, keys.ModeStructured, pair.Mode)
		assert.Equal(t, 32, pair.Q.BitLen())
		assert.Contains(t, []int{128, 129}, pair.P.BitLen())
		assert.True(t, pair.P.ProbablyPrime(20))
		assert.True(t, pair.Q.ProbablyPrime(20))

		cq := new(big.Int).Mul(pair.Cofactor, pair.Q)
		assert.Equal(t, 0, new(big.Int).Sub(pair.P, big.NewInt(1)).Cmp(cq), "p - 1 must equal c·q")
		assert.Equal(t, uint(0), pair.Cofactor.Bit(0), "an accepted cofactor is even")
	})

	t.Run("SameSeedSamePair", func(t *testing.T) {
		opts := cryptoalg.KeyGenOptions{Mode: keys.ModeStructured, TargetBits: 96, SubprimeBits: 24, Rounds: 10}

		a, err := generator.Generate(seededReader(t, "replay"), opts)
		require.NoError(t, err)
		b, err := generator.Generate(seededReader(t, "replay"), opts)
		require.NoError(t, err)

		assert.Equal(t, 0, a.P.Cmp(b.P))
		assert.Equal(t, 0, a.Q.Cmp(b.Q))
	})

	t.Run("RejectsInvalidOptions", func(t *testing.T) {
		rnd := seededReader(t, "invalid")
		for name, opts := range map[string]cryptoalg.KeyGenOptions{
			"unknown mode":        {Mode: "dsa", TargetBits: 128},
			"odd modulus":         {Mode: keys.ModeIndependent, TargetBits: 127},
			"tiny modulus":        {Mode: keys.ModeIndependent, TargetBits: 2},
			"modulus below 16":    {Mode: keys.ModeIndependent, TargetBits: 14},
			"subprime too large":  {Mode: keys.ModeStructured, TargetBits: 64, SubprimeBits: 64},
			"negative rounds":     {Mode: keys.ModeIndependent, TargetBits: 64, Rounds: -1},
			"negative cofactor":   {Mode: keys.ModeStructured, TargetBits: 64, SubprimeBits: 16, CofactorStep: -2},
			"negative candidates": {Mode: keys.ModeIndependent, TargetBits: 64, MaxCandidates: -1},
		} {
			_, err := generator.Generate(rnd, opts)
			assert.True(t, errors.Is(err, keys.ErrDomainViolation), name)
		}
	})

	t.Run("PropagatesRandomSourceFailure", func(t *testing.T) {
		_, err := generator.GeneratePrime(iotest.ErrReader(errors.New("no entropy")), 64, 20, 100)
		assert.True(t, errors.Is(err, keys.ErrRandomSource))
	})
}

func TestPrimeGeneratorExhaustion(t *testing.T) {
	t.Run("prime search gives up after maxCandidates", func(t *testing.T) {
		tester := new(MockPrimalityTester)
		tester.On("IsProbablyPrime", mock.Anything, mock.Anything, 5).Return(false, nil)
		generator := setupPrimeGenerator(t, tester)

		_, err := generator.GeneratePrime(seededReader(t, "exhaust"), 16, 5, 10)
		require.Error(t, err)
		assert.True(t, errors.Is(err, keys.ErrSearchExhausted))

		var exhausted *keys.SearchExhaustedError
		require.True(t, errors.As(err, &exhausted))
		assert.Equal(t, "prime", exhausted.Search)
		assert.Equal(t, 16, exhausted.Bits)
		assert.Equal(t, 10, exhausted.Attempts)
		tester.AssertNumberOfCalls(t, "IsProbablyPrime", 10)
	})

	t.Run("structured search gives up after subprime attempts", func(t *testing.T) {
		tester := new(MockPrimalityTester)
		subprime := mock.MatchedBy(func(c *big.Int) bool { return c.BitLen() == 16 })
		other := mock.MatchedBy(func(c *big.Int) bool { return c.BitLen() != 16 })
		tester.On("IsProbablyPrime", mock.Anything, subprime, 5).Return(true, nil)
		tester.On("IsProbablyPrime", mock.Anything, other, 5).Return(false, nil)
		generator := setupPrimeGenerator(t, tester)

		_, err := generator.Generate(seededReader(t, "exhaust-structured"), cryptoalg.KeyGenOptions{
			Mode:                keys.ModeStructured,
			TargetBits:          64,
			SubprimeBits:        16,
			Rounds:              5,
			MaxCandidates:       10,
			MaxCofactorAttempts: 5,
			MaxSubprimeAttempts: 3,
		})
		require.Error(t, err)

		var exhausted *keys.SearchExhaustedError
		require.True(t, errors.As(err, &exhausted))
		assert.Equal(t, "subprime", exhausted.Search)
		assert.Equal(t, 3, exhausted.Attempts)

		var walk *keys.SearchExhaustedError
		require.True(t, errors.As(exhausted.Last, &walk))
		assert.Equal(t, "cofactor", walk.Search)
		assert.Equal(t, 5, walk.Attempts)
	})

	t.Run("tester errors are not retried", func(t *testing.T) {
		tester := new(MockPrimalityTester)
		tester.On("IsProbablyPrime", mock.Anything, mock.Anything, 5).Return(false, keys.ErrRandomSource).Once()
		generator := setupPrimeGenerator(t, tester)

		_, err := generator.GeneratePrime(seededReader(t, "tester-error"), 16, 5, 10)
		assert.True(t, errors.Is(err, keys.ErrRandomSource))
		tester.AssertNumberOfCalls(t, "IsProbablyPrime", 1)
	})
}

func TestNewPrimeGeneratorRequiresTester(t *testing.T) {
	_, err := NewPrimeGenerator(nil, testutil.SetupTestLogger(t))
	assert.Error(t, err)
}
