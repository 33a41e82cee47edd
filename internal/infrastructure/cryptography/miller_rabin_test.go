//go:build unit
// +build unit

package cryptography

import (
	"errors"
	"math/big"
	"testing"
	"testing/iotest"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInt(t *testing.T, s string) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, 10)
	require.True(t, ok, "invalid integer %q", s)
	return v
}

func TestMillerRabinTester(t *testing.T) {
	tester := setupTester(t)

	t.Run("accepts primes", func(t *testing.T) {
		rnd := seededReader(t, "primes")
		for _, p := range []string{
			"5", "7", "65537", "4294967291", "4294967279",
			"2305843009213693951",                     // 2^61 − 1
			"170141183460469231731687303715884105727", // 2^127 − 1
		} {
			ok, err := tester.IsProbablyPrime(rnd, mustInt(t, p), 20)
			require.NoError(t, err)
			assert.True(t, ok, "%s should be prime", p)
		}
	})

	t.Run("rejects composites", func(t *testing.T) {
		rnd := seededReader(t, "composites")
		for _, c := range []string{
			"9", "15", "2047", "4294967293", "4294967295",
			"561", "1105", "41041", "825265", // Carmichael numbers
			"18446743979220271189", // 4294967291 · 4294967279
		} {
			ok, err := tester.IsProbablyPrime(rnd, mustInt(t, c), 20)
			require.NoError(t, err)
			assert.False(t, ok, "%s should be composite", c)
		}
	})

	t.Run("answers small and even candidates without sampling", func(t *testing.T) {
		broken := iotest.ErrReader(errors.New("must not be read"))

		ok, err := tester.IsProbablyPrime(broken, big.NewInt(2), 10)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = tester.IsProbablyPrime(broken, big.NewInt(3), 10)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = tester.IsProbablyPrime(broken, big.NewInt(1<<40), 10)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		rnd := seededReader(t, "invalid")
		for _, c := range []*big.Int{nil, big.NewInt(-7), big.NewInt(0), big.NewInt(1)} {
			_, err := tester.IsProbablyPrime(rnd, c, 10)
			assert.True(t, errors.Is(err, keys.ErrDomainViolation))
		}

		_, err := tester.IsProbablyPrime(rnd, big.NewInt(65537), 0)
		assert.True(t, errors.Is(err, keys.ErrDomainViolation))
	})

	t.Run("propagates random source failures", func(t *testing.T) {
		_, err := tester.IsProbablyPrime(iotest.ErrReader(errors.New("device unplugged")), big.NewInt(65537), 10)
		assert.True(t, errors.Is(err, keys.ErrRandomSource))
	})

	t.Run("agrees with math/big on small odd integers", func(t *testing.T) {
		rnd := seededReader(t, "small")
		for n := int64(5); n < 3000; n += 2 {
			v := big.NewInt(n)
			ok, err := tester.IsProbablyPrime(rnd, v, 20)
			require.NoError(t, err)
			require.Equal(t, v.ProbablyPrime(20), ok, "disagreement on %d", n)
		}
	})
}
