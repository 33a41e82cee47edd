//go:build unit
// +build unit

package keys

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKeyPair(t *testing.T) {
	t.Run("derives n, e and d from independent primes", func(t *testing.T) {
		kp, err := NewKeyPair(&PrimePair{P: big.NewInt(61), Q: big.NewInt(53), Mode: ModeIndependent})
		require.NoError(t, err)

		pub := kp.Public()
		priv := kp.Private()
		assert.Equal(t, int64(3233), pub.N.Int64())
		assert.Equal(t, int64(PublicExponent), pub.E.Int64())

		ed := new(big.Int).Mul(pub.E, priv.D)
		assert.Equal(t, int64(1), ed.Mod(ed, big.NewInt(3120)).Int64())
		assert.Equal(t, 0, priv.Modulus().Cmp(pub.N))
	})

	t.Run("keeps the structured relation", func(t *testing.T) {
		kp, err := NewKeyPair(&PrimePair{P: big.NewInt(23), Q: big.NewInt(11), Cofactor: big.NewInt(2), Mode: ModeStructured})
		require.NoError(t, err)
		assert.Equal(t, int64(2), kp.Primes().Cofactor.Int64())
	})

	t.Run("rejects equal primes", func(t *testing.T) {
		_, err := NewKeyPair(&PrimePair{P: big.NewInt(61), Q: big.NewInt(61), Mode: ModeIndependent})
		assert.True(t, errors.Is(err, ErrDomainViolation))
	})

	t.Run("rejects a broken structured relation", func(t *testing.T) {
		_, err := NewKeyPair(&PrimePair{P: big.NewInt(29), Q: big.NewInt(11), Cofactor: big.NewInt(2), Mode: ModeStructured})
		assert.True(t, errors.Is(err, ErrDomainViolation))
	})

	t.Run("reports a missing inverse when e divides p-1", func(t *testing.T) {
		// 131075 - 1 = 2·65537
		_, err := NewKeyPair(&PrimePair{P: big.NewInt(131075), Q: big.NewInt(7), Mode: ModeIndependent})
		assert.True(t, errors.Is(err, ErrNoModularInverse))
	})
}

func TestKeyPairIsImmutable(t *testing.T) {
	kp, err := NewKeyPair(&PrimePair{P: big.NewInt(61), Q: big.NewInt(53), Mode: ModeIndependent})
	require.NoError(t, err)

	pub := kp.Public()
	pub.N.SetInt64(1)
	priv := kp.Private()
	priv.D.SetInt64(1)

	assert.Equal(t, int64(3233), kp.Public().N.Int64())
	assert.NotEqual(t, int64(1), kp.Private().D.Int64())
	assert.NoError(t, kp.Validate())
}

func TestPublicKeyValidate(t *testing.T) {
	assert.NoError(t, (&PublicKey{N: big.NewInt(3233), E: big.NewInt(PublicExponent)}).Validate())

	var nilKey *PublicKey
	assert.True(t, errors.Is(nilKey.Validate(), ErrDomainViolation))
	assert.True(t, errors.Is((&PublicKey{N: big.NewInt(2), E: big.NewInt(3)}).Validate(), ErrDomainViolation))
	assert.True(t, errors.Is((&PublicKey{N: big.NewInt(3233), E: big.NewInt(0)}).Validate(), ErrDomainViolation))
}

func TestPrivateKeyValidate(t *testing.T) {
	assert.NoError(t, (&PrivateKey{P: big.NewInt(61), Q: big.NewInt(53), D: big.NewInt(2753)}).Validate())
	assert.True(t, errors.Is((&PrivateKey{P: big.NewInt(1), Q: big.NewInt(53), D: big.NewInt(2753)}).Validate(), ErrDomainViolation))
	assert.True(t, errors.Is((&PrivateKey{P: big.NewInt(61), Q: big.NewInt(53)}).Validate(), ErrDomainViolation))
}

func TestParsePrimeMode(t *testing.T) {
	mode, err := ParsePrimeMode("structured")
	require.NoError(t, err)
	assert.Equal(t, ModeStructured, mode)

	_, err = ParsePrimeMode("dsa")
	assert.True(t, errors.Is(err, ErrDomainViolation))
}

func TestSearchExhaustedError(t *testing.T) {
	err := &SearchExhaustedError{Search: "cofactor", Bits: 64, Rounds: 20, Attempts: 500, Last: ErrNoModularInverse}

	assert.True(t, errors.Is(err, ErrSearchExhausted))
	assert.True(t, errors.Is(err, ErrNoModularInverse))
	assert.Contains(t, err.Error(), "cofactor search for 64 bits gave up after 500 attempts")

	var target *SearchExhaustedError
	require.True(t, errors.As(error(err), &target))
	assert.Equal(t, 500, target.Attempts)

	bare := &SearchExhaustedError{Search: "prime", Bits: 16, Rounds: 1, Attempts: 3}
	assert.True(t, errors.Is(bare, ErrSearchExhausted))
	assert.False(t, errors.Is(bare, ErrNoModularInverse))
}
