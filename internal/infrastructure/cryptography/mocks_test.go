//go:build unit
// +build unit

package cryptography

import (
	"context"
	"io"
	"math/big"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Largest primes below 2^32; e = 65537 divides neither p−1 nor q−1.
const (
	TestPrimeP = 4294967291
	TestPrimeQ = 4294967279
)

// MockPrimalityTester is a mock implementation of cryptoalg.PrimalityTester
type MockPrimalityTester struct {
	mock.Mock
}

func (m *MockPrimalityTester) IsProbablyPrime(rnd io.Reader, candidate *big.Int, rounds int) (bool, error) {
	args := m.Called(rnd, candidate, rounds)
	return args.Bool(0), args.Error(1)
}

// MockPrimeGenerator is a mock implementation of cryptoalg.PrimeGenerator
type MockPrimeGenerator struct {
	mock.Mock
}

func (m *MockPrimeGenerator) GeneratePrime(rnd io.Reader, bits, rounds, maxCandidates int) (*big.Int, error) {
	args := m.Called(rnd, bits, rounds, maxCandidates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockPrimeGenerator) Generate(rnd io.Reader, opts cryptoalg.KeyGenOptions) (*keys.PrimePair, error) {
	args := m.Called(rnd, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.PrimePair), args.Error(1)
}

// MockSigningOracle is a mock implementation of cryptoalg.SigningOracle
type MockSigningOracle struct {
	mock.Mock
}

func (m *MockSigningOracle) PublicKey(ctx context.Context) (*keys.PublicKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.PublicKey), args.Error(1)
}

func (m *MockSigningOracle) Sign(ctx context.Context, msg *big.Int) (*big.Int, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func seededReader(t *testing.T, seed string) io.Reader {
	t.Helper()
	rnd, err := NewDeterministicReader([]byte(seed))
	require.NoError(t, err)
	return rnd
}

func setupTester(t *testing.T) cryptoalg.PrimalityTester {
	t.Helper()
	tester, err := NewMillerRabinTester(testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return tester
}

func setupKeyFactory(t *testing.T) cryptoalg.RSAKeyFactory {
	t.Helper()
	log := testutil.SetupTestLogger(t)
	tester := setupTester(t)
	generator, err := NewPrimeGenerator(tester, log)
	require.NoError(t, err)
	factory, err := NewRSAKeyFactory(generator, tester, log)
	require.NoError(t, err)
	return factory
}

// setupTestKeyPair derives the 64-bit key from TestPrimeP and TestPrimeQ
func setupTestKeyPair(t *testing.T) *keys.KeyPair {
	t.Helper()
	kp, err := setupKeyFactory(t).FromPrimes(seededReader(t, "test-key"), big.NewInt(TestPrimeP), big.NewInt(TestPrimeQ), 20)
	require.NoError(t, err)
	return kp
}
