//go:build unit || integration
// +build unit integration

package app

import (
	"context"
	"io"
	"math/big"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/infrastructure/cryptography"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Largest primes below 2^32, giving a 64-bit oracle key
const (
	TestPrimeP = 4294967291
	TestPrimeQ = 4294967279
)

// MockOracleQueryRepository is a mock implementation of forgery.OracleQueryRepository
type MockOracleQueryRepository struct {
	mock.Mock
}

func (m *MockOracleQueryRepository) Create(ctx context.Context, query *forgery.OracleQuery) error {
	args := m.Called(ctx, query)
	return args.Error(0)
}

func (m *MockOracleQueryRepository) List(ctx context.Context, filter *forgery.OracleQueryFilter) ([]*forgery.OracleQuery, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*forgery.OracleQuery), args.Error(1)
}

func (m *MockOracleQueryRepository) GetByID(ctx context.Context, queryID string) (*forgery.OracleQuery, error) {
	args := m.Called(ctx, queryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forgery.OracleQuery), args.Error(1)
}

// SeededReader returns a deterministic random stream for seed
func SeededReader(t *testing.T, seed string) io.Reader {
	t.Helper()
	rnd, err := cryptography.NewDeterministicReader([]byte(seed))
	require.NoError(t, err)
	return rnd
}

// SetupTestComponents creates the core components and the 64-bit oracle key pair
func SetupTestComponents(t *testing.T) (*CryptoComponents, *keys.KeyPair) {
	t.Helper()

	components, err := NewCryptoComponents(16, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	kp, err := components.KeyFactory.FromPrimes(SeededReader(t, "oracle-key"), big.NewInt(TestPrimeP), big.NewInt(TestPrimeQ), 20)
	require.NoError(t, err)

	return components, kp
}
