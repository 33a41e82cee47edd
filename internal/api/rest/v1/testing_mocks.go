//go:build unit
// +build unit

package v1

import (
	"context"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"

	"github.com/stretchr/testify/mock"
)

// MockSigningOracleService is a mock implementation of SigningOracleService
type MockSigningOracleService struct {
	mock.Mock
}

func (m *MockSigningOracleService) PublicKey(ctx context.Context) (*keys.PublicKey, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*keys.PublicKey), args.Error(1)
}

func (m *MockSigningOracleService) Sign(ctx context.Context, msg *big.Int) (*big.Int, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Int), args.Error(1)
}

func (m *MockSigningOracleService) SignAndRecord(ctx context.Context, msg *big.Int) (*forgery.OracleQuery, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forgery.OracleQuery), args.Error(1)
}

func (m *MockSigningOracleService) Verify(ctx context.Context, msg, signature *big.Int) (bool, error) {
	args := m.Called(ctx, msg, signature)
	return args.Bool(0), args.Error(1)
}

// MockOracleQueryService is a mock implementation of OracleQueryService
type MockOracleQueryService struct {
	mock.Mock
}

func (m *MockOracleQueryService) List(ctx context.Context, filter *forgery.OracleQueryFilter) ([]*forgery.OracleQuery, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*forgery.OracleQuery), args.Error(1)
}

func (m *MockOracleQueryService) GetByID(ctx context.Context, queryID string) (*forgery.OracleQuery, error) {
	args := m.Called(ctx, queryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*forgery.OracleQuery), args.Error(1)
}
