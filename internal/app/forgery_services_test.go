//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestForgeryService(t *testing.T) {
	components, kp := SetupTestComponents(t)
	log := testutil.SetupTestLogger(t)
	ctx := context.Background()

	var journaled []*forgery.OracleQuery
	journal := new(MockOracleQueryRepository)
	journal.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		journaled = append(journaled, args.Get(1).(*forgery.OracleQuery))
	}).Return(nil)

	m := big.NewInt(4)
	oracle, err := NewSigningOracleService(components.Engine, kp, journal, []*big.Int{m}, log)
	require.NoError(t, err)

	service, err := NewForgeryService(components.Forger, oracle, SeededReader(t, "forgery-service"), log)
	require.NoError(t, err)

	result, err := service.Forge(ctx, m)
	require.NoError(t, err)
	assert.True(t, result.Verified)

	valid, err := oracle.Verify(ctx, m, result.Signature)
	require.NoError(t, err)
	assert.True(t, valid)

	require.NotEmpty(t, journaled)
	for _, q := range journaled {
		assert.NotEqual(t, m.String(), q.Message, "target message must never be journaled")
		assert.False(t, q.Refused)
	}

	_, err = service.Forge(ctx, big.NewInt(0))
	assert.True(t, errors.Is(err, keys.ErrDomainViolation))
}

func TestNewForgeryServiceValidatesDependencies(t *testing.T) {
	components, kp := SetupTestComponents(t)
	log := testutil.SetupTestLogger(t)
	oracle, err := NewSigningOracleService(components.Engine, kp, nil, nil, log)
	require.NoError(t, err)

	_, err = NewForgeryService(nil, oracle, SeededReader(t, "x"), log)
	assert.Error(t, err)
	_, err = NewForgeryService(components.Forger, nil, SeededReader(t, "x"), log)
	assert.Error(t, err)
	_, err = NewForgeryService(components.Forger, oracle, nil, log)
	assert.Error(t, err)

	_, err = components.Forger.Forge(context.Background(), SeededReader(t, "x"), oracle, nil)
	assert.True(t, errors.Is(err, keys.ErrDomainViolation))
}
