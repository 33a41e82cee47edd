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
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSigningOracleService(t *testing.T) {
	components, kp := SetupTestComponents(t)
	log := testutil.SetupTestLogger(t)
	ctx := context.Background()
	refusedMessage := big.NewInt(4)

	t.Run("signs and journals allowed messages", func(t *testing.T) {
		journal := new(MockOracleQueryRepository)
		journal.On("Create", mock.Anything, mock.MatchedBy(func(q *forgery.OracleQuery) bool {
			return q.Message == "65" && !q.Refused && q.Signature != ""
		})).Return(nil).Once()

		oracle, err := NewSigningOracleService(components.Engine, kp, journal, []*big.Int{refusedMessage}, log)
		require.NoError(t, err)

		query, err := oracle.SignAndRecord(ctx, big.NewInt(65))
		require.NoError(t, err)

		signature, ok := new(big.Int).SetString(query.Signature, 10)
		require.True(t, ok)
		valid, err := oracle.Verify(ctx, big.NewInt(65), signature)
		require.NoError(t, err)
		assert.True(t, valid)
		journal.AssertExpectations(t)
	})

	t.Run("refuses denylisted messages and journals the refusal", func(t *testing.T) {
		journal := new(MockOracleQueryRepository)
		journal.On("Create", mock.Anything, mock.MatchedBy(func(q *forgery.OracleQuery) bool {
			return q.Message == "4" && q.Refused && q.Signature == ""
		})).Return(nil).Twice()

		oracle, err := NewSigningOracleService(components.Engine, kp, journal, []*big.Int{refusedMessage}, log)
		require.NoError(t, err)

		signature, err := oracle.Sign(ctx, big.NewInt(4))
		assert.True(t, errors.Is(err, forgery.ErrOracleRefused))
		assert.Nil(t, signature)

		query, err := oracle.SignAndRecord(ctx, big.NewInt(4))
		assert.True(t, errors.Is(err, forgery.ErrOracleRefused))
		require.NotNil(t, query)
		assert.True(t, query.Refused)
		journal.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("does not journal out-of-range messages", func(t *testing.T) {
		journal := new(MockOracleQueryRepository)
		oracle, err := NewSigningOracleService(components.Engine, kp, journal, nil, log)
		require.NoError(t, err)

		_, err = oracle.Sign(ctx, kp.Public().N)
		assert.True(t, errors.Is(err, keys.ErrDomainViolation))

		_, err = oracle.Sign(ctx, nil)
		assert.True(t, errors.Is(err, keys.ErrDomainViolation))
		journal.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("journal failures fail the request", func(t *testing.T) {
		journal := new(MockOracleQueryRepository)
		journal.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		oracle, err := NewSigningOracleService(components.Engine, kp, journal, nil, log)
		require.NoError(t, err)

		_, err = oracle.Sign(ctx, big.NewInt(65))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to journal oracle query")
	})

	t.Run("works without a journal", func(t *testing.T) {
		oracle, err := NewSigningOracleService(components.Engine, kp, nil, nil, log)
		require.NoError(t, err)

		signature, err := oracle.Sign(ctx, big.NewInt(65))
		require.NoError(t, err)
		assert.NotNil(t, signature)

		pub, err := oracle.PublicKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, pub.N.Cmp(kp.Public().N))
	})

	t.Run("requires engine and key pair", func(t *testing.T) {
		_, err := NewSigningOracleService(nil, kp, nil, nil, log)
		assert.Error(t, err)
		_, err = NewSigningOracleService(components.Engine, nil, nil, nil, log)
		assert.Error(t, err)
	})
}

func TestOracleQueryService(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	ctx := context.Background()

	journal := new(MockOracleQueryRepository)
	entry := forgery.NewOracleQuery(big.NewInt(65), big.NewInt(588))
	filter := forgery.NewOracleQueryFilter()
	journal.On("List", mock.Anything, filter).Return([]*forgery.OracleQuery{entry}, nil)
	journal.On("GetByID", mock.Anything, entry.ID).Return(entry, nil)
	journal.On("GetByID", mock.Anything, "missing").Return(nil, forgery.ErrQueryNotFound)

	service, err := NewOracleQueryService(journal, log)
	require.NoError(t, err)

	list, err := service.List(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	fetched, err := service.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.ID, fetched.ID)

	_, err = service.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, forgery.ErrQueryNotFound))

	_, err = NewOracleQueryService(nil, log)
	assert.Error(t, err)
}

func TestKeyGenOptionsFromSettings(t *testing.T) {
	settings := config.DefaultKeyGenSettings()

	opts, err := KeyGenOptionsFromSettings(settings)
	require.NoError(t, err)
	assert.Equal(t, keys.ModeStructured, opts.Mode)
	assert.Equal(t, config.DefaultModulusBits, opts.TargetBits)
	assert.Equal(t, config.DefaultSubprimeBits, opts.SubprimeBits)
	assert.Equal(t, config.DefaultCofactorStep, opts.CofactorStep)

	settings.Mode = "dsa"
	_, err = KeyGenOptionsFromSettings(settings)
	assert.True(t, errors.Is(err, keys.ErrDomainViolation))
}
