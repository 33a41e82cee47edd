package app

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// signingOracleService implements the SigningOracleService interface with a private key held in memory
type signingOracleService struct {
	engine  cryptoalg.SignatureEngine
	keyPair *keys.KeyPair
	journal forgery.OracleQueryRepository
	refused []*big.Int
	logger  logger.Logger
}

// NewSigningOracleService creates a new signingOracleService instance.
// journal may be nil, in which case requests are not recorded.
func NewSigningOracleService(
	engine cryptoalg.SignatureEngine,
	keyPair *keys.KeyPair,
	journal forgery.OracleQueryRepository,
	refused []*big.Int,
	logger logger.Logger,
) (forgery.SigningOracleService, error) {
	if engine == nil {
		return nil, errors.New("signature engine cannot be nil")
	}
	if keyPair == nil {
		return nil, errors.New("key pair cannot be nil")
	}
	return &signingOracleService{
		engine:  engine,
		keyPair: keyPair,
		journal: journal,
		refused: refused,
		logger:  logger,
	}, nil
}

// PublicKey returns the public half of the oracle key
func (s *signingOracleService) PublicKey(_ context.Context) (*keys.PublicKey, error) {
	return s.keyPair.Public(), nil
}

// Sign returns m^d mod n unless m is refused
func (s *signingOracleService) Sign(ctx context.Context, m *big.Int) (*big.Int, error) {
	_, signature, err := s.sign(ctx, m)
	if err != nil {
		return nil, err
	}
	return signature, nil
}

// SignAndRecord signs m and returns the journal entry of the request
func (s *signingOracleService) SignAndRecord(ctx context.Context, m *big.Int) (*forgery.OracleQuery, error) {
	query, _, err := s.sign(ctx, m)
	return query, err
}

func (s *signingOracleService) sign(ctx context.Context, m *big.Int) (*forgery.OracleQuery, *big.Int, error) {
	if m == nil {
		return nil, nil, keys.DomainViolation("message is required")
	}

	if s.isRefused(m) {
		query := forgery.NewOracleQuery(m, nil)
		if err := s.record(ctx, query); err != nil {
			return nil, nil, err
		}
		s.logger.Warn("Refused to sign denylisted message, query id ", query.ID)
		return query, nil, forgery.ErrOracleRefused
	}

	signature, err := s.engine.Sign(m, s.keyPair.Private())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sign message: %w", err)
	}

	query := forgery.NewOracleQuery(m, signature)
	if err := s.record(ctx, query); err != nil {
		return nil, nil, err
	}

	s.logger.Info("Signed message for query id ", query.ID)
	return query, signature, nil
}

func (s *signingOracleService) isRefused(m *big.Int) bool {
	for _, r := range s.refused {
		if r.Cmp(m) == 0 {
			return true
		}
	}
	return false
}

func (s *signingOracleService) record(ctx context.Context, query *forgery.OracleQuery) error {
	if s.journal == nil {
		return nil
	}
	if err := s.journal.Create(ctx, query); err != nil {
		return fmt.Errorf("failed to journal oracle query: %w", err)
	}
	return nil
}

// Verify checks a signature against the oracle key
func (s *signingOracleService) Verify(_ context.Context, m, signature *big.Int) (bool, error) {
	valid, err := s.engine.Verify(m, signature, s.keyPair.Public())
	if err != nil {
		return false, fmt.Errorf("failed to verify signature: %w", err)
	}
	return valid, nil
}

// oracleQueryService implements the OracleQueryService interface over the journal repository
type oracleQueryService struct {
	journal forgery.OracleQueryRepository
	logger  logger.Logger
}

// NewOracleQueryService creates a new oracleQueryService instance
func NewOracleQueryService(journal forgery.OracleQueryRepository, logger logger.Logger) (forgery.OracleQueryService, error) {
	if journal == nil {
		return nil, errors.New("oracle query repository cannot be nil")
	}
	return &oracleQueryService{
		journal: journal,
		logger:  logger,
	}, nil
}

// List retrieves journal entries based on a filter.
func (s *oracleQueryService) List(ctx context.Context, filter *forgery.OracleQueryFilter) ([]*forgery.OracleQuery, error) {
	queries, err := s.journal.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return queries, nil
}

// GetByID retrieves a journal entry by its ID.
func (s *oracleQueryService) GetByID(ctx context.Context, queryID string) (*forgery.OracleQuery, error) {
	query, err := s.journal.GetByID(ctx, queryID)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return query, nil
}
