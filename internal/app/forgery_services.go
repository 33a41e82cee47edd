package app

import (
	"context"
	"errors"
	"io"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// forgeryService implements the ForgeryService interface against one signing oracle
type forgeryService struct {
	forger cryptoalg.ForgeryOracle
	oracle cryptoalg.SigningOracle
	rnd    io.Reader
	logger logger.Logger
}

// NewForgeryService creates a new forgeryService instance.
// rnd supplies the blinding factors, crypto/rand.Reader outside of tests.
func NewForgeryService(forger cryptoalg.ForgeryOracle, oracle cryptoalg.SigningOracle, rnd io.Reader, logger logger.Logger) (forgery.ForgeryService, error) {
	if forger == nil {
		return nil, errors.New("forgery oracle cannot be nil")
	}
	if oracle == nil {
		return nil, errors.New("signing oracle cannot be nil")
	}
	if rnd == nil {
		return nil, errors.New("random source cannot be nil")
	}
	return &forgeryService{
		forger: forger,
		oracle: oracle,
		rnd:    rnd,
		logger: logger,
	}, nil
}

// Forge produces a signature on m without submitting m to the oracle
func (s *forgeryService) Forge(ctx context.Context, m *big.Int) (*forgery.ForgeryResult, error) {
	result, err := s.forger.Forge(ctx, s.rnd, s.oracle, m)
	if err != nil {
		return result, err
	}

	s.logger.Info("Forgery ", result.ID, " verified: ", result.Verified)
	return result, nil
}
