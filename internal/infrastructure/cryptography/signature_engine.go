package cryptography

import (
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
)

// signatureEngine struct that implements the SignatureEngine interface
type signatureEngine struct {
	logger logger.Logger
}

// NewSignatureEngine creates and returns a new instance of signatureEngine
func NewSignatureEngine(logger logger.Logger) (cryptoalg.SignatureEngine, error) {
	return &signatureEngine{
		logger: logger,
	}, nil
}

// Sign computes s = m^d mod n.
// NOTE: raw textbook RSA, no hashing or padding. Signatures are multiplicative.
func (e *signatureEngine) Sign(m *big.Int, privateKey *keys.PrivateKey) (*big.Int, error) {
	if err := privateKey.Validate(); err != nil {
		return nil, err
	}

	n := privateKey.Modulus()
	if m == nil || m.Sign() < 0 || m.Cmp(n) >= 0 {
		return nil, keys.DomainViolation("message must be in [0, n)")
	}

	s := new(big.Int).Exp(m, privateKey.D, n)
	e.logger.Debug("RSA signing succeeded")
	return s, nil
}

// Verify reports whether s^e mod n equals m
func (e *signatureEngine) Verify(m, s *big.Int, publicKey *keys.PublicKey) (bool, error) {
	if err := publicKey.Validate(); err != nil {
		return false, err
	}

	n := publicKey.N
	if m == nil || s == nil || m.Sign() < 0 || s.Sign() < 0 || m.Cmp(n) >= 0 || s.Cmp(n) >= 0 {
		return false, nil
	}

	valid := new(big.Int).Exp(s, publicKey.E, n).Cmp(m) == 0
	e.logger.Debug("RSA verification finished, valid: ", valid)
	return valid, nil
}
