package cryptography

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/cryptoalg"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/logger"
	"github.com/google/uuid"
)

// forgeryOracle struct that implements the ForgeryOracle interface
type forgeryOracle struct {
	engine      cryptoalg.SignatureEngine
	maxAttempts int
	logger      logger.Logger
}

// NewForgeryOracle creates and returns a new instance of forgeryOracle.
// maxBlindingAttempts < 1 selects the configured default.
func NewForgeryOracle(engine cryptoalg.SignatureEngine, maxBlindingAttempts int, logger logger.Logger) (cryptoalg.ForgeryOracle, error) {
	if engine == nil {
		return nil, errors.New("signature engine cannot be nil")
	}
	if maxBlindingAttempts < 1 {
		maxBlindingAttempts = config.DefaultMaxBlindingAttempts
	}
	return &forgeryOracle{
		engine:      engine,
		maxAttempts: maxBlindingAttempts,
		logger:      logger,
	}, nil
}

// Forge blinds m with a random r, has the oracle sign t = r^e·m mod n and
// unblinds the answer: s = r⁻¹·(t^d) = r⁻¹·r·m^d = m^d mod n.
func (f *forgeryOracle) Forge(ctx context.Context, rnd io.Reader, oracle cryptoalg.SigningOracle, m *big.Int) (*forgery.ForgeryResult, error) {
	if oracle == nil {
		return nil, keys.DomainViolation("signing oracle is required")
	}

	publicKey, err := oracle.PublicKey(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch oracle public key: %w", err)
	}
	if err := publicKey.Validate(); err != nil {
		return nil, err
	}

	n := publicKey.N
	// m = 0 is a fixed point of blinding
	if m == nil || m.Sign() <= 0 || m.Cmp(n) >= 0 {
		return nil, keys.DomainViolation("message must be in [1, n)")
	}
	target := new(big.Int).Set(m)
	nMinusOne := new(big.Int).Sub(n, one)

	for attempt := 1; attempt <= f.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		r, err := randomInRange(rnd, two, nMinusOne)
		if err != nil {
			return nil, err
		}
		blindedR := new(big.Int).Exp(r, publicKey.E, n)
		if blindedR.Cmp(one) == 0 {
			continue
		}

		query := new(big.Int).Mul(blindedR, target)
		query.Mod(query, n)
		if query.Cmp(target) == 0 {
			continue
		}

		oracleOutput, err := oracle.Sign(ctx, query)
		if errors.Is(err, forgery.ErrOracleRefused) {
			f.logger.Warn("Oracle refused blinded query on attempt ", attempt)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query signing oracle: %w", err)
		}

		rInverse := new(big.Int).ModInverse(r, n)
		if rInverse == nil {
			f.logger.Warn("Blinding factor shares a factor with n on attempt ", attempt)
			continue
		}

		signature := new(big.Int).Mul(rInverse, oracleOutput)
		signature.Mod(signature, n)

		verified, err := f.engine.Verify(target, signature, publicKey)
		if err != nil {
			return nil, fmt.Errorf("failed to verify forged signature: %w", err)
		}

		result := &forgery.ForgeryResult{
			ID:        uuid.New().String(),
			Message:   target,
			Signature: signature,
			Verified:  verified,
			Attempts:  attempt,
			Context: forgery.ForgeryContext{
				R:            r,
				BlindedR:     blindedR,
				Target:       target,
				Query:        query,
				OracleOutput: oracleOutput,
				Signature:    signature,
			},
			DateTimeCreated: time.Now().UTC(),
		}
		if !verified {
			return result, fmt.Errorf("%w: s^e mod n != m", forgery.ErrForgeryRejected)
		}

		f.logger.Info("Forged signature with ID ", result.ID, " after ", attempt, " blinding attempts")
		return result, nil
	}

	return nil, &keys.SearchExhaustedError{Search: "blinding", Bits: n.BitLen(), Attempts: f.maxAttempts}
}
