package forgery

import (
	"context"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
)

// SigningOracleService answers signing requests with a private key the caller never sees.
type SigningOracleService interface {
	// PublicKey returns the public half of the oracle key.
	PublicKey(ctx context.Context) (*keys.PublicKey, error)

	// Sign returns m^d mod n, or ErrOracleRefused for a denied message.
	Sign(ctx context.Context, m *big.Int) (*big.Int, error)

	// SignAndRecord signs like Sign and returns the journal entry written for the request.
	// A refused request is journaled as well and returned together with ErrOracleRefused.
	SignAndRecord(ctx context.Context, m *big.Int) (*OracleQuery, error)

	// Verify checks a signature against the oracle key.
	Verify(ctx context.Context, m, s *big.Int) (bool, error)
}

// OracleQueryService exposes the journal of signing requests.
type OracleQueryService interface {
	// List retrieves journal entries considering a query filter when set.
	List(ctx context.Context, filter *OracleQueryFilter) ([]*OracleQuery, error)

	// GetByID retrieves a journal entry by its unique ID.
	GetByID(ctx context.Context, queryID string) (*OracleQuery, error)
}

// ForgeryService runs the blinding forgery against a configured signing oracle.
type ForgeryService interface {
	// Forge produces a signature on m without ever submitting m to the oracle.
	Forge(ctx context.Context, m *big.Int) (*ForgeryResult, error)
}

// OracleQueryRepository defines the interface for OracleQuery-related operations
type OracleQueryRepository interface {
	Create(ctx context.Context, query *OracleQuery) error
	List(ctx context.Context, filter *OracleQueryFilter) ([]*OracleQuery, error)
	GetByID(ctx context.Context, queryID string) (*OracleQuery, error)
}
