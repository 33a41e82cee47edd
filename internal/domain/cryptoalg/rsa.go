package cryptoalg

import (
	"context"
	"io"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
)

// PrimalityTester decides probable primality with a bounded false-positive rate.
type PrimalityTester interface {
	// IsProbablyPrime runs rounds Miller–Rabin tests with bases drawn from rnd.
	// A composite passes with probability at most 4^(−rounds).
	IsProbablyPrime(rnd io.Reader, candidate *big.Int, rounds int) (bool, error)
}

// KeyGenOptions parameterizes prime search and key derivation.
// Zero ceilings are replaced with the package defaults of the implementation.
type KeyGenOptions struct {
	Mode keys.PrimeMode
	// TargetBits is the bit length of n in independent mode and of p in structured mode.
	TargetBits int
	// SubprimeBits is the bit length of q in structured mode, TargetBits/2 when zero.
	SubprimeBits int
	Rounds       int

	MaxCandidates       int
	MaxCofactorAttempts int
	MaxSubprimeAttempts int
	CofactorStep        int
	MaxKeyAttempts      int
}

// PrimeGenerator produces prime pairs under a construction mode.
type PrimeGenerator interface {
	// GeneratePrime returns a probable prime of exactly bits bits.
	GeneratePrime(rnd io.Reader, bits, rounds, maxCandidates int) (*big.Int, error)

	// Generate returns a verified prime pair for the requested mode.
	Generate(rnd io.Reader, opts KeyGenOptions) (*keys.PrimePair, error)
}

// RSAKeyFactory derives textbook RSA keys from verified primes.
type RSAKeyFactory interface {
	// Generate searches a prime pair and derives a KeyPair, regenerating the
	// primes when e has no inverse modulo φ(n).
	Generate(rnd io.Reader, opts KeyGenOptions) (*keys.KeyPair, error)

	// FromPrimes verifies p and q and derives a KeyPair from them.
	FromPrimes(rnd io.Reader, p, q *big.Int, rounds int) (*keys.KeyPair, error)
}

// SignatureEngine handles raw (unpadded) RSA signatures.
// NOTE: no hashing or padding is applied, signatures are multiplicative.
type SignatureEngine interface {
	// Sign computes m^d mod n and requires 0 <= m < n.
	Sign(m *big.Int, privateKey *keys.PrivateKey) (*big.Int, error)

	// Verify reports whether s^e mod n equals m.
	// Out-of-range m or s is reported as false, not as an error.
	Verify(m, s *big.Int, publicKey *keys.PublicKey) (bool, error)
}

// SigningOracle is a black box that signs messages with a key the caller cannot see.
type SigningOracle interface {
	PublicKey(ctx context.Context) (*keys.PublicKey, error)
	Sign(ctx context.Context, m *big.Int) (*big.Int, error)
}

// ForgeryOracle forges signatures by blinding queries to a SigningOracle.
type ForgeryOracle interface {
	// Forge returns a signature on m valid under the oracle's public key.
	// m itself is never submitted to the oracle.
	Forge(ctx context.Context, rnd io.Reader, oracle SigningOracle, m *big.Int) (*forgery.ForgeryResult, error)
}
