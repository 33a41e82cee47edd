package cryptography

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"math/big"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

const deterministicStreamInfo = "textbook-rsa deterministic stream"

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// candidateSource records where a prime candidate came from
type candidateSource string

const (
	sourceRandom       candidateSource = "random"
	sourceSubprime     candidateSource = "subprime"
	sourceCofactorWalk candidateSource = "cofactor-walk"
)

// primeCandidate is a transient value under test during a prime search
type primeCandidate struct {
	Value  *big.Int
	Source candidateSource
}

// keystreamReader serves the ChaCha20 keystream as an endless byte source.
type keystreamReader struct {
	cipher *chacha20.Cipher
}

func (r *keystreamReader) Read(p []byte) (int, error) {
	clear(p)
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}

// NewDeterministicReader returns a reproducible random stream derived from seed.
// Key and nonce are expanded with HKDF-SHA256, the stream itself is ChaCha20.
// It exists for tests and reproducible demonstrations only.
func NewDeterministicReader(seed []byte) (io.Reader, error) {
	kdf := hkdf.New(sha256.New, seed, nil, []byte(deterministicStreamInfo))

	key := make([]byte, chacha20.KeySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("failed to derive stream key: %w", err)
	}
	nonce := make([]byte, chacha20.NonceSize)
	if _, err := io.ReadFull(kdf, nonce); err != nil {
		return nil, fmt.Errorf("failed to derive stream nonce: %w", err)
	}

	c, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to create stream cipher: %w", err)
	}
	return &keystreamReader{cipher: c}, nil
}

func randomSourceError(err error) error {
	return fmt.Errorf("%w: %w", keys.ErrRandomSource, err)
}

// randomInRange returns an integer uniform in [lo, hi].
func randomInRange(rnd io.Reader, lo, hi *big.Int) (*big.Int, error) {
	if hi.Cmp(lo) < 0 {
		return nil, keys.DomainViolation("empty range [%s, %s]", lo, hi)
	}
	width := new(big.Int).Sub(hi, lo)
	width.Add(width, one)

	x, err := rand.Int(rnd, width)
	if err != nil {
		return nil, randomSourceError(err)
	}
	return x.Add(x, lo), nil
}

// randomCandidate returns an odd integer of exactly bits bits with the top two bits set,
// so the product of two such values has exactly 2·bits bits.
func randomCandidate(rnd io.Reader, bits int) (*primeCandidate, error) {
	if bits < 2 {
		return nil, keys.DomainViolation("prime size must be at least 2 bits, got %d", bits)
	}

	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		return nil, randomSourceError(err)
	}
	buf[0] &= byte(0xFF >> uint(len(buf)*8-bits))

	x := new(big.Int).SetBytes(buf)
	x.SetBit(x, bits-1, 1)
	x.SetBit(x, bits-2, 1)
	x.SetBit(x, 0, 1)

	return &primeCandidate{Value: x, Source: sourceRandom}, nil
}
