package keys

import (
	"fmt"
	"math/big"
)

// PublicExponent is the fixed RSA public exponent e.
const PublicExponent = 65537

var one = big.NewInt(1)

// PrimeMode selects how the prime pair of a key is constructed
type PrimeMode string

const (
	// ModeIndependent draws p and q as unrelated random primes
	ModeIndependent PrimeMode = "independent"
	// ModeStructured builds p = c·q + 1 from a subprime q
	ModeStructured PrimeMode = "structured"
)

// ParsePrimeMode converts a textual mode into a PrimeMode
func ParsePrimeMode(mode string) (PrimeMode, error) {
	switch PrimeMode(mode) {
	case ModeIndependent, ModeStructured:
		return PrimeMode(mode), nil
	default:
		return "", DomainViolation("unknown prime mode %q", mode)
	}
}

// PublicKey is the public half (n, e) of a textbook RSA key
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// Validate checks that the key can be used for verification
func (k *PublicKey) Validate() error {
	if k == nil || k.N == nil || k.E == nil {
		return DomainViolation("public key is incomplete")
	}
	if k.N.Cmp(big.NewInt(3)) < 0 {
		return DomainViolation("modulus must be at least 3")
	}
	if k.E.Sign() <= 0 {
		return DomainViolation("public exponent must be positive")
	}
	return nil
}

// Clone returns a deep copy of the key
func (k *PublicKey) Clone() *PublicKey {
	return &PublicKey{N: new(big.Int).Set(k.N), E: new(big.Int).Set(k.E)}
}

// PrivateKey is the private half (p, q, d) of a textbook RSA key
type PrivateKey struct {
	P *big.Int
	Q *big.Int
	D *big.Int
}

// Modulus returns p·q
func (k *PrivateKey) Modulus() *big.Int {
	return new(big.Int).Mul(k.P, k.Q)
}

// Validate checks that the key can be used for signing
func (k *PrivateKey) Validate() error {
	if k == nil || k.P == nil || k.Q == nil || k.D == nil {
		return DomainViolation("private key is incomplete")
	}
	if k.P.Cmp(one) <= 0 || k.Q.Cmp(one) <= 0 {
		return DomainViolation("private key primes must be greater than 1")
	}
	if k.D.Sign() <= 0 {
		return DomainViolation("private exponent must be positive")
	}
	return nil
}

// Clone returns a deep copy of the key
func (k *PrivateKey) Clone() *PrivateKey {
	return &PrivateKey{P: new(big.Int).Set(k.P), Q: new(big.Int).Set(k.Q), D: new(big.Int).Set(k.D)}
}

// PrimePair is the output of a prime search.
// Cofactor is nil in independent mode; in structured mode P = Cofactor·Q + 1.
type PrimePair struct {
	P        *big.Int
	Q        *big.Int
	Cofactor *big.Int
	Mode     PrimeMode
}

// Validate checks the structural relation of the pair; primality is not re-tested here.
func (pp *PrimePair) Validate() error {
	if pp == nil || pp.P == nil || pp.Q == nil {
		return DomainViolation("prime pair is incomplete")
	}
	if pp.P.Cmp(pp.Q) == 0 {
		return DomainViolation("p and q must differ")
	}
	if pp.Mode != ModeStructured {
		return nil
	}
	if pp.Cofactor == nil {
		return DomainViolation("structured prime pair is missing its cofactor")
	}
	pMinusOne := new(big.Int).Sub(pp.P, one)
	if pMinusOne.Cmp(new(big.Int).Mul(pp.Cofactor, pp.Q)) != 0 {
		return DomainViolation("p - 1 != c·q")
	}
	return nil
}

// KeyPair owns one PublicKey and one PrivateKey. It is immutable after
// construction: accessors hand out copies.
type KeyPair struct {
	public  PublicKey
	private PrivateKey
	primes  PrimePair
}

// NewKeyPair derives n, φ(n) and d = e⁻¹ mod φ(n) from the prime pair and
// validates the result. A missing inverse is reported as ErrNoModularInverse.
func NewKeyPair(primes *PrimePair) (*KeyPair, error) {
	if err := primes.Validate(); err != nil {
		return nil, err
	}

	p := new(big.Int).Set(primes.P)
	q := new(big.Int).Set(primes.Q)
	e := big.NewInt(PublicExponent)

	n := new(big.Int).Mul(p, q)
	phi := Totient(p, q)

	d := new(big.Int).ModInverse(e, phi)
	if d == nil {
		return nil, fmt.Errorf("%w: gcd(%d, φ(n)) != 1", ErrNoModularInverse, PublicExponent)
	}

	var cofactor *big.Int
	if primes.Cofactor != nil {
		cofactor = new(big.Int).Set(primes.Cofactor)
	}

	kp := &KeyPair{
		public:  PublicKey{N: n, E: e},
		private: PrivateKey{P: p, Q: q, D: d},
		primes:  PrimePair{P: p, Q: q, Cofactor: cofactor, Mode: primes.Mode},
	}
	if err := kp.Validate(); err != nil {
		return nil, err
	}
	return kp, nil
}

// Public returns a copy of the public key
func (kp *KeyPair) Public() *PublicKey {
	return kp.public.Clone()
}

// Private returns a copy of the private key
func (kp *KeyPair) Private() *PrivateKey {
	return kp.private.Clone()
}

// Primes returns a copy of the prime pair the key was derived from
func (kp *KeyPair) Primes() *PrimePair {
	pp := &PrimePair{
		P:    new(big.Int).Set(kp.primes.P),
		Q:    new(big.Int).Set(kp.primes.Q),
		Mode: kp.primes.Mode,
	}
	if kp.primes.Cofactor != nil {
		pp.Cofactor = new(big.Int).Set(kp.primes.Cofactor)
	}
	return pp
}

// Validate checks n = p·q, e·d ≡ 1 (mod φ(n)), p != q and, for structured
// pairs, p − 1 = c·q.
func (kp *KeyPair) Validate() error {
	if err := kp.public.Validate(); err != nil {
		return err
	}
	if err := kp.private.Validate(); err != nil {
		return err
	}
	if err := kp.primes.Validate(); err != nil {
		return err
	}
	if kp.public.N.Cmp(kp.private.Modulus()) != 0 {
		return DomainViolation("n != p·q")
	}

	phi := Totient(kp.private.P, kp.private.Q)
	if new(big.Int).GCD(nil, nil, kp.public.E, phi).Cmp(one) != 0 {
		return fmt.Errorf("%w: gcd(e, φ(n)) != 1", ErrNoModularInverse)
	}
	ed := new(big.Int).Mul(kp.public.E, kp.private.D)
	if ed.Mod(ed, phi).Cmp(one) != 0 {
		return DomainViolation("e·d mod φ(n) != 1")
	}
	return nil
}

// Totient returns (p−1)(q−1)
func Totient(p, q *big.Int) *big.Int {
	pm := new(big.Int).Sub(p, one)
	qm := new(big.Int).Sub(q, one)
	return pm.Mul(pm, qm)
}
