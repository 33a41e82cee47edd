// Package keys holds the textbook RSA key material: public and private keys,
// the prime pair they are derived from, and the error taxonomy shared by
// prime search, key derivation and signing.
package keys
