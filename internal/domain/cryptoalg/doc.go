// Package cryptoalg defines the contracts of the textbook RSA components: primality testing,
// prime search, key derivation, raw signing and verification, and the blinding forgery
// against a signing oracle.
package cryptoalg
