package keys

import (
	"errors"
	"fmt"
)

var (
	// ErrSearchExhausted is returned when a prime or key search hits its attempt bound.
	ErrSearchExhausted = errors.New("search exhausted")

	// ErrNoModularInverse is returned when an inverse required by key derivation does not exist.
	ErrNoModularInverse = errors.New("no modular inverse")

	// ErrDomainViolation is returned for inputs outside an operation's valid range.
	ErrDomainViolation = errors.New("domain violation")

	// ErrRandomSource is returned when the random source fails to produce bytes.
	ErrRandomSource = errors.New("random source failure")
)

// SearchExhaustedError carries the parameters of a search that gave up.
type SearchExhaustedError struct {
	Search   string
	Bits     int
	Rounds   int
	Attempts int
	// Last is the error of the final attempt, if any.
	Last error
}

func (e *SearchExhaustedError) Error() string {
	msg := fmt.Sprintf("%s: %s search for %d bits gave up after %d attempts (rounds=%d)",
		ErrSearchExhausted, e.Search, e.Bits, e.Attempts, e.Rounds)
	if e.Last != nil {
		msg += ": " + e.Last.Error()
	}
	return msg
}

// Unwrap exposes both ErrSearchExhausted and the last attempt error to errors.Is.
func (e *SearchExhaustedError) Unwrap() []error {
	if e.Last == nil {
		return []error{ErrSearchExhausted}
	}
	return []error{ErrSearchExhausted, e.Last}
}

// DomainViolation formats an ErrDomainViolation with context.
func DomainViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDomainViolation, fmt.Sprintf(format, args...))
}

