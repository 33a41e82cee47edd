package forgery

import "errors"

var (
	// ErrOracleRefused is returned when the signing oracle declines a message.
	ErrOracleRefused = errors.New("oracle refused to sign message")

	// ErrForgeryRejected is returned when a synthesized signature fails verification.
	ErrForgeryRejected = errors.New("forged signature rejected")

	// ErrQueryNotFound is returned when a journal entry does not exist.
	ErrQueryNotFound = errors.New("oracle query not found")
)
