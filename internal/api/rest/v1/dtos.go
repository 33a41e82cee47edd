package v1

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/domain/keys"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse represents an error message returned by the API
type ErrorResponse struct {
	Message string `json:"message"`
}

// InfoResponse represents an informational message returned by the API
type InfoResponse struct {
	Message string `json:"message"`
}

// PublicKeyResponse represents the public half of the oracle key.
// Integers are base-10 strings.
type PublicKeyResponse struct {
	N           string `json:"n"`
	E           string `json:"e"`
	ModulusBits int    `json:"modulus_bits"`
}

// NewPublicKeyResponse converts a public key into its response representation
func NewPublicKeyResponse(pub *keys.PublicKey) PublicKeyResponse {
	return PublicKeyResponse{
		N:           pub.N.String(),
		E:           pub.E.String(),
		ModulusBits: pub.N.BitLen(),
	}
}

// SignRequest represents a request to the signing oracle
type SignRequest struct {
	Message string `json:"message" validate:"required,numeric"`
}

// Validate for validating SignRequest struct
func (r *SignRequest) Validate() error {
	return validateStruct(r)
}

// SignResponse represents a signature issued by the oracle
type SignResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

// VerifyRequest represents a request to verify a signature under the oracle key
type VerifyRequest struct {
	Message   string `json:"message" validate:"required,numeric"`
	Signature string `json:"signature" validate:"required,numeric"`
}

// Validate for validating VerifyRequest struct
func (r *VerifyRequest) Validate() error {
	return validateStruct(r)
}

// VerifyResponse represents the outcome of a verification
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// OracleQueryResponse represents a journal entry of the oracle
type OracleQueryResponse struct {
	ID              string    `json:"id"`
	Message         string    `json:"message"`
	Signature       string    `json:"signature,omitempty"`
	Refused         bool      `json:"refused"`
	DateTimeCreated time.Time `json:"date_time_created"`
}

// NewOracleQueryResponse converts a journal entry into its response representation
func NewOracleQueryResponse(q *forgery.OracleQuery) OracleQueryResponse {
	return OracleQueryResponse{
		ID:              q.ID,
		Message:         q.Message,
		Signature:       q.Signature,
		Refused:         q.Refused,
		DateTimeCreated: q.DateTimeCreated,
	}
}

func validateStruct(s interface{}) error {
	validate := validator.New()

	err := validate.Struct(s)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}

// parseDecimal parses a validated base-10 field; "numeric" also admits a sign and nothing else
func parseDecimal(field, value string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s: %q is not a base-10 integer", field, value)
	}
	return v, nil
}
