package forgery

import (
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ForgeryContext holds the intermediate values of one blinding attempt.
// It is discarded once the forged signature has been claimed.
type ForgeryContext struct {
	// R is the blinding factor, uniform in [2, n−1].
	R *big.Int
	// BlindedR is r^e mod n.
	BlindedR *big.Int
	// Target is the message the signature is forged for.
	Target *big.Int
	// Query is the blinded message t = r^e·m mod n submitted to the oracle.
	Query *big.Int
	// OracleOutput is the oracle's answer s′ = t^d mod n.
	OracleOutput *big.Int
	// Signature is the unblinded s = r⁻¹·s′ mod n.
	Signature *big.Int
}

// ForgeryResult is the (message, forged signature, verification result) triple of one run.
type ForgeryResult struct {
	ID              string
	Message         *big.Int
	Signature       *big.Int
	Verified        bool
	Attempts        int
	Context         ForgeryContext
	DateTimeCreated time.Time
}

// OracleQuery is a journal entry of one signing request. Message and
// Signature are base-10 integers; Signature is empty for refused requests.
type OracleQuery struct {
	ID              string `validate:"required,uuid4"`
	Message         string `validate:"required,numeric"`
	Signature       string `validate:"omitempty,numeric"`
	Refused         bool
	DateTimeCreated time.Time `validate:"required"`
}

// NewOracleQuery creates a journal entry for message m answered with s.
// A nil s records a refusal.
func NewOracleQuery(m, s *big.Int) *OracleQuery {
	q := &OracleQuery{
		ID:              uuid.New().String(),
		Message:         m.String(),
		Refused:         s == nil,
		DateTimeCreated: time.Now().UTC(),
	}
	if s != nil {
		q.Signature = s.String()
	}
	return q
}

// Validate for validating OracleQuery struct
func (q *OracleQuery) Validate() error {
	validate := validator.New()

	err := validate.Struct(q)
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

	if q.Refused && q.Signature != "" {
		return fmt.Errorf("validation failed: refused query carries a signature")
	}
	if !q.Refused && q.Signature == "" {
		return fmt.Errorf("validation failed: answered query is missing its signature")
	}

	return nil
}

// OracleQueryFilter narrows a journal listing
type OracleQueryFilter struct {
	Refused         *bool
	DateTimeCreated time.Time
	Limit           int    `validate:"omitempty,gt=0"`
	Offset          int    `validate:"omitempty,gte=0"`
	SortOrder       string `validate:"omitempty,oneof=asc desc"`
}

// NewOracleQueryFilter returns a filter listing newest entries first
func NewOracleQueryFilter() *OracleQueryFilter {
	return &OracleQueryFilter{
		SortOrder: "desc",
	}
}

// Validate for validating OracleQueryFilter struct
func (f *OracleQueryFilter) Validate() error {
	validate := validator.New()

	err := validate.Struct(f)
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
