package models

import (
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
)

// OracleQueryModel is the GORM database model for oracle journal entries (infrastructure concern)
type OracleQueryModel struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	Message         string    `gorm:"not null;type:text"`
	Signature       string    `gorm:"type:text"`
	Refused         bool      `gorm:"not null;index"`
	DateTimeCreated time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for GORM
func (OracleQueryModel) TableName() string {
	return "oracle_queries"
}

// ToDomain converts GORM model to domain entity
func (m *OracleQueryModel) ToDomain() *forgery.OracleQuery {
	return &forgery.OracleQuery{
		ID:              m.ID,
		Message:         m.Message,
		Signature:       m.Signature,
		Refused:         m.Refused,
		DateTimeCreated: m.DateTimeCreated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *OracleQueryModel) FromDomain(q *forgery.OracleQuery) {
	m.ID = q.ID
	m.Message = q.Message
	m.Signature = q.Signature
	m.Refused = q.Refused
	m.DateTimeCreated = q.DateTimeCreated
}
