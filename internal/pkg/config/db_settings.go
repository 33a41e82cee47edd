package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Journal backends accepted in DatabaseSettings.Type
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)

// DatabaseSettings holds the connection settings of the oracle query journal.
// An empty sqlite DSN selects a private in-memory journal. For postgres, Name is the
// journal database created on first use and MaxOpenConns bounds the pool (0 leaves it unbounded).
type DatabaseSettings struct {
	Type         string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`
	DSN          string `mapstructure:"dsn" validate:"required_if=Type postgres"`
	Name         string `mapstructure:"name" validate:"excludes=\""`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"min=0"`
}

// Validate checks that all fields in DatabaseSettings are valid
func (s *DatabaseSettings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("validation failed for DatabaseSettings: %w", err)
	}
	return nil
}
