//go:build integration
// +build integration

package persistence

import (
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/domain/forgery"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"
	"github.com/MGTheTrain/textbook-rsa/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB              *gorm.DB
	OracleQueryRepo forgery.OracleQueryRepository
}

// SetupTestDB initializes test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		// empty DSN: private in-memory journal, gone with the connection
		settings = config.DatabaseSettings{Type: config.SqliteDbType}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:         config.PostgresDbType,
			DSN:          "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name:         uniqueDBName,
			MaxOpenConns: 4,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, AutoMigrate(db), "Failed to migrate schema")

	oracleQueryRepo, err := NewGormOracleQueryRepository(db, testutil.SetupTestLogger(t))
	require.NoError(t, err, "Failed to create oracle query repository")

	return &TestContext{
		DB:              db,
		OracleQueryRepo: oracleQueryRepo,
	}
}

// CreateTestQuery creates an answered journal entry created at the given time
func CreateTestQuery(t *testing.T, m, s int64, created time.Time) *forgery.OracleQuery {
	t.Helper()

	q := forgery.NewOracleQuery(big.NewInt(m), big.NewInt(s))
	q.DateTimeCreated = created
	return q
}

// CreateRefusedTestQuery creates a refused journal entry created at the given time
func CreateRefusedTestQuery(t *testing.T, m int64, created time.Time) *forgery.OracleQuery {
	t.Helper()

	q := forgery.NewOracleQuery(big.NewInt(m), nil)
	q.DateTimeCreated = created
	return q
}
