package persistence

import (
	"fmt"
	"strings"
	"time"

	"github.com/MGTheTrain/textbook-rsa/internal/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const sqliteInMemory = ":memory:"

// NewDBConnection opens the oracle query journal database.
// SQLite connections are limited to a single writer since the oracle journals
// from concurrent request handlers.
func NewDBConnection(settings config.DatabaseSettings) (*gorm.DB, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database settings: %w", err)
	}

	var (
		db  *gorm.DB
		err error
	)
	switch settings.Type {
	case config.PostgresDbType:
		db, err = openPostgresJournal(settings)
	case config.SqliteDbType:
		db, err = openSQLiteJournal(settings)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", settings.Type)
	}
	if err != nil {
		return nil, err
	}

	return db, nil
}

func gormConfig() *gorm.Config {
	// statements carry messages and signatures only, warnings are enough
	return &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)}
}

// openPostgresJournal connects to the server and, when a database name is set,
// creates that database on first use and reconnects to it.
func openPostgresJournal(settings config.DatabaseSettings) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(settings.DSN), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	if settings.Name != "" {
		var exists int64
		if err := db.Raw("SELECT COUNT(*) FROM pg_database WHERE datname = ?", settings.Name).Scan(&exists).Error; err != nil {
			_ = CloseDB(db)
			return nil, fmt.Errorf("failed to look up database '%s': %w", settings.Name, err)
		}
		if exists == 0 {
			if err := db.Exec("CREATE DATABASE " + quoteIdentifier(settings.Name)).Error; err != nil {
				_ = CloseDB(db)
				return nil, fmt.Errorf("failed to create database '%s': %w", settings.Name, err)
			}
		}
		if err := CloseDB(db); err != nil {
			return nil, err
		}

		dsn := fmt.Sprintf("%s dbname=%s", settings.DSN, settings.Name)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database '%s': %w", settings.Name, err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}
	if settings.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(settings.MaxOpenConns)
	}
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}

// openSQLiteJournal opens a file journal, or a private in-memory one when DSN is empty
func openSQLiteJournal(settings config.DatabaseSettings) (*gorm.DB, error) {
	dsn := settings.DSN
	if dsn == "" {
		dsn = sqliteInMemory
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SQLite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get raw DB connection: %w", err)
	}
	// one connection keeps an in-memory database alive and serializes file writes
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

// CloseDB closes the database connection
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// DropDatabase drops a PostgreSQL journal database, used to clean up after integration tests
func DropDatabase(adminDSN, dbName string) (err error) {
	db, err := gorm.Open(postgres.Open(adminDSN), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	defer func() {
		if cerr := CloseDB(db); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := db.Exec("DROP DATABASE IF EXISTS " + quoteIdentifier(dbName)).Error; err != nil {
		return fmt.Errorf("failed to drop database '%s': %w", dbName, err)
	}

	return nil
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
