// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer to journal the queries answered by the
// signing oracle on PostgreSQL or SQLite.
package persistence
