// Package repository implements the PostgreSQL-backed store for packages,
// sessions, payments and users. It provides creation, reading, updating,
// deletion and aggregation of rows; every derived ledger metric is computed
// at query time by the callers, never persisted redundantly (the cached
// payment_status column is the single exception and is recomputed inside
// the same statement that changes amount_paid).
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Registers the pgx driver for use with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage wraps the PostgreSQL connection and implements the repository
// methods for packages, sessions, payments and users.
type Storage struct {
	DB *sql.DB
}

// New opens a PostgreSQL connection and verifies it with a ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifies that the schema has been migrated.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'packages'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table packages missing or query error: %w", err)
	}
	return nil
}
