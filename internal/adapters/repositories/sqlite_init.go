package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	createStateSlotsQuery := `
	CREATE TABLE IF NOT EXISTS state_slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`

	createSearchCacheQuery := `
	CREATE TABLE IF NOT EXISTS city_search_cache (
        query_key TEXT PRIMARY KEY,
        results TEXT NOT NULL,
        fetched_at INTEGER NOT NULL
    );
	`

	return execSchema(ctx, db, []string{createStateSlotsQuery, createSearchCacheQuery})
}

// Initialize the PostgreSQL database schema.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	createStateSlotsQuery := `
	CREATE TABLE IF NOT EXISTS state_slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createSearchCacheQuery := `
	CREATE TABLE IF NOT EXISTS city_search_cache (
        query_key TEXT PRIMARY KEY,
        results TEXT NOT NULL,
        fetched_at BIGINT NOT NULL
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_city_search_cache_fetched_at
    ON city_search_cache(fetched_at);
	`

	return execSchema(ctx, db, []string{createStateSlotsQuery, createSearchCacheQuery, createIndexQuery})
}

func execSchema(ctx context.Context, db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
