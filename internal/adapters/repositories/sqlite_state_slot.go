package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite-backed implementation of the StateSlot port.
type SqliteStateSlot struct{ DB *sql.DB }

func NewSqliteStateSlot(db *sql.DB) *SqliteStateSlot {
	return &SqliteStateSlot{DB: db}
}

// Return the value stored under key.
func (s *SqliteStateSlot) Get(ctx context.Context, key string) (string, bool, error) {
	if s.DB == nil {
		return "", false, errors.New("sqlite state slot: DB is nil")
	}

	query := `
	SELECT value
	FROM state_slots
	WHERE key = ?;
	`

	var value string
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state slot %q: %w", key, err)
	}

	return value, true, nil
}

// Replace the value stored under key.
func (s *SqliteStateSlot) Set(ctx context.Context, key string, value string) error {
	if s.DB == nil {
		return errors.New("sqlite state slot: DB is nil")
	}

	query := `
	INSERT OR REPLACE INTO state_slots (
		key,
		value,
		updated_at
	)
	VALUES (?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("set state slot %q: %w", key, err)
	}

	return nil
}
