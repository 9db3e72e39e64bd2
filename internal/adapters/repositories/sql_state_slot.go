package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"weather-dashboard/internal/platform/obs"
)

// PostgreSQL-backed implementation of the StateSlot port.
type SQLStateSlot struct{ DB *sql.DB }

func NewSQLStateSlot(db *sql.DB) *SQLStateSlot {
	return &SQLStateSlot{DB: db}
}

func (s *SQLStateSlot) Get(ctx context.Context, key string) (_ string, _ bool, err error) {
	defer obs.Time(ctx, "state.slot.Get")(&err)

	if s.DB == nil {
		return "", false, errors.New("sql state slot: DB is nil")
	}

	var value string
	err = s.DB.QueryRowContext(ctx, `SELECT value FROM state_slots WHERE key = $1;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state slot %q: %w", key, err)
	}

	return value, true, nil
}

func (s *SQLStateSlot) Set(ctx context.Context, key string, value string) (err error) {
	defer obs.Time(ctx, "state.slot.Set")(&err)

	if s.DB == nil {
		return errors.New("sql state slot: DB is nil")
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO state_slots (key, value, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at;
	`, key, value)
	if err != nil {
		return fmt.Errorf("set state slot %q: %w", key, err)
	}

	return nil
}
