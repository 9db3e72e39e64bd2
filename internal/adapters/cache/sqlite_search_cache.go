package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"weather-dashboard/internal/domain"
)

// SQLite backed cache mapping normalized search queries to geocoding results.
type SqliteSearchCache struct {
	DB *sql.DB
}

func NewSqliteSearchCache(db *sql.DB) *SqliteSearchCache {
	return &SqliteSearchCache{DB: db}
}

// Fetch a cached result for key if it is fresh enough.
func (s *SqliteSearchCache) Get(
	ctx context.Context,
	key string,
	notBefore int64,
) ([]domain.City, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("search cache: db is nil")
	}

	q := `
	SELECT results
    FROM city_search_cache
    WHERE query_key = ?
        AND fetched_at >= ?;
	`

	var raw string
	err := s.DB.QueryRowContext(ctx, q, key, notBefore).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get search cache: query city_search_cache table: %w", err)
	}

	cities, err := decodeCities(raw)
	if err != nil {
		return nil, false, fmt.Errorf("get search cache key=%q: %w", key, err)
	}

	return cities, true, nil
}

// Store a search result, replacing any previous entry for key.
func (s *SqliteSearchCache) Put(
	ctx context.Context,
	key string,
	cities []domain.City,
	fetchedAt int64,
) error {
	if s.DB == nil {
		return errors.New("search cache: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("insert search cache: empty query key")
	}

	raw, err := encodeCities(cities)
	if err != nil {
		return fmt.Errorf("insert search cache key=%q: %w", key, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO city_search_cache (
        query_key,
        results,
        fetched_at
    )
    VALUES (?, ?, ?);
	`, key, raw, fetchedAt)
	if err != nil {
		return fmt.Errorf("insert search cache key=%q: %w", key, err)
	}

	return nil
}
