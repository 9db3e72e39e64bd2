package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/platform/obs"
)

// SQLSearchCache is a PostgreSQL-backed cache of geocoding search results.
type SQLSearchCache struct {
	DB *sql.DB
}

func NewSQLSearchCache(db *sql.DB) *SQLSearchCache {
	return &SQLSearchCache{DB: db}
}

// Fetch a cached result for key if it is fresh enough.
func (s *SQLSearchCache) Get(
	ctx context.Context,
	key string,
	notBefore int64,
) (_ []domain.City, _ bool, err error) {
	defer obs.Time(ctx, "search.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("search cache: db is nil")
	}

	q := `
	SELECT results
    FROM city_search_cache
    WHERE query_key = $1
        AND fetched_at >= $2;
	`

	var raw string
	err = s.DB.QueryRowContext(ctx, q, key, notBefore).Scan(&raw)
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
func (s *SQLSearchCache) Put(
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
	INSERT INTO city_search_cache (query_key, results, fetched_at)
    VALUES ($1, $2, $3)
	ON CONFLICT (query_key) DO UPDATE
	SET results = EXCLUDED.results,
		fetched_at = EXCLUDED.fetched_at;
	`, key, raw, fetchedAt)
	if err != nil {
		return fmt.Errorf("insert search cache key=%q: %w", key, err)
	}

	return nil
}
