package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"weather-dashboard/internal/domain"
)

// Contract shared by the SQL-backed search caches.
type SearchCache interface {
	// Return cached cities for key if stored at or after notBefore.
	Get(ctx context.Context, key string, notBefore int64) ([]domain.City, bool, error)
	// Store cities under key stamped with fetchedAt (unix seconds).
	Put(ctx context.Context, key string, cities []domain.City, fetchedAt int64) error
}

// SearchKey builds the cache key for a query: whitespace collapsed, lower-cased, plus the limit.
func SearchKey(query string, limit int) string {
	norm := strings.ToLower(strings.Join(strings.Fields(query), " "))
	return norm + "|" + strconv.Itoa(limit)
}

func encodeCities(cities []domain.City) (string, error) {
	if cities == nil {
		cities = []domain.City{}
	}
	b, err := json.Marshal(cities)
	if err != nil {
		return "", fmt.Errorf("encode cities: %w", err)
	}
	return string(b), nil
}

func decodeCities(raw string) ([]domain.City, error) {
	var out []domain.City
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("decode cities: %w", err)
	}
	if out == nil {
		out = []domain.City{}
	}
	return out, nil
}
