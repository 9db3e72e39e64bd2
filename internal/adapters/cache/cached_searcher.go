package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/ports"

	"golang.org/x/sync/singleflight"
)

// CachedSearcher decorates a CitySearcher with a persistent result cache.
//
// Identical queries in flight at the same time share one upstream call.
// Cache failures degrade to an upstream call and are only logged.
type CachedSearcher struct {
	upstream ports.CitySearcher
	store    SearchCache
	ttl      time.Duration
	now      func() time.Time
	group    singleflight.Group
}

func NewCachedSearcher(upstream ports.CitySearcher, store SearchCache, ttl time.Duration) (*CachedSearcher, error) {
	if upstream == nil {
		return nil, errors.New("cached searcher: upstream is nil")
	}
	if store == nil {
		return nil, errors.New("cached searcher: store is nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cached searcher: ttl must be positive, got %s", ttl)
	}

	return &CachedSearcher{
		upstream: upstream,
		store:    store,
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// SearchCities implements ports.CitySearcher.
func (c *CachedSearcher) SearchCities(ctx context.Context, query string, limit int) ([]domain.City, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []domain.City{}, nil
	}
	if limit <= 0 {
		limit = ports.DefaultSearchLimit
	}

	key := SearchKey(trimmed, limit)
	now := c.now()

	cached, ok, err := c.store.Get(ctx, key, now.Add(-c.ttl).Unix())
	if err != nil {
		log.Printf("search cache read failed key=%q: %v", key, err)
	}
	if ok {
		return cached, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		cities, err := c.upstream.SearchCities(ctx, trimmed, limit)
		if err != nil {
			return nil, err
		}

		if err := c.store.Put(ctx, key, cities, now.Unix()); err != nil {
			log.Printf("search cache write failed key=%q: %v", key, err)
		}
		return cities, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers sharing a flight must not alias one slice.
	shared := v.([]domain.City)
	out := make([]domain.City, len(shared))
	copy(out, shared)
	return out, nil
}
