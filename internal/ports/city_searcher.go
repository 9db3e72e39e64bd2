package ports

import (
	"context"
	"weather-dashboard/internal/domain"
)

// Default number of suggestions requested per search.
const DefaultSearchLimit = 7

// Contract for free-text city lookup backing the autocomplete fields.
type CitySearcher interface {
	// Return matching cities in relevance order. Blank queries return no cities
	// and must not reach the network.
	SearchCities(ctx context.Context, query string, limit int) ([]domain.City, error)
}
