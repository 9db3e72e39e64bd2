package ports

import (
	"context"
	"weather-dashboard/internal/domain"
)

// Contract for retrieving a short-range daily forecast for a coordinate.
type WeatherProvider interface {
	// Return at most domain.ForecastDays days starting today (in the location's timezone).
	FetchForecast(ctx context.Context, at domain.Coordinates) (domain.DailyForecast, error)
}
