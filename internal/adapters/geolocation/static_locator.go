package geolocation

import (
	"context"
	"weather-dashboard/internal/domain"
)

// StaticLocator always reports the configured position.
type StaticLocator struct {
	Position domain.Coordinates
}

func (s StaticLocator) Locate(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, &domain.GeolocationError{Reason: domain.GeolocationTimeout, Err: err}
	}
	return s.Position, nil
}
