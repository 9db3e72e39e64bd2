package ports

import (
	"context"
	"weather-dashboard/internal/domain"
)

// Contract for a one-shot device position request.
// Failures are reported as *domain.GeolocationError.
type Locator interface {
	Locate(ctx context.Context) (domain.Coordinates, error)
}
