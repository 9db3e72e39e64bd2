package geolocation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/platform/obs"
)

const DefaultIPLocatorURL = "https://ipapi.co/json/"

type ipLocation struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	// Some providers report failures in a 200 body.
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

// IPLocator approximates the host position from its public IP address.
// It stands in for a device positioning API on machines without one.
type IPLocator struct {
	session *http.Client
	url     string
}

func NewIPLocator(url string, session *http.Client) *IPLocator {
	if strings.TrimSpace(url) == "" {
		url = DefaultIPLocatorURL
	}
	if session == nil {
		session = &http.Client{}
	}
	return &IPLocator{session: session, url: url}
}

// Locate implements ports.Locator. The deadline comes from ctx.
func (l *IPLocator) Locate(ctx context.Context) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geolocation.Locate")(&err)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return domain.Coordinates{}, &domain.GeolocationError{Reason: domain.GeolocationUnsupported, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.session.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return domain.Coordinates{}, &domain.GeolocationError{Reason: domain.GeolocationTimeout, Err: err}
		}
		return domain.Coordinates{}, &domain.GeolocationError{Reason: domain.GeolocationUnavailable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized:
		return domain.Coordinates{}, &domain.GeolocationError{
			Reason: domain.GeolocationDenied,
			Err:    fmt.Errorf("status %d", resp.StatusCode),
		}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return domain.Coordinates{}, &domain.GeolocationError{
			Reason: domain.GeolocationUnavailable,
			Err:    &domain.HTTPError{Op: "locate", StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(b))},
		}
	}

	var loc ipLocation
	if err := json.NewDecoder(resp.Body).Decode(&loc); err != nil {
		return domain.Coordinates{}, &domain.GeolocationError{Reason: domain.GeolocationUnavailable, Err: err}
	}
	if loc.Error {
		return domain.Coordinates{}, &domain.GeolocationError{
			Reason: domain.GeolocationUnavailable,
			Err:    errors.New(loc.Reason),
		}
	}
	if loc.Latitude == nil || loc.Longitude == nil {
		return domain.Coordinates{}, &domain.GeolocationError{
			Reason: domain.GeolocationUnavailable,
			Err:    errors.New("response has no coordinates"),
		}
	}

	return domain.Coordinates{Lat: *loc.Latitude, Lon: *loc.Longitude}, nil
}
