package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/platform/obs"
	"weather-dashboard/internal/ports"
)

type geocodeResult struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type geocodeResponse struct {
	// Kept raw so a missing or non-array value can mean "no results".
	Results json.RawMessage `json:"results"`
}

// BuildSearchURL returns the geocoding search URL for an already trimmed query.
func (c *Client) BuildSearchURL(query string, limit int) string {
	q := url.Values{}
	q.Set("name", query)
	q.Set("count", strconv.Itoa(limit))
	q.Set("language", c.language)
	q.Set("format", "json")

	return c.geocodingURL + "?" + q.Encode()
}

// SearchCities implements ports.CitySearcher using the Open-Meteo geocoding API.
// Blank input returns no cities without a network call.
func (c *Client) SearchCities(
	ctx context.Context,
	query string,
	limit int,
) (_ []domain.City, err error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []domain.City{}, nil
	}
	if limit <= 0 {
		limit = ports.DefaultSearchLimit
	}

	defer obs.Time(ctx, "openmeteo.SearchCities")(&err)

	req, err := c.newRequest(ctx, c.BuildSearchURL(trimmed, limit))
	if err != nil {
		return nil, fmt.Errorf("search cities: %w", err)
	}

	resp, err := c.do("search cities", req)
	if err != nil {
		return nil, fmt.Errorf("search cities %q: %w", trimmed, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &domain.MalformedResponseError{Op: "search cities", Reason: "invalid json", Err: err}
	}

	var results []geocodeResult
	if len(decoded.Results) == 0 || decoded.Results[0] != '[' {
		return []domain.City{}, nil
	}
	if err := json.Unmarshal(decoded.Results, &results); err != nil {
		return nil, &domain.MalformedResponseError{Op: "search cities", Reason: "invalid results", Err: err}
	}

	cities := make([]domain.City, 0, len(results))
	for _, r := range results {
		cities = append(cities, cityFromResult(r))
	}

	return cities, nil
}

func cityFromResult(r geocodeResult) domain.City {
	return domain.City{
		ID:      r.ID,
		Name:    r.Name,
		Country: r.Country,
		Lat:     r.Latitude,
		Lon:     r.Longitude,
	}
}
