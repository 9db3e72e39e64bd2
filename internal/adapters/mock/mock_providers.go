package mock

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"weather-dashboard/internal/domain"
)

// WeatherProvider returns canned forecasts keyed by coordinate.
type WeatherProvider struct {
	mu        sync.Mutex
	forecasts map[domain.Coordinates]domain.DailyForecast
	errs      map[domain.Coordinates]error
	calls     []domain.Coordinates
}

func NewWeatherProvider() *WeatherProvider {
	return &WeatherProvider{
		forecasts: make(map[domain.Coordinates]domain.DailyForecast),
		errs:      make(map[domain.Coordinates]error),
	}
}

func (p *WeatherProvider) Set(at domain.Coordinates, f domain.DailyForecast) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forecasts[at] = f
	delete(p.errs, at)
}

func (p *WeatherProvider) Fail(at domain.Coordinates, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[at] = err
}

func (p *WeatherProvider) FetchForecast(ctx context.Context, at domain.Coordinates) (domain.DailyForecast, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, at)

	if err, ok := p.errs[at]; ok {
		return nil, err
	}
	f, ok := p.forecasts[at]
	if !ok {
		return nil, fmt.Errorf("no forecast for %v,%v", at.Lat, at.Lon)
	}
	out := make(domain.DailyForecast, len(f))
	copy(out, f)
	return out, nil
}

// Coordinates requested so far, in call order.
func (p *WeatherProvider) Calls() []domain.Coordinates {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Coordinates, len(p.calls))
	copy(out, p.calls)
	return out
}

// CitySearcher matches cities whose name starts with the query, case-insensitively.
type CitySearcher struct {
	mu      sync.Mutex
	cities  []domain.City
	err     error
	queries []string
}

func NewCitySearcher(cities ...domain.City) *CitySearcher {
	return &CitySearcher{cities: cities}
}

func (s *CitySearcher) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *CitySearcher) SearchCities(ctx context.Context, query string, limit int) ([]domain.City, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.City{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)

	if s.err != nil {
		return nil, s.err
	}

	out := []domain.City{}
	for _, c := range s.cities {
		if strings.HasPrefix(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Queries that reached the searcher (blank ones never do).
func (s *CitySearcher) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.queries))
	copy(out, s.queries)
	return out
}
