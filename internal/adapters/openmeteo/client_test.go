package openmeteo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
	"weather-dashboard/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(Options{
		ForecastURL:  srv.URL + "/v1/forecast",
		GeocodingURL: srv.URL + "/v1/search",
		Timeout:      2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

func TestBuildForecastURL(t *testing.T) {
	c, err := NewClient(Options{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	got := c.BuildForecastURL(55.75, 37.62)
	want := "https://api.open-meteo.com/v1/forecast?daily=temperature_2m_max%2Ctemperature_2m_min%2Cweathercode&forecast_days=3&latitude=55.75&longitude=37.62&timezone=auto"
	if got != want {
		t.Fatalf("BuildForecastURL =\n%s\nwant\n%s", got, want)
	}

	if again := c.BuildForecastURL(55.75, 37.62); again != got {
		t.Fatalf("BuildForecastURL is not deterministic: %s vs %s", again, got)
	}
}

func TestNewClientRejectsQueryInBaseURL(t *testing.T) {
	if _, err := NewClient(Options{ForecastURL: "https://example.com/forecast?x=1"}); err == nil {
		t.Fatalf("expected error for base url with query")
	}
}

func TestFetchForecastTruncatesToThreeDays(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("latitude") != "48.85" || q.Get("longitude") != "2.35" {
			t.Errorf("unexpected coordinates: %s", r.URL.RawQuery)
		}
		if q.Get("forecast_days") != "3" || q.Get("timezone") != "auto" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"daily":{
			"time":["2026-10-18","2026-10-19","2026-10-20","2026-10-21","2026-10-22"],
			"temperature_2m_min":[1.4,2.5,-3.5,4,5],
			"temperature_2m_max":[10.2,11.5,12,13,14],
			"weathercode":[0,61,null,3,3]}}`))
	})

	days, err := c.FetchForecast(context.Background(), domain.Coordinates{Lat: 48.85, Lon: 2.35})
	if err != nil {
		t.Fatalf("FetchForecast: %v", err)
	}

	if len(days) != 3 {
		t.Fatalf("got %d days, want 3", len(days))
	}
	if !days[0].Date.Equal(time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("day 0 date = %v", days[0].Date)
	}
	if days[1].WeatherCode != 61 || days[1].TempMin != 2.5 || days[1].TempMax != 11.5 {
		t.Errorf("day 1 = %+v", days[1])
	}
	if days[2].WeatherCode != domain.MissingWeatherCode {
		t.Errorf("null weather code should map to missing, got %d", days[2].WeatherCode)
	}
}

func TestFetchForecastHTTPError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := c.FetchForecast(context.Background(), domain.Coordinates{Lat: 1, Lon: 2})

	var he *domain.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if he.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d", he.StatusCode)
	}
}

func TestFetchForecastMalformed(t *testing.T) {
	bodies := map[string]string{
		"no daily":     `{"latitude":1}`,
		"no time":      `{"daily":{"temperature_2m_min":[1]}}`,
		"null time":    `{"daily":{"time":null}}`,
		"short arrays": `{"daily":{"time":["2026-10-18","2026-10-19"],"temperature_2m_min":[1],"temperature_2m_max":[2,3],"weathercode":[0,0]}}`,
		"bad date":     `{"daily":{"time":["18.10.2026"],"temperature_2m_min":[1],"temperature_2m_max":[2],"weathercode":[0]}}`,
		"invalid json": `{"daily":`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			})

			_, err := c.FetchForecast(context.Background(), domain.Coordinates{})

			var me *domain.MalformedResponseError
			if !errors.As(err, &me) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}

func TestFetchForecastEmptyTimeIsNotAnError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"daily":{"time":[],"temperature_2m_min":[],"temperature_2m_max":[],"weathercode":[]}}`))
	})

	days, err := c.FetchForecast(context.Background(), domain.Coordinates{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected no days, got %d", len(days))
	}
}

func TestSearchCitiesBlankQuerySkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"results":[]}`))
	})

	for _, q := range []string{"", "   ", "\t\n"} {
		cities, err := c.SearchCities(context.Background(), q, 7)
		if err != nil {
			t.Fatalf("SearchCities(%q): %v", q, err)
		}
		if len(cities) != 0 {
			t.Fatalf("SearchCities(%q) returned %d cities", q, len(cities))
		}
	}

	if n := calls.Load(); n != 0 {
		t.Fatalf("blank queries issued %d requests", n)
	}
}

func TestSearchCitiesMapsResults(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"results":[
			{"id":2988507,"name":"Paris","country":"France","latitude":48.85341,"longitude":2.3488},
			{"id":4717560,"name":"Paris","latitude":33.66094,"longitude":-95.55551}
		]}`))
	})

	cities, err := c.SearchCities(context.Background(), "  Paris ", 0)
	if err != nil {
		t.Fatalf("SearchCities: %v", err)
	}

	if gotQuery.Get("name") != "Paris" {
		t.Errorf("query not trimmed: %q", gotQuery.Get("name"))
	}
	if gotQuery.Get("count") != "7" || gotQuery.Get("language") != "ru" || gotQuery.Get("format") != "json" {
		t.Errorf("unexpected query: %v", gotQuery)
	}

	if len(cities) != 2 {
		t.Fatalf("got %d cities, want 2", len(cities))
	}
	want := domain.City{ID: 2988507, Name: "Paris", Country: "France", Lat: 48.85341, Lon: 2.3488}
	if cities[0] != want {
		t.Errorf("city 0 = %+v, want %+v", cities[0], want)
	}
	if cities[1].Country != "" {
		t.Errorf("missing country should default to empty, got %q", cities[1].Country)
	}
}

func TestSearchCitiesWithoutResults(t *testing.T) {
	for _, body := range []string{`{}`, `{"results":null}`, `{"results":"nope"}`, `{"generationtime_ms":0.5}`} {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})

		cities, err := c.SearchCities(context.Background(), "zzzz", 7)
		if err != nil {
			t.Fatalf("body %s: unexpected error %v", body, err)
		}
		if len(cities) != 0 {
			t.Fatalf("body %s: expected no cities, got %d", body, len(cities))
		}
	}
}

func TestSearchCitiesHTTPError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.SearchCities(context.Background(), "Paris", 7)

	var he *domain.HTTPError
	if !errors.As(err, &he) || he.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected HTTPError 429, got %v", err)
	}
}
