package openmeteo

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const (
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultLanguage     = "ru"
)

// Client talks to the Open-Meteo forecast and geocoding APIs.
//
// It implements both ports.WeatherProvider and ports.CitySearcher.
// No request is retried: a failed fetch is reported and the user refreshes.
// The client is safe for concurrent use.
type Client struct {
	session      *http.Client
	forecastURL  string
	geocodingURL string
	language     string
}

type Options struct {
	ForecastURL  string
	GeocodingURL string
	Language     string
	Timeout      time.Duration
	// Optional; a client with Timeout is created when nil.
	HTTPClient *http.Client
}

func NewClient(opts Options) (*Client, error) {
	forecastURL := strings.TrimSpace(opts.ForecastURL)
	if forecastURL == "" {
		forecastURL = DefaultForecastURL
	}
	geocodingURL := strings.TrimSpace(opts.GeocodingURL)
	if geocodingURL == "" {
		geocodingURL = DefaultGeocodingURL
	}
	if strings.ContainsAny(forecastURL, "?#") || strings.ContainsAny(geocodingURL, "?#") {
		return nil, errors.New("open-meteo base urls must not carry a query or fragment")
	}

	lang := strings.TrimSpace(opts.Language)
	if lang == "" {
		lang = DefaultLanguage
	}

	session := opts.HTTPClient
	if session == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		session = &http.Client{Timeout: timeout}
	}

	return &Client{
		session:      session,
		forecastURL:  forecastURL,
		geocodingURL: geocodingURL,
		language:     lang,
	}, nil
}
