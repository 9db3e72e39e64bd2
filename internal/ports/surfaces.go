package ports

import (
	"time"
	"weather-dashboard/internal/domain"
)

// StatusKind drives how a status line is styled.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusLoading
	StatusOK
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusLoading:
		return "loading"
	case StatusOK:
		return "ok"
	case StatusError:
		return "error"
	default:
		return "idle"
	}
}

// A rendered forecast day card.
type ForecastEntry struct {
	Date        time.Time `json:"date"`
	Label       string    `json:"label"`
	Today       bool      `json:"today"`
	TempMin     int       `json:"temp_min"`
	TempMax     int       `json:"temp_max"`
	Temperature string    `json:"temperature"`
	WeatherCode int       `json:"weather_code"`
	Description string    `json:"description"`
}

// Where a location's status text goes.
type StatusSurface interface {
	SetStatus(kind StatusKind, text string)
}

// Where a location's day cards go. A nil or empty slice clears the display.
type ForecastSurface interface {
	SetForecastEntries(entries []ForecastEntry)
}

// Where an autocomplete field's dropdown goes. An empty slice hides it.
type SuggestionSurface interface {
	RenderSuggestions(items []domain.City)
}

// The text input and inline error of an autocomplete field.
type FieldSurface interface {
	SetValue(value string)
	SetError(text string)
}

// Everything an autocomplete controller draws on.
type AutocompleteSurface interface {
	FieldSurface
	SuggestionSurface
}

// A location card: status line plus forecast grid.
type CardSurface interface {
	StatusSurface
	ForecastSurface
}

// Page-level rendering the dashboard needs beyond individual cards.
type DashboardView interface {
	// Main location panel.
	MainCard() CardSurface
	SetMainTitle(title string)

	ShowMainCityModal()
	HideMainCityModal()

	// Append a removable card for an extra city and return its surfaces.
	AddCityCard(city domain.City) CardSurface
	RemoveCityCard(id int64)
}
