package domain

import "time"

// Number of days requested from and rendered for every location.
const ForecastDays = 3

// One day of a short-range forecast. Date carries only the calendar day.
type DayForecast struct {
	Date        time.Time
	TempMin     float64
	TempMax     float64
	WeatherCode int
}

// Ordered, at most ForecastDays long. Never persisted.
type DailyForecast []DayForecast
