package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/i18n"
	"weather-dashboard/internal/platform/obs"
	"weather-dashboard/internal/ports"
)

// RenderTarget is one location panel: where it is and where its output goes.
type RenderTarget struct {
	At       domain.Coordinates
	Status   ports.StatusSurface
	Forecast ports.ForecastSurface
}

// ForecastRenderer fetches a forecast and draws it onto a RenderTarget.
// Calls are independent: a slower, older render may land after a newer one.
type ForecastRenderer struct {
	provider ports.WeatherProvider
	catalog  *i18n.Catalog
}

func NewForecastRenderer(provider ports.WeatherProvider, catalog *i18n.Catalog) *ForecastRenderer {
	if catalog == nil {
		catalog = i18n.Default()
	}
	return &ForecastRenderer{provider: provider, catalog: catalog}
}

// Render shows the loading state, fetches, then shows either the day cards or
// the failure. The returned error has already been displayed and logged.
func (r *ForecastRenderer) Render(ctx context.Context, t RenderTarget) error {
	t.Status.SetStatus(ports.StatusLoading, r.catalog.Loading)
	t.Forecast.SetForecastEntries(nil)

	days, err := r.provider.FetchForecast(ctx, t.At)
	if err != nil {
		lat, lon := t.At.QueryValues()
		log.Printf("render forecast failed req_id=%s lat=%s lon=%s err=%v", obs.RequestID(ctx), lat, lon, err)
		t.Status.SetStatus(ports.StatusError, r.catalog.LoadFailedText(err))
		return fmt.Errorf("render forecast: %w", err)
	}

	t.Forecast.SetForecastEntries(r.Entries(days))
	t.Status.SetStatus(ports.StatusOK, r.catalog.Loaded)
	return nil
}

// Entries converts at most ForecastDays days into display cards. The first
// day is always labeled as today, whatever its date.
func (r *ForecastRenderer) Entries(days domain.DailyForecast) []ports.ForecastEntry {
	if len(days) > domain.ForecastDays {
		days = days[:domain.ForecastDays]
	}

	out := make([]ports.ForecastEntry, 0, len(days))
	for i, d := range days {
		lo, hi := roundHalfUp(d.TempMin), roundHalfUp(d.TempMax)

		label := r.catalog.FormatDay(d.Date)
		if i == 0 {
			label = r.catalog.Today
		}

		out = append(out, ports.ForecastEntry{
			Date:        d.Date,
			Label:       label,
			Today:       i == 0,
			TempMin:     lo,
			TempMax:     hi,
			Temperature: fmt.Sprintf("%d…%d°C", lo, hi),
			WeatherCode: d.WeatherCode,
			Description: r.catalog.DescribeWeatherCode(d.WeatherCode),
		})
	}
	return out
}

// Halves round towards +Inf: 2.5 -> 3, -2.5 -> -2.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
