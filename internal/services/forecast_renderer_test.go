package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"weather-dashboard/internal/adapters/mock"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/i18n"
	"weather-dashboard/internal/ports"
)

type recordedStatus struct {
	kind ports.StatusKind
	text string
}

type recordingCard struct {
	mu       sync.Mutex
	statuses []recordedStatus
	entries  []ports.ForecastEntry
	clears   int
}

func (c *recordingCard) SetStatus(kind ports.StatusKind, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = append(c.statuses, recordedStatus{kind, text})
}

func (c *recordingCard) SetForecastEntries(entries []ports.ForecastEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(entries) == 0 {
		c.clears++
	}
	c.entries = entries
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestForecastRenderer_RendersThreeDays(t *testing.T) {
	at := domain.Coordinates{Lat: 48.85, Lon: 2.35}
	weather := mock.NewWeatherProvider()
	weather.Set(at, domain.DailyForecast{
		{Date: day("2026-10-18"), TempMin: -2.5, TempMax: 9.5, WeatherCode: 3},
		{Date: day("2026-10-19"), TempMin: 1.4, TempMax: 11.6, WeatherCode: 61},
		{Date: day("2026-10-20"), TempMin: 0.5, TempMax: 7, WeatherCode: 95},
		{Date: day("2026-10-21"), TempMin: 0, TempMax: 1, WeatherCode: 0},
		{Date: day("2026-10-22"), TempMin: 0, TempMax: 1, WeatherCode: 0},
	})

	card := &recordingCard{}
	r := NewForecastRenderer(weather, i18n.Default())
	if err := r.Render(context.Background(), RenderTarget{At: at, Status: card, Forecast: card}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(card.entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(card.entries))
	}
	first := card.entries[0]
	if !first.Today || first.Label != "Сегодня" {
		t.Fatalf("first entry must be today, got %+v", first)
	}
	if first.Temperature != "-2…10°C" {
		t.Fatalf("expected half-up rounding, got %q", first.Temperature)
	}
	if first.Description != "Пасмурно" {
		t.Fatalf("unexpected description %q", first.Description)
	}
	if got := card.entries[2].Label; got != "вт, 20 окт." {
		t.Fatalf("unexpected day label %q", got)
	}
	if card.entries[1].Temperature != "1…12°C" || card.entries[2].Description != "Гроза" {
		t.Fatalf("unexpected second/third entries: %+v", card.entries[1:])
	}

	want := []recordedStatus{
		{ports.StatusLoading, "Загрузка прогноза..."},
		{ports.StatusOK, "Прогноз успешно загружен"},
	}
	if len(card.statuses) != len(want) || card.statuses[0] != want[0] || card.statuses[1] != want[1] {
		t.Fatalf("unexpected statuses: %+v", card.statuses)
	}
}

func TestForecastRenderer_Failure(t *testing.T) {
	at := domain.Coordinates{Lat: 1, Lon: 2}
	weather := mock.NewWeatherProvider()
	weather.Fail(at, errors.New("boom"))

	card := &recordingCard{}
	r := NewForecastRenderer(weather, i18n.Default())
	err := r.Render(context.Background(), RenderTarget{At: at, Status: card, Forecast: card})
	if err == nil {
		t.Fatalf("expected error")
	}

	if len(card.entries) != 0 || card.clears == 0 {
		t.Fatalf("forecast must be cleared and stay empty, got %+v", card.entries)
	}
	last := card.statuses[len(card.statuses)-1]
	if last.kind != ports.StatusError || last.text != "Ошибка загрузки прогноза: boom" {
		t.Fatalf("unexpected final status: %+v", last)
	}
}

func TestRoundHalfUp(t *testing.T) {
	cases := map[float64]int{2.5: 3, -2.5: -2, 2.49: 2, -0.4: 0, -0.6: -1, 10: 10}
	for in, want := range cases {
		if got := roundHalfUp(in); got != want {
			t.Errorf("roundHalfUp(%v) = %d, want %d", in, got, want)
		}
	}
}
