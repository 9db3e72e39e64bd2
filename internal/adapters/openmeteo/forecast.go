package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
	"weather-dashboard/internal/domain"
	"weather-dashboard/internal/platform/obs"
)

const dailyFields = "temperature_2m_max,temperature_2m_min,weathercode"

type forecastResponse struct {
	Daily *struct {
		Time           []string  `json:"time"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		WeatherCode    []*int    `json:"weathercode"`
	} `json:"daily"`
}

// BuildForecastURL returns the request URL for a 3-day daily forecast at (lat, lon).
// The result is deterministic: query parameters are emitted in sorted order.
func (c *Client) BuildForecastURL(lat, lon float64) string {
	latStr, lonStr := domain.Coordinates{Lat: lat, Lon: lon}.QueryValues()

	q := url.Values{}
	q.Set("latitude", latStr)
	q.Set("longitude", lonStr)
	q.Set("daily", dailyFields)
	q.Set("forecast_days", fmt.Sprint(domain.ForecastDays))
	q.Set("timezone", "auto")

	return c.forecastURL + "?" + q.Encode()
}

// FetchForecast implements ports.WeatherProvider.
func (c *Client) FetchForecast(
	ctx context.Context,
	at domain.Coordinates,
) (_ domain.DailyForecast, err error) {
	defer obs.Time(ctx, "openmeteo.FetchForecast")(&err)

	req, err := c.newRequest(ctx, c.BuildForecastURL(at.Lat, at.Lon))
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}

	resp, err := c.do("fetch forecast", req)
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()

	var decoded forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &domain.MalformedResponseError{Op: "fetch forecast", Reason: "invalid json", Err: err}
	}

	return toDailyForecast(decoded)
}

func toDailyForecast(r forecastResponse) (domain.DailyForecast, error) {
	if r.Daily == nil {
		return nil, &domain.MalformedResponseError{Op: "fetch forecast", Reason: "missing daily"}
	}
	if r.Daily.Time == nil {
		return nil, &domain.MalformedResponseError{Op: "fetch forecast", Reason: "missing daily.time"}
	}

	count := min(domain.ForecastDays, len(r.Daily.Time))

	if len(r.Daily.TemperatureMin) < count ||
		len(r.Daily.TemperatureMax) < count ||
		len(r.Daily.WeatherCode) < count {
		return nil, &domain.MalformedResponseError{
			Op: "fetch forecast",
			Reason: fmt.Sprintf(
				"daily arrays shorter than time: min=%d max=%d code=%d want>=%d",
				len(r.Daily.TemperatureMin), len(r.Daily.TemperatureMax), len(r.Daily.WeatherCode), count,
			),
		}
	}

	out := make(domain.DailyForecast, 0, count)
	for i := 0; i < count; i++ {
		date, err := time.Parse(time.DateOnly, r.Daily.Time[i])
		if err != nil {
			return nil, &domain.MalformedResponseError{
				Op:     "fetch forecast",
				Reason: fmt.Sprintf("daily.time[%d]=%q", i, r.Daily.Time[i]),
				Err:    err,
			}
		}

		code := domain.MissingWeatherCode
		if r.Daily.WeatherCode[i] != nil {
			code = *r.Daily.WeatherCode[i]
		}

		out = append(out, domain.DayForecast{
			Date:        date,
			TempMin:     r.Daily.TemperatureMin[i],
			TempMax:     r.Daily.TemperatureMax[i],
			WeatherCode: code,
		})
	}

	return out, nil
}
