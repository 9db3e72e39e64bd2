package i18n

import (
	"errors"
	"testing"
	"time"
)

func TestForMatchesLocale(t *testing.T) {
	cases := map[string]string{
		"ru":                "Сегодня",
		"ru-RU":             "Сегодня",
		"en":                "Today",
		"en-GB,en;q=0.8":    "Today",
		"de":                "Сегодня",
		"":                  "Сегодня",
		"fr-CH, en;q=0.5":   "Today",
		"not a locale ;;;;": "Сегодня",
	}

	for locale, today := range cases {
		if got := For(locale).Today; got != today {
			t.Errorf("For(%q).Today = %q, want %q", locale, got, today)
		}
	}
}

func TestDescribeWeatherCodeRussian(t *testing.T) {
	c := Default()
	if got := c.DescribeWeatherCode(0); got != "Ясно" {
		t.Errorf("code 0 = %q", got)
	}
	if got := c.DescribeWeatherCode(99); got != "Гроза с градом" {
		t.Errorf("code 99 = %q", got)
	}
	if got := c.DescribeWeatherCode(42); got != "Неизвестная погода" {
		t.Errorf("code 42 = %q", got)
	}
}

func TestFormatDay(t *testing.T) {
	d := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC) // Monday

	if got := Default().FormatDay(d); got != "пн, 19 окт." {
		t.Errorf("ru FormatDay = %q", got)
	}
	if got := For("en").FormatDay(d); got != "Mon, Oct 19" {
		t.Errorf("en FormatDay = %q", got)
	}
}

func TestLoadFailedText(t *testing.T) {
	got := Default().LoadFailedText(errors.New("forecast: http status 503"))
	want := "Ошибка загрузки прогноза: forecast: http status 503"
	if got != want {
		t.Fatalf("LoadFailedText = %q, want %q", got, want)
	}
}
