// Package i18n holds every user-visible string of the dashboard.
package i18n

import (
	"fmt"
	"time"
	"weather-dashboard/internal/domain"

	"golang.org/x/text/language"
)

// Catalog is an immutable set of localized strings.
type Catalog struct {
	Tag language.Tag

	Today           string
	Loading         string
	Loaded          string
	LoadFailed      string // fmt verb: failure message
	Locating        string
	CurrentLocation string
	GeoUnsupported  string
	GeoFailed       string
	NoMainCity      string
	ChooseMainCity  string
	EnterCityName   string
	SelectFromList  string
	AlreadyAdded    string
	AlreadyMain     string
	RemoveCity      string
	AddCity         string
	MainCityTitle   string
	CityPlaceholder string
	KeyHelp         string

	weather  map[domain.WeatherCategory]string
	weekdays [7]string
	months   [12]string
	// Renders weekday, day of month and month names into a short date.
	dateLayout func(weekday string, day int, month string) string
}

var russian = &Catalog{
	Tag:             language.Russian,
	Today:           "Сегодня",
	Loading:         "Загрузка прогноза...",
	Loaded:          "Прогноз успешно загружен",
	LoadFailed:      "Ошибка загрузки прогноза: %s",
	Locating:        "Определяем текущее местоположение...",
	CurrentLocation: "Текущее местоположение",
	GeoUnsupported:  "Геолокация не поддерживается. Выберите город вручную.",
	GeoFailed:       "Не удалось получить геолокацию. Выберите город вручную.",
	NoMainCity:      "Город не выбран.",
	ChooseMainCity:  "Выберите основной город для отображения прогноза.",
	EnterCityName:   "Введите название города.",
	SelectFromList:  "Выберите город из выпадающего списка.",
	AlreadyAdded:    "Этот город уже добавлен.",
	AlreadyMain:     "Этот город уже выбран как основной.",
	RemoveCity:      "Удалить город",
	AddCity:         "Добавить город",
	MainCityTitle:   "Основной город",
	CityPlaceholder: "Название города",
	KeyHelp:         "Tab фокус · ↑/↓ выбор · Enter добавить · Del удалить · Ctrl+R обновить · Ctrl+G геолокация · Ctrl+L основной город · Ctrl+C выход",
	weather: map[domain.WeatherCategory]string{
		domain.WeatherClear:            "Ясно",
		domain.WeatherPartlyCloudy:     "Переменная облачность",
		domain.WeatherOvercast:         "Пасмурно",
		domain.WeatherFog:              "Туман",
		domain.WeatherDrizzle:          "Морось",
		domain.WeatherRain:             "Дождь",
		domain.WeatherFreezingRain:     "Ледяной дождь",
		domain.WeatherSnow:             "Снег",
		domain.WeatherShowers:          "Ливень",
		domain.WeatherThunderstorm:     "Гроза",
		domain.WeatherThunderstormHail: "Гроза с градом",
		domain.WeatherUnknown:          "Неизвестная погода",
	},
	weekdays: [7]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"},
	months: [12]string{
		"янв.", "февр.", "мар.", "апр.", "мая", "июн.",
		"июл.", "авг.", "сент.", "окт.", "нояб.", "дек.",
	},
	dateLayout: func(weekday string, day int, month string) string {
		return fmt.Sprintf("%s, %d %s", weekday, day, month)
	},
}

var english = &Catalog{
	Tag:             language.English,
	Today:           "Today",
	Loading:         "Loading forecast...",
	Loaded:          "Forecast loaded",
	LoadFailed:      "Failed to load forecast: %s",
	Locating:        "Detecting current location...",
	CurrentLocation: "Current location",
	GeoUnsupported:  "Geolocation is not supported. Choose a city manually.",
	GeoFailed:       "Could not get your location. Choose a city manually.",
	NoMainCity:      "No city selected.",
	ChooseMainCity:  "Choose a main city to see its forecast.",
	EnterCityName:   "Enter a city name.",
	SelectFromList:  "Pick a city from the dropdown list.",
	AlreadyAdded:    "This city has already been added.",
	AlreadyMain:     "This city is already your main city.",
	RemoveCity:      "Remove city",
	AddCity:         "Add city",
	MainCityTitle:   "Main city",
	CityPlaceholder: "City name",
	KeyHelp:         "Tab focus · ↑/↓ select · Enter add · Del remove · Ctrl+R refresh · Ctrl+G locate · Ctrl+L main city · Ctrl+C quit",
	weather: map[domain.WeatherCategory]string{
		domain.WeatherClear:            "Clear",
		domain.WeatherPartlyCloudy:     "Partly cloudy",
		domain.WeatherOvercast:         "Overcast",
		domain.WeatherFog:              "Fog",
		domain.WeatherDrizzle:          "Drizzle",
		domain.WeatherRain:             "Rain",
		domain.WeatherFreezingRain:     "Freezing rain",
		domain.WeatherSnow:             "Snow",
		domain.WeatherShowers:          "Showers",
		domain.WeatherThunderstorm:     "Thunderstorm",
		domain.WeatherThunderstormHail: "Thunderstorm with hail",
		domain.WeatherUnknown:          "Unknown weather",
	},
	weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	months: [12]string{
		"Jan", "Feb", "Mar", "Apr", "May", "Jun",
		"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	},
	dateLayout: func(weekday string, day int, month string) string {
		return fmt.Sprintf("%s, %s %d", weekday, month, day)
	},
}

var matcher = language.NewMatcher([]language.Tag{language.Russian, language.English})

// For returns the catalog best matching a BCP 47 tag or Accept-Language style list.
// Russian is the fallback.
func For(locale string) *Catalog {
	tags, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(tags) == 0 {
		return russian
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return russian
	}
	if idx == 1 {
		return english
	}
	return russian
}

func Default() *Catalog { return russian }

// Localized text for a WMO weather code.
func (c *Catalog) DescribeWeatherCode(code int) string {
	return c.weather[domain.DescribeWeatherCode(code)]
}

// Short label for a calendar day, e.g. "пн, 20 окт.".
func (c *Catalog) FormatDay(d time.Time) string {
	return c.dateLayout(c.weekdays[d.Weekday()], d.Day(), c.months[d.Month()-1])
}

// Status text for a failed forecast load.
func (c *Catalog) LoadFailedText(err error) string {
	return fmt.Sprintf(c.LoadFailed, err.Error())
}
