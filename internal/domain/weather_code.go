package domain

// WeatherCategory groups WMO weather interpretation codes the way the dashboard describes them.
type WeatherCategory int

const (
	WeatherUnknown WeatherCategory = iota
	WeatherClear
	WeatherPartlyCloudy
	WeatherOvercast
	WeatherFog
	WeatherDrizzle
	WeatherRain
	WeatherFreezingRain
	WeatherSnow
	WeatherShowers
	WeatherThunderstorm
	WeatherThunderstormHail
)

// Code used when the API returns null for a day's weather code.
const MissingWeatherCode = -1

// The code sets mirror the upstream API's code space; do not regroup them.
var weatherCodeTable = map[int]WeatherCategory{
	0:  WeatherClear,
	1:  WeatherPartlyCloudy,
	2:  WeatherPartlyCloudy,
	3:  WeatherOvercast,
	45: WeatherFog,
	48: WeatherFog,
	51: WeatherDrizzle,
	53: WeatherDrizzle,
	55: WeatherDrizzle,
	61: WeatherRain,
	63: WeatherRain,
	65: WeatherRain,
	66: WeatherFreezingRain,
	67: WeatherFreezingRain,
	71: WeatherSnow,
	73: WeatherSnow,
	75: WeatherSnow,
	80: WeatherShowers,
	81: WeatherShowers,
	82: WeatherShowers,
	95: WeatherThunderstorm,
	96: WeatherThunderstormHail,
	99: WeatherThunderstormHail,
}

func DescribeWeatherCode(code int) WeatherCategory {
	if c, ok := weatherCodeTable[code]; ok {
		return c
	}
	return WeatherUnknown
}

func (c WeatherCategory) String() string {
	switch c {
	case WeatherClear:
		return "clear"
	case WeatherPartlyCloudy:
		return "partly cloudy"
	case WeatherOvercast:
		return "overcast"
	case WeatherFog:
		return "fog"
	case WeatherDrizzle:
		return "drizzle"
	case WeatherRain:
		return "rain"
	case WeatherFreezingRain:
		return "freezing rain"
	case WeatherSnow:
		return "snow"
	case WeatherShowers:
		return "showers"
	case WeatherThunderstorm:
		return "thunderstorm"
	case WeatherThunderstormHail:
		return "thunderstorm with hail"
	default:
		return "unknown"
	}
}
