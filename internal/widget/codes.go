package widget

// codeInfo pairs a human-readable description with an icon token.
type codeInfo struct {
	Description string
	Icon        string
}

// Fallback for weather codes outside the known WMO set.
const (
	UnknownDescription = "Unknown"
	UnknownIcon        = "❓"
)

// weatherCodes is the fixed, total mapping over the WMO weather
// interpretation codes reported by the forecast provider.
var weatherCodes = map[int]codeInfo{
	0:  {"Clear sky", "☀️"},
	1:  {"Mainly clear", "🌤️"},
	2:  {"Partly cloudy", "⛅"},
	3:  {"Overcast", "☁️"},
	45: {"Fog", "🌫️"},
	48: {"Depositing rime fog", "🌫️"},
	51: {"Light drizzle", "🌦️"},
	53: {"Moderate drizzle", "🌦️"},
	55: {"Dense drizzle", "🌧️"},
	56: {"Light freezing drizzle", "🌧️"},
	57: {"Dense freezing drizzle", "🌧️"},
	61: {"Slight rain", "🌧️"},
	63: {"Moderate rain", "🌧️"},
	65: {"Heavy rain", "🌧️"},
	66: {"Light freezing rain", "🌧️"},
	67: {"Heavy freezing rain", "🌧️"},
	71: {"Slight snow fall", "🌨️"},
	73: {"Moderate snow fall", "🌨️"},
	75: {"Heavy snow fall", "❄️"},
	77: {"Snow grains", "❄️"},
	80: {"Slight rain showers", "🌦️"},
	81: {"Moderate rain showers", "🌧️"},
	82: {"Violent rain showers", "⛈️"},
	85: {"Slight snow showers", "🌨️"},
	86: {"Heavy snow showers", "❄️"},
	95: {"Thunderstorm", "⛈️"},
	96: {"Thunderstorm with slight hail", "⛈️"},
	99: {"Thunderstorm with heavy hail", "⛈️"},
}

// DescribeWeatherCode maps a provider weather code to a description and icon
// token. Codes outside the known set yield the explicit Unknown fallback
// rather than failing.
func DescribeWeatherCode(code int) (description, icon string) {
	if info, ok := weatherCodes[code]; ok {
		return info.Description, info.Icon
	}
	return UnknownDescription, UnknownIcon
}
