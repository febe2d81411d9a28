// Package widget turns raw weather payloads and resolved locations into
// display-ready view models, and orchestrates the load cycle behind the
// widget's render surface.
package widget

import "github.com/skycast/skycast/internal/location"

// ViewMode selects which forecast list the widget renders.
type ViewMode string

const (
	ViewHourly ViewMode = "hourly"
	ViewDaily  ViewMode = "daily"
)

// CurrentConditions is the display-ready current weather card.
type CurrentConditions struct {
	Temperature        int     `json:"temperature"`
	FeelsLike          int     `json:"feelsLike"`
	Humidity           float64 `json:"humidity"`
	WindSpeed          int     `json:"windSpeed"`
	WindDirection      float64 `json:"windDirection"`
	WindDirectionLabel string  `json:"windDirectionLabel"`
	Pressure           *int    `json:"pressure,omitempty"`
	VisibilityKm       *int    `json:"visibilityKm,omitempty"`
	WeatherCode        int     `json:"weatherCode"`
	Description        string  `json:"description"`
	Icon               string  `json:"icon"`
	UpdatedAt          string  `json:"updatedAt"`
}

// TodaySummary is the display-ready summary card for the current day.
type TodaySummary struct {
	Date          string  `json:"date"`
	WeatherCode   int     `json:"weatherCode"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
	TempMax       int     `json:"tempMax"`
	TempMin       int     `json:"tempMin"`
	FeelsLikeMax  int     `json:"feelsLikeMax"`
	FeelsLikeMin  int     `json:"feelsLikeMin"`
	Precipitation float64 `json:"precipitation"`
	MaxWind       int     `json:"maxWind"`
}

// DailyEntry is one row of the daily forecast list.
type DailyEntry struct {
	Date          string  `json:"date"`
	Weekday       string  `json:"weekday"`
	WeekdayShort  string  `json:"weekdayShort"`
	WeatherCode   int     `json:"weatherCode"`
	Description   string  `json:"description"`
	Icon          string  `json:"icon"`
	TempMax       int     `json:"tempMax"`
	TempMin       int     `json:"tempMin"`
	FeelsLikeMax  int     `json:"feelsLikeMax"`
	FeelsLikeMin  int     `json:"feelsLikeMin"`
	Precipitation float64 `json:"precipitation"`
	MaxWind       int     `json:"maxWind"`
}

// HourlyEntry is one cell of the hourly forecast strip.
type HourlyEntry struct {
	Time        string `json:"time"`
	Hour        int    `json:"hour"`
	Temperature int    `json:"temperature"`
	WeatherCode int    `json:"weatherCode"`
	Icon        string `json:"icon"`
}

// RenderData is the full render payload handed to the widget.
type RenderData struct {
	Location *location.Location `json:"location"`
	Current  *CurrentConditions `json:"current"`
	Today    *TodaySummary      `json:"today,omitempty"`
	Hourly   []HourlyEntry      `json:"hourly"`
	Daily    []DailyEntry       `json:"daily"`
}
