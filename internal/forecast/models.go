// Package forecast retrieves raw current/hourly/daily weather payloads for a
// coordinate pair, with coordinate-range and payload-shape validation.
package forecast

import (
	"errors"
	"fmt"
	"math"
)

// Forecast errors.
var (
	// ErrInvalidCoordinate is returned for out-of-range or non-finite
	// coordinates, before any network call is made.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrInvalidPayload is returned when the provider response is missing a
	// required block or has inconsistent parallel arrays.
	ErrInvalidPayload = errors.New("invalid weather payload")
)

// ForecastDays is the fixed forecast horizon requested from the provider.
const ForecastDays = 5

// CoordinateError describes which coordinate bound was violated.
type CoordinateError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *CoordinateError) Error() string {
	if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
		return fmt.Sprintf("%s must be a finite number", e.Field)
	}
	return fmt.Sprintf("%s %g out of range [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

func (e *CoordinateError) Unwrap() error {
	return ErrInvalidCoordinate
}

// ValidateCoordinates checks that both values are finite and within range.
// Latitude must be in [-90, 90] and longitude in [-180, 180].
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return &CoordinateError{Field: "latitude", Value: lat, Min: -90, Max: 90}
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return &CoordinateError{Field: "longitude", Value: lon, Min: -180, Max: 180}
	}
	return nil
}

// Payload holds the raw weather data for one location: a point-in-time current
// block plus hourly and daily series as parallel arrays keyed by their time
// arrays. Block pointers are nil when the provider omitted the block; Validate
// rejects such payloads before they reach the view-model builder.
type Payload struct {
	Latitude         float64
	Longitude        float64
	Timezone         string
	UTCOffsetSeconds int
	Current          *Current
	Hourly           *Hourly
	Daily            *Daily
}

// Current is the point-in-time conditions block. Pressure and visibility are
// optional; a nil pointer means the provider did not report them.
type Current struct {
	Time                string
	Temperature         float64
	Humidity            float64
	ApparentTemperature float64
	WeatherCode         int
	WindSpeed           float64
	WindDirection       float64
	Pressure            *float64
	Visibility          *float64
}

// Hourly holds parallel arrays of hourly metrics.
type Hourly struct {
	Time        []string
	Temperature []float64
	WeatherCode []int
}

// Daily holds parallel arrays of daily metrics over the forecast horizon.
// PrecipitationSum entries may be nil when the provider reports no data; the
// view-model layer defaults those to zero.
type Daily struct {
	Time                   []string
	WeatherCode            []int
	TemperatureMax         []float64
	TemperatureMin         []float64
	ApparentTemperatureMax []float64
	ApparentTemperatureMin []float64
	PrecipitationSum       []*float64
	WindSpeedMax           []float64
}

// Validate checks payload shape: all three blocks must be present and every
// parallel array must match the length of its block's time array.
func (p *Payload) Validate() error {
	if p.Current == nil {
		return fmt.Errorf("%w: missing current block", ErrInvalidPayload)
	}
	if p.Hourly == nil {
		return fmt.Errorf("%w: missing hourly block", ErrInvalidPayload)
	}
	if p.Daily == nil {
		return fmt.Errorf("%w: missing daily block", ErrInvalidPayload)
	}

	n := len(p.Hourly.Time)
	if len(p.Hourly.Temperature) != n || len(p.Hourly.WeatherCode) != n {
		return fmt.Errorf("%w: hourly arrays out of step with time array", ErrInvalidPayload)
	}

	d := len(p.Daily.Time)
	if len(p.Daily.WeatherCode) != d ||
		len(p.Daily.TemperatureMax) != d ||
		len(p.Daily.TemperatureMin) != d ||
		len(p.Daily.ApparentTemperatureMax) != d ||
		len(p.Daily.ApparentTemperatureMin) != d ||
		len(p.Daily.PrecipitationSum) != d ||
		len(p.Daily.WindSpeedMax) != d {
		return fmt.Errorf("%w: daily arrays out of step with time array", ErrInvalidPayload)
	}

	return nil
}
