package forecast_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast/skycast/internal/forecast"
)

type fakeProvider struct {
	payload *forecast.Payload
	err     error
	calls   int
}

func (f *fakeProvider) GetForecast(_ context.Context, _, _ float64) (*forecast.Payload, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func (f *fakeProvider) Name() string { return "fake-weather" }

func fptr(v float64) *float64 { return &v }

// validPayload builds a well-formed 5-day, 24-hour payload.
func validPayload() *forecast.Payload {
	hours := 24
	hourly := &forecast.Hourly{
		Time:        make([]string, hours),
		Temperature: make([]float64, hours),
		WeatherCode: make([]int, hours),
	}
	days := forecast.ForecastDays
	daily := &forecast.Daily{
		Time:                   make([]string, days),
		WeatherCode:            make([]int, days),
		TemperatureMax:         make([]float64, days),
		TemperatureMin:         make([]float64, days),
		ApparentTemperatureMax: make([]float64, days),
		ApparentTemperatureMin: make([]float64, days),
		PrecipitationSum:       make([]*float64, days),
		WindSpeedMax:           make([]float64, days),
	}
	return &forecast.Payload{
		Latitude:  40.7,
		Longitude: -74.0,
		Timezone:  "America/New_York",
		Current:   &forecast.Current{Time: "2026-09-01T12:00", Temperature: 72, WeatherCode: 0},
		Hourly:    hourly,
		Daily:     daily,
	}
}

func newService(p *fakeProvider) *forecast.Service {
	return forecast.NewService(forecast.ServiceConfig{Provider: p, Logger: zerolog.Nop()})
}

func TestFetchWeather_Success(t *testing.T) {
	provider := &fakeProvider{payload: validPayload()}

	got, err := newService(provider).FetchWeather(context.Background(), 40.7, -74.0)
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", got.Timezone)
}

func TestFetchWeather_CoordinateValidationSkipsNetwork(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		field    string
	}{
		{"latitude above range", 91, 0, "latitude"},
		{"latitude below range", -90.1, 0, "latitude"},
		{"longitude above range", 0, 181, "longitude"},
		{"longitude below range", 0, -180.5, "longitude"},
		{"latitude NaN", math.NaN(), 0, "latitude"},
		{"longitude infinite", 0, math.Inf(1), "longitude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{payload: validPayload()}

			_, err := newService(provider).FetchWeather(context.Background(), tt.lat, tt.lon)
			require.Error(t, err)
			assert.ErrorIs(t, err, forecast.ErrInvalidCoordinate)

			var coordErr *forecast.CoordinateError
			require.ErrorAs(t, err, &coordErr)
			assert.Equal(t, tt.field, coordErr.Field)
			assert.Zero(t, provider.calls, "coordinate failures must bypass the network")
		})
	}
}

func TestFetchWeather_BoundaryCoordinatesAccepted(t *testing.T) {
	provider := &fakeProvider{payload: validPayload()}
	svc := newService(provider)

	for _, c := range [][2]float64{{90, 180}, {-90, -180}, {0, 0}} {
		_, err := svc.FetchWeather(context.Background(), c[0], c[1])
		require.NoError(t, err)
	}
}

func TestFetchWeather_MissingBlockFails(t *testing.T) {
	for _, block := range []string{"current", "hourly", "daily"} {
		t.Run("missing "+block, func(t *testing.T) {
			p := validPayload()
			switch block {
			case "current":
				p.Current = nil
			case "hourly":
				p.Hourly = nil
			case "daily":
				p.Daily = nil
			}

			_, err := newService(&fakeProvider{payload: p}).FetchWeather(context.Background(), 40.7, -74.0)
			require.Error(t, err)
			assert.ErrorIs(t, err, forecast.ErrInvalidPayload)
			assert.Contains(t, err.Error(), block)
		})
	}
}

func TestFetchWeather_ParallelArrayMismatchFails(t *testing.T) {
	p := validPayload()
	p.Hourly.Temperature = p.Hourly.Temperature[:10]

	_, err := newService(&fakeProvider{payload: p}).FetchWeather(context.Background(), 40.7, -74.0)
	require.Error(t, err)
	assert.ErrorIs(t, err, forecast.ErrInvalidPayload)

	p = validPayload()
	p.Daily.PrecipitationSum = append(p.Daily.PrecipitationSum, fptr(0.1))

	_, err = newService(&fakeProvider{payload: p}).FetchWeather(context.Background(), 40.7, -74.0)
	require.Error(t, err)
	assert.ErrorIs(t, err, forecast.ErrInvalidPayload)
}

func TestFetchWeather_WrapsProviderFailure(t *testing.T) {
	cause := errors.New("connection reset")

	_, err := newService(&fakeProvider{err: cause}).FetchWeather(context.Background(), 40.7, -74.0)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unable to fetch weather data")
}
