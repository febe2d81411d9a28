// Package openmeteo provides a client for the Open-Meteo forecast API.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skycast/skycast/internal/forecast"
	"github.com/skycast/skycast/internal/provider/resilience"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openmeteo"

	// DefaultBaseURL is the Open-Meteo forecast API base URL.
	DefaultBaseURL = "https://api.open-meteo.com/v1"

	// DefaultTimeout is the default per-attempt request timeout.
	DefaultTimeout = 10 * time.Second
)

// Fixed field sets requested from the API. The widget renders exactly these.
const (
	currentFields = "temperature_2m,relative_humidity_2m,apparent_temperature," +
		"weather_code,wind_speed_10m,wind_direction_10m,surface_pressure,visibility"
	hourlyFields = "temperature_2m,weather_code"
	dailyFields  = "weather_code,temperature_2m_max,temperature_2m_min," +
		"apparent_temperature_max,apparent_temperature_min,precipitation_sum,wind_speed_10m_max"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the per-attempt request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo forecast API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Open-Meteo client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		if cfg.Timeout != 0 {
			clientCfg.Timeout = cfg.Timeout
		}
		clientCfg.Registry = cfg.Registry
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// API response types (from the Open-Meteo forecast API). Block pointers stay
// nil when the API omits a block so the shape check can reject the payload.

type forecastResponse struct {
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
	Timezone         string      `json:"timezone"`
	UTCOffsetSeconds int         `json:"utc_offset_seconds"`
	Current          *currentData `json:"current"`
	Hourly           *hourlyData  `json:"hourly"`
	Daily            *dailyData   `json:"daily"`
}

type currentData struct {
	Time                string   `json:"time"`
	Temperature         float64  `json:"temperature_2m"`
	Humidity            float64  `json:"relative_humidity_2m"`
	ApparentTemperature float64  `json:"apparent_temperature"`
	WeatherCode         int      `json:"weather_code"`
	WindSpeed           float64  `json:"wind_speed_10m"`
	WindDirection       float64  `json:"wind_direction_10m"`
	Pressure            *float64 `json:"surface_pressure"`
	Visibility          *float64 `json:"visibility"`
}

type hourlyData struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature_2m"`
	WeatherCode []int     `json:"weather_code"`
}

type dailyData struct {
	Time                   []string   `json:"time"`
	WeatherCode            []int      `json:"weather_code"`
	TemperatureMax         []float64  `json:"temperature_2m_max"`
	TemperatureMin         []float64  `json:"temperature_2m_min"`
	ApparentTemperatureMax []float64  `json:"apparent_temperature_max"`
	ApparentTemperatureMin []float64  `json:"apparent_temperature_min"`
	PrecipitationSum       []*float64 `json:"precipitation_sum"`
	WindSpeedMax           []float64  `json:"wind_speed_10m_max"`
}

// GetForecast fetches the raw forecast payload for a location. The field set,
// imperial units, auto timezone and 5-day horizon are fixed by the widget.
func (c *Client) GetForecast(ctx context.Context, lat, lon float64) (*forecast.Payload, error) {
	reqURL := fmt.Sprintf(
		"%s/forecast?latitude=%.6f&longitude=%.6f&current=%s&hourly=%s&daily=%s"+
			"&forecast_days=%d&timezone=auto&temperature_unit=fahrenheit&wind_speed_unit=mph&precipitation_unit=inch",
		c.baseURL, lat, lon, currentFields, hourlyFields, dailyFields, forecast.ForecastDays)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	var result forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toPayload(&result), nil
}

// toPayload converts API response data to the domain payload.
func (c *Client) toPayload(r *forecastResponse) *forecast.Payload {
	p := &forecast.Payload{
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		Timezone:         r.Timezone,
		UTCOffsetSeconds: r.UTCOffsetSeconds,
	}

	if r.Current != nil {
		p.Current = &forecast.Current{
			Time:                r.Current.Time,
			Temperature:         r.Current.Temperature,
			Humidity:            r.Current.Humidity,
			ApparentTemperature: r.Current.ApparentTemperature,
			WeatherCode:         r.Current.WeatherCode,
			WindSpeed:           r.Current.WindSpeed,
			WindDirection:       r.Current.WindDirection,
			Pressure:            r.Current.Pressure,
			Visibility:          r.Current.Visibility,
		}
	}

	if r.Hourly != nil {
		p.Hourly = &forecast.Hourly{
			Time:        r.Hourly.Time,
			Temperature: r.Hourly.Temperature,
			WeatherCode: r.Hourly.WeatherCode,
		}
	}

	if r.Daily != nil {
		p.Daily = &forecast.Daily{
			Time:                   r.Daily.Time,
			WeatherCode:            r.Daily.WeatherCode,
			TemperatureMax:         r.Daily.TemperatureMax,
			TemperatureMin:         r.Daily.TemperatureMin,
			ApparentTemperatureMax: r.Daily.ApparentTemperatureMax,
			ApparentTemperatureMin: r.Daily.ApparentTemperatureMin,
			PrecipitationSum:       r.Daily.PrecipitationSum,
			WindSpeedMax:           r.Daily.WindSpeedMax,
		}
	}

	return p
}
