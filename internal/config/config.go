// Package config loads SkyCast configuration from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const maxPortNumber = 65535

// Config represents the application configuration.
type Config struct {
	Server    ServerConfig    `split_words:"true"`
	Providers ProvidersConfig `split_words:"true"`
	Widget    WidgetConfig    `split_words:"true"`
	Telemetry TelemetryConfig `split_words:"true"`
	LogLevel  string          `envconfig:"LOG_LEVEL" default:"info"`
}

// ServerConfig holds HTTP server settings. The write timeout must cover a
// full load cycle including the delayed recovery reload, so it is generous
// by default.
type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"90s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// ProvidersConfig holds upstream provider settings.
type ProvidersConfig struct {
	ForecastBaseURL  string        `envconfig:"FORECAST_BASE_URL" default:"https://api.open-meteo.com/v1"`
	GeocodingBaseURL string        `envconfig:"GEOCODING_BASE_URL" default:"https://geocoding-api.open-meteo.com/v1"`
	ReverseBaseURL   string        `envconfig:"REVERSE_GEOCODING_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	ReverseUserAgent string        `envconfig:"REVERSE_GEOCODING_USER_AGENT" default:"skycast/1.0 (github.com/skycast/skycast)"`
	RequestTimeout   time.Duration `envconfig:"PROVIDER_REQUEST_TIMEOUT" default:"10s"`
	MaxAttempts      int           `envconfig:"PROVIDER_MAX_ATTEMPTS" default:"3"`
}

// WidgetConfig holds widget controller settings.
type WidgetConfig struct {
	RetryDelay       time.Duration `envconfig:"WIDGET_RETRY_DELAY" default:"5s"`
	DisableAutoRetry bool          `envconfig:"WIDGET_DISABLE_AUTO_RETRY" default:"false"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool   `envconfig:"OTEL_ENABLED" default:"false"`
	OTLPEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	Environment  string `envconfig:"OTEL_ENVIRONMENT" default:"development"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("processing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Providers.Validate(); err != nil {
		return err
	}
	if c.Widget.RetryDelay < time.Second {
		return fmt.Errorf("WIDGET_RETRY_DELAY must be at least 1 second")
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	return nil
}

// Validate checks server settings.
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535")
	}
	return nil
}

// Validate checks provider settings.
func (p *ProvidersConfig) Validate() error {
	for name, url := range map[string]string{
		"FORECAST_BASE_URL":          p.ForecastBaseURL,
		"GEOCODING_BASE_URL":         p.GeocodingBaseURL,
		"REVERSE_GEOCODING_BASE_URL": p.ReverseBaseURL,
	} {
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return fmt.Errorf("%s must start with http:// or https://", name)
		}
	}
	if p.ReverseUserAgent == "" {
		return fmt.Errorf("REVERSE_GEOCODING_USER_AGENT cannot be empty")
	}
	if p.RequestTimeout < time.Second {
		return fmt.Errorf("PROVIDER_REQUEST_TIMEOUT must be at least 1 second")
	}
	if p.MaxAttempts < 1 {
		return fmt.Errorf("PROVIDER_MAX_ATTEMPTS must be at least 1")
	}
	return nil
}
