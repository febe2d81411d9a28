package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skycast/skycast/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "https://api.open-meteo.com/v1", cfg.Providers.ForecastBaseURL)
	assert.Equal(t, "https://geocoding-api.open-meteo.com/v1", cfg.Providers.GeocodingBaseURL)
	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.Providers.ReverseBaseURL)
	assert.NotEmpty(t, cfg.Providers.ReverseUserAgent)
	assert.Equal(t, 10*time.Second, cfg.Providers.RequestTimeout)
	assert.Equal(t, 3, cfg.Providers.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.Widget.RetryDelay)
	assert.False(t, cfg.Widget.DisableAutoRetry)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("WIDGET_RETRY_DELAY", "2s")
	t.Setenv("PROVIDER_MAX_ATTEMPTS", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Widget.RetryDelay)
	assert.Equal(t, 5, cfg.Providers.MaxAttempts)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad forecast url", "FORECAST_BASE_URL", "open-meteo.com"},
		{"empty user agent", "REVERSE_GEOCODING_USER_AGENT", ""},
		{"zero attempts", "PROVIDER_MAX_ATTEMPTS", "0"},
		{"sub-second retry delay", "WIDGET_RETRY_DELAY", "100ms"},
		{"unknown log level", "LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
