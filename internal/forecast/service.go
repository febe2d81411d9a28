package forecast

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Provider defines the interface for weather forecast providers.
type Provider interface {
	// GetForecast fetches the raw forecast payload for a location.
	GetForecast(ctx context.Context, lat, lon float64) (*Payload, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the forecast service.
type ServiceConfig struct {
	// Provider is the weather data provider (required).
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service fetches and validates weather payloads.
type Service struct {
	provider Provider
	logger   zerolog.Logger
}

// NewService creates a new forecast service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		provider: cfg.Provider,
		logger:   cfg.Logger,
	}
}

// FetchWeather retrieves the raw weather payload for the given coordinates.
// Coordinate validation happens before any network call and those failures
// pass through unwrapped, as do payload-shape failures; network failures are
// wrapped with a fetch prefix.
func (s *Service) FetchWeather(ctx context.Context, lat, lon float64) (*Payload, error) {
	if err := ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}

	payload, err := s.provider.GetForecast(ctx, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch weather data: %w", err)
	}

	if err := payload.Validate(); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Float64("lat", lat).
		Float64("lon", lon).
		Str("provider", s.provider.Name()).
		Int("hourly_points", len(payload.Hourly.Time)).
		Int("daily_points", len(payload.Daily.Time)).
		Msg("fetched weather payload")

	return payload, nil
}
