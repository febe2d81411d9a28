package widget

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/skycast/skycast/internal/forecast"
	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/provider/resilience"
)

// DefaultRetryDelay is the pause before the single error-recovery reload.
const DefaultRetryDelay = 5 * time.Second

// ControllerConfig holds configuration for the widget controller.
type ControllerConfig struct {
	// Locations resolves queries and coordinates (required).
	Locations *location.Service

	// Forecasts fetches and validates weather payloads (required).
	Forecasts *forecast.Service

	// Builder produces view models (required).
	Builder *Builder

	// Logger for controller operations.
	Logger zerolog.Logger

	// RetryDelay is the pause before the automatic recovery reload.
	// Default: 5 seconds.
	RetryDelay time.Duration

	// DisableAutoRetry turns off the recovery reload entirely.
	DisableAutoRetry bool
}

// Controller orchestrates the widget load cycle: resolve location, fetch
// weather, build view models. It owns the Session and applies the recovery
// policy: transient failures (timeout, connectivity) trigger one delayed
// reload against the last successfully resolved location.
type Controller struct {
	locations  *location.Service
	forecasts  *forecast.Service
	builder    *Builder
	logger     zerolog.Logger
	retryDelay time.Duration
	autoRetry  bool
	session    *Session
}

// NewController creates a widget controller with a fresh session.
func NewController(cfg ControllerConfig) *Controller {
	retryDelay := cfg.RetryDelay
	if retryDelay == 0 {
		retryDelay = DefaultRetryDelay
	}

	return &Controller{
		locations:  cfg.Locations,
		forecasts:  cfg.Forecasts,
		builder:    cfg.Builder,
		logger:     cfg.Logger,
		retryDelay: retryDelay,
		autoRetry:  !cfg.DisableAutoRetry,
		session:    NewSession(),
	}
}

// Session exposes the controller's session state.
func (c *Controller) Session() *Session {
	return c.session
}

// Load runs a full load cycle for a free-text city query.
func (c *Controller) Load(ctx context.Context, query string) (*RenderData, error) {
	loc, err := c.locations.ResolveByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return c.loadForecast(ctx, loc)
}

// LoadByCoordinates runs a full load cycle for a raw coordinate pair, e.g.
// from the browser's geolocation source. Out-of-range coordinates fail before
// any network call.
func (c *Controller) LoadByCoordinates(ctx context.Context, lat, lon float64) (*RenderData, error) {
	if err := forecast.ValidateCoordinates(lat, lon); err != nil {
		return nil, err
	}
	loc := c.locations.ResolveByCoordinates(ctx, lat, lon)
	return c.loadForecast(ctx, loc)
}

// Suggest returns search suggestions for a partial query. Best-effort.
func (c *Controller) Suggest(ctx context.Context, query string) []location.Suggestion {
	return c.locations.Suggest(ctx, query)
}

// loadForecast fetches weather for a resolved location, builds the render
// payload, and commits the location to the session on success.
func (c *Controller) loadForecast(ctx context.Context, loc *location.Location) (*RenderData, error) {
	gen := c.session.beginLoad()

	data, err := c.buildFor(ctx, loc)
	if err != nil && c.autoRetry && isTransient(err) {
		retryLoc := c.session.LastLocation()
		if retryLoc == nil {
			retryLoc = loc
		}

		c.logger.Warn().Err(err).
			Str("location", retryLoc.Name).
			Dur("delay", c.retryDelay).
			Msg("transient load failure, scheduling recovery reload")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.retryDelay):
		}

		loc = retryLoc
		data, err = c.buildFor(ctx, loc)
	}
	if err != nil {
		return nil, err
	}

	if !c.session.commit(gen, loc) {
		c.logger.Debug().Str("location", loc.Name).Msg("discarding stale load result")
	}

	return data, nil
}

// buildFor runs the fetch-and-build half of a load cycle.
func (c *Controller) buildFor(ctx context.Context, loc *location.Location) (*RenderData, error) {
	payload, err := c.forecasts.FetchWeather(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		return nil, err
	}

	return &RenderData{
		Location: loc,
		Current:  c.builder.BuildCurrent(payload, loc),
		Today:    c.builder.BuildToday(payload),
		Hourly:   c.builder.BuildHourly(payload, c.builder.LocalHour(payload)),
		Daily:    c.builder.BuildDaily(payload),
	}, nil
}

// isTransient reports whether a load failure qualifies for the recovery
// reload. Only timeout and connectivity classifications do; validation,
// not-found and malformed-payload failures are not helped by retrying.
func isTransient(err error) bool {
	return errors.Is(err, resilience.ErrTimeout) || errors.Is(err, resilience.ErrConnectivity)
}
