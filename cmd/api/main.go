// Package main provides the entrypoint for the SkyCast API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/skycast/skycast/internal/api"
	"github.com/skycast/skycast/internal/api/middleware"
	"github.com/skycast/skycast/internal/config"
	"github.com/skycast/skycast/internal/forecast"
	"github.com/skycast/skycast/internal/forecast/openmeteo"
	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/location/nominatim"
	"github.com/skycast/skycast/internal/location/openmeteogeo"
	"github.com/skycast/skycast/internal/provider/resilience"
	"github.com/skycast/skycast/internal/telemetry"
	"github.com/skycast/skycast/internal/widget"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "skycast-api"

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting SkyCast API")

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Telemetry.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Provider registry tracks breaker state for all upstream clients.
	registry := resilience.NewRegistry()

	resilientClient := func(name string) *resilience.Client {
		clientCfg := resilience.DefaultClientConfig(name)
		clientCfg.Timeout = cfg.Providers.RequestTimeout
		clientCfg.MaxAttempts = uint64(cfg.Providers.MaxAttempts)
		clientCfg.Registry = registry
		return resilience.NewClient(clientCfg)
	}

	// Initialize location resolution (forward + reverse geocoding)
	geocoder := openmeteogeo.NewClient(openmeteogeo.ClientConfig{
		BaseURL:    cfg.Providers.GeocodingBaseURL,
		HTTPClient: resilientClient(openmeteogeo.ProviderName),
		Logger:     log,
	})
	reverseGeocoder := nominatim.NewClient(nominatim.ClientConfig{
		BaseURL:    cfg.Providers.ReverseBaseURL,
		UserAgent:  cfg.Providers.ReverseUserAgent,
		HTTPClient: resilientClient(nominatim.ProviderName),
		Logger:     log,
	})
	locationService := location.NewService(location.ServiceConfig{
		Geocoder:        geocoder,
		ReverseGeocoder: reverseGeocoder,
		Logger:          log,
	})
	log.Info().Msg("location service initialized")

	// Initialize weather fetching
	forecastClient := openmeteo.NewClient(openmeteo.ClientConfig{
		BaseURL:    cfg.Providers.ForecastBaseURL,
		HTTPClient: resilientClient(openmeteo.ProviderName),
		Logger:     log,
	})
	forecastService := forecast.NewService(forecast.ServiceConfig{
		Provider: forecastClient,
		Logger:   log,
	})
	log.Info().Msg("forecast service initialized")

	// Initialize the widget controller
	controller := widget.NewController(widget.ControllerConfig{
		Locations:        locationService,
		Forecasts:        forecastService,
		Builder:          widget.NewBuilder(nil),
		Logger:           log,
		RetryDelay:       cfg.Widget.RetryDelay,
		DisableAutoRetry: cfg.Widget.DisableAutoRetry,
	})
	log.Info().Msg("widget controller initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Controller:  controller,
		Registry:    registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
