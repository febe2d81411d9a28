package location

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// MaxSuggestions caps the number of candidates returned by Suggest.
const MaxSuggestions = 5

// Geocoder resolves a place name to coordinate candidates.
type Geocoder interface {
	// Search returns up to count candidates for the given place name.
	Search(ctx context.Context, name string, count int) ([]Candidate, error)

	// Name returns the provider name for logging.
	Name() string
}

// ReverseGeocoder resolves coordinates to an address.
type ReverseGeocoder interface {
	// Reverse returns the address nearest to the given coordinates.
	Reverse(ctx context.Context, lat, lon float64) (*Address, error)

	// Name returns the provider name for logging.
	Name() string
}

// ServiceConfig holds configuration for the location service.
type ServiceConfig struct {
	// Geocoder is the forward geocoding provider (required).
	Geocoder Geocoder

	// ReverseGeocoder is the reverse geocoding provider (required).
	ReverseGeocoder ReverseGeocoder

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service resolves locations via geocoding providers.
type Service struct {
	geocoder Geocoder
	reverse  ReverseGeocoder
	logger   zerolog.Logger
}

// NewService creates a new location service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		geocoder: cfg.Geocoder,
		reverse:  cfg.ReverseGeocoder,
		logger:   cfg.Logger,
	}
}

// ResolveByName resolves a free-text city query to a Location. The query is
// validated first; validation failures and the NotFound/InvalidData cases are
// returned unwrapped so callers can branch on them, while lower-level network
// failures are wrapped with a resolution prefix.
func (s *Service) ResolveByName(ctx context.Context, cityName string) (*Location, error) {
	query, err := ValidateQuery(cityName)
	if err != nil {
		return nil, err
	}

	candidates, err := s.geocoder.Search(ctx, query, 1)
	if err != nil {
		return nil, fmt.Errorf("unable to find location: %w", err)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no results for %q", ErrNotFound, query)
	}

	loc, err := candidateToLocation(candidates[0])
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("query", query).
		Str("name", loc.Name).
		Float64("lat", loc.Latitude).
		Float64("lon", loc.Longitude).
		Msg("resolved location by name")

	return loc, nil
}

// ResolveByCoordinates resolves raw coordinates (e.g. from a geolocation
// source) to a named Location via reverse geocoding. It is best-effort: on any
// network or data failure it degrades to a synthetic record carrying the
// supplied coordinates, and never returns an error.
func (s *Service) ResolveByCoordinates(ctx context.Context, lat, lon float64) *Location {
	fallback := &Location{
		Name:      FallbackName,
		Country:   FallbackCountry,
		Latitude:  lat,
		Longitude: lon,
	}

	addr, err := s.reverse.Reverse(ctx, lat, lon)
	if err != nil {
		s.logger.Warn().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Str("provider", s.reverse.Name()).
			Msg("reverse geocoding failed, using fallback location")
		return fallback
	}

	name := firstNonEmpty(addr.City, addr.Town, addr.Village, addr.Municipality, addr.Hamlet)
	if name == "" {
		s.logger.Debug().
			Float64("lat", lat).
			Float64("lon", lon).
			Msg("reverse geocoding returned no locality, using fallback location")
		return fallback
	}

	country := addr.Country
	if country == "" {
		country = UnknownCountry
	}

	return &Location{
		Name:        name,
		Country:     country,
		AdminRegion: firstNonEmpty(addr.State, addr.Region, addr.Province, addr.County),
		Latitude:    lat,
		Longitude:   lon,
	}
}

// Suggest returns up to MaxSuggestions candidates for a partial query. It is
// best-effort: an invalid query yields an empty list without touching the
// network, and provider failures also yield an empty list.
func (s *Service) Suggest(ctx context.Context, query string) []Suggestion {
	validated, err := ValidateQuery(query)
	if err != nil {
		return []Suggestion{}
	}

	candidates, err := s.geocoder.Search(ctx, validated, MaxSuggestions)
	if err != nil {
		s.logger.Warn().Err(err).
			Str("query", validated).
			Str("provider", s.geocoder.Name()).
			Msg("suggestion lookup failed")
		return []Suggestion{}
	}

	suggestions := make([]Suggestion, 0, len(candidates))
	for _, c := range candidates {
		if c.Name == "" || c.Latitude == nil || c.Longitude == nil {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Name:        c.Name,
			Country:     c.Country,
			AdminRegion: c.Admin1,
			Latitude:    *c.Latitude,
			Longitude:   *c.Longitude,
		})
		if len(suggestions) == MaxSuggestions {
			break
		}
	}

	return suggestions
}

// candidateToLocation builds a range-checked Location from the top candidate.
func candidateToLocation(c Candidate) (*Location, error) {
	if c.Name == "" || c.Latitude == nil || c.Longitude == nil {
		return nil, fmt.Errorf("%w: geocoding result missing name or coordinates", ErrInvalidData)
	}

	lat, lon := *c.Latitude, *c.Longitude
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("%w: geocoding result coordinates out of range", ErrInvalidData)
	}

	country := c.Country
	if country == "" {
		country = UnknownCountry
	}

	return &Location{
		Name:        c.Name,
		Country:     country,
		AdminRegion: c.Admin1,
		Latitude:    lat,
		Longitude:   lon,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
