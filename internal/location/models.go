// Package location resolves free-text place queries and raw coordinates into
// canonical location records via forward and reverse geocoding.
package location

import "errors"

// Location errors.
var (
	// ErrInvalidQuery is returned when a free-text query fails validation.
	ErrInvalidQuery = errors.New("invalid location query")

	// ErrNotFound is returned when forward geocoding yields no results.
	ErrNotFound = errors.New("location not found")

	// ErrInvalidData is returned when the geocoding provider returns a result
	// missing required fields.
	ErrInvalidData = errors.New("invalid location data")
)

// Fallback values used when reverse geocoding degrades.
const (
	FallbackName    = "Your Location"
	FallbackCountry = "Current Location"
	UnknownCountry  = "Unknown"
)

// Location is a canonical, range-checked location record. It is immutable once
// constructed; a new search produces a new record rather than mutating this one.
type Location struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	AdminRegion string  `json:"adminRegion,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Suggestion is a lightweight search candidate shown while the user types.
// Suggestions are not validated as strictly as a resolved Location.
type Suggestion struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	AdminRegion string  `json:"adminRegion,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// Candidate is a raw forward-geocoding result. Latitude and longitude are
// pointers so that an absent field is distinguishable from zero.
type Candidate struct {
	Name      string
	Country   string
	Admin1    string
	Latitude  *float64
	Longitude *float64
}

// Address is a raw reverse-geocoding result. The resolver picks the locality
// and region from these fields by preference order.
type Address struct {
	City         string
	Town         string
	Village      string
	Municipality string
	Hamlet       string
	State        string
	Region       string
	Province     string
	County       string
	Country      string
}
