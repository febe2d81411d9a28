// Package nominatim provides a client for the Nominatim reverse geocoding API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/skycast/skycast/internal/location"
	"github.com/skycast/skycast/internal/provider/resilience"
)

const (
	// ProviderName identifies this reverse geocoding provider.
	ProviderName = "nominatim"

	// DefaultBaseURL is the Nominatim API base URL.
	DefaultBaseURL = "https://nominatim.openstreetmap.org"

	// DefaultUserAgent identifies this client. Nominatim's usage policy
	// rejects requests without a client-identifying User-Agent.
	DefaultUserAgent = "skycast/1.0 (github.com/skycast/skycast)"

	// DefaultTimeout is the default per-attempt request timeout.
	DefaultTimeout = 10 * time.Second

	// reverseZoom selects city-level granularity in reverse results.
	reverseZoom = 10
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Nominatim client.
type ClientConfig struct {
	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// UserAgent identifies the client (defaults to DefaultUserAgent).
	UserAgent string

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

// Client is a Nominatim reverse geocoding client.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Nominatim client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
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
		userAgent:  userAgent,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// API response types (from the Nominatim API).

type reverseResponse struct {
	Address addressData `json:"address"`
}

type addressData struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Hamlet       string `json:"hamlet"`
	State        string `json:"state"`
	Region       string `json:"region"`
	Province     string `json:"province"`
	County       string `json:"county"`
	Country      string `json:"country"`
}

// Reverse returns the address nearest to the given coordinates.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*location.Address, error) {
	reqURL := fmt.Sprintf("%s/reverse?lat=%.6f&lon=%.6f&zoom=%d&addressdetails=1&format=json",
		c.baseURL, lat, lon, reverseZoom)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	var result reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	a := result.Address
	return &location.Address{
		City:         a.City,
		Town:         a.Town,
		Village:      a.Village,
		Municipality: a.Municipality,
		Hamlet:       a.Hamlet,
		State:        a.State,
		Region:       a.Region,
		Province:     a.Province,
		County:       a.County,
		Country:      a.Country,
	}, nil
}
