package resilience

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
)

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies this client for circuit breaker naming and health tracking.
	Name string

	// Timeout bounds a single attempt. An attempt that exceeds it is cancelled
	// and counts as a failed attempt.
	// Default: 10 seconds
	Timeout time.Duration

	// MaxAttempts is the total attempt budget, including the first attempt.
	// Default: 3
	MaxAttempts uint64

	// InitialInterval is the wait after the first failed attempt. Subsequent
	// waits double (no jitter), so the defaults give 1s, then 2s, and no wait
	// after the final attempt.
	// Default: 1 second
	InitialInterval time.Duration

	// MaxInterval caps the retry backoff interval.
	// Default: 30 seconds
	MaxInterval time.Duration

	// CircuitBreaker is the circuit breaker configuration.
	// If nil, uses DefaultCircuitBreakerConfig.
	CircuitBreaker *CircuitBreakerConfig

	// Registry receives health updates for this client. Optional.
	Registry *Registry
}

// DefaultClientConfig returns sensible defaults for the resilient client.
func DefaultClientConfig(name string) ClientConfig {
	cbConfig := DefaultCircuitBreakerConfig(name)
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxAttempts:     3,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		CircuitBreaker:  &cbConfig,
	}
}

// Client is a resilient HTTP client with per-attempt timeouts, bounded retry
// with exponential backoff, and circuit breaker protection. Terminal failures
// are classified as ErrTimeout, ErrConnectivity or *StatusError so callers can
// branch on the failure kind instead of inspecting message text.
type Client struct {
	httpClient     *http.Client
	circuitBreaker *gobreaker.CircuitBreaker[*http.Response]
	config         ClientConfig
	registry       *Registry
}

// NewClient creates a new resilient HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 1 * time.Second
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 30 * time.Second
	}

	var cb *gobreaker.CircuitBreaker[*http.Response]
	if cfg.CircuitBreaker != nil {
		cb = NewCircuitBreaker[*http.Response](*cfg.CircuitBreaker) //nolint:bodyclose // type param, not response
	} else {
		defaultCB := DefaultCircuitBreakerConfig(cfg.Name)
		cb = NewCircuitBreaker[*http.Response](defaultCB) //nolint:bodyclose // type param, not response
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker: cb,
		config:         cfg,
		registry:       cfg.Registry,
	}

	if c.registry != nil {
		c.registry.Register(cfg.Name, c)
	}

	return c
}

// Do executes an HTTP request with retry and circuit breaker protection.
// Any non-2xx response counts as a failed attempt. Once the attempt budget is
// exhausted the last failure is surfaced, classified.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.DoWithContext(req.Context(), req)
}

// DoWithContext executes an HTTP request with the given context. The context
// bounds the whole operation including backoff waits; each individual attempt
// is additionally bounded by the configured per-attempt timeout.
func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0 // attempt budget is enforced via WithMaxRetries

	backoffWithRetries := backoff.WithMaxRetries(bo, c.config.MaxAttempts-1)
	backoffWithContext := backoff.WithContext(backoffWithRetries, ctx)

	var resp *http.Response
	var lastErr error

	operation := func() error {
		r, err := c.circuitBreaker.Execute(func() (*http.Response, error) { //nolint:bodyclose // caller is responsible for closing
			// Clone the request for retry safety.
			reqClone := req.Clone(ctx)
			r, err := c.httpClient.Do(reqClone)
			if err != nil {
				return nil, classifyTransportError(err)
			}

			if r.StatusCode < 200 || r.StatusCode > 299 {
				// Drain and close so the connection can be reused across attempts.
				_, _ = io.Copy(io.Discard, r.Body)
				_ = r.Body.Close()
				return nil, &StatusError{Code: r.StatusCode, Reason: http.StatusText(r.StatusCode)}
			}

			return r, nil
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}

			lastErr = err
			if c.registry != nil {
				c.registry.RecordFailure(c.config.Name, err)
			}
			return err
		}

		resp = r
		if c.registry != nil {
			c.registry.RecordSuccess(c.config.Name)
		}
		return nil
	}

	if err := backoff.Retry(operation, backoffWithContext); err != nil {
		// Prefer the classified attempt failure over the context error so the
		// caller sees what actually went wrong on the wire.
		if lastErr != nil && !errors.Is(err, ErrCircuitOpen) {
			return nil, lastErr
		}
		return nil, err
	}

	return resp, nil
}

// classifyTransportError maps a transport-level failure onto the error taxonomy.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %v", ErrConnectivity, err)
}

// CircuitBreakerState returns the current state of the circuit breaker.
func (c *Client) CircuitBreakerState() gobreaker.State {
	return c.circuitBreaker.State()
}

// CircuitBreakerCounts returns the current counts of the circuit breaker.
func (c *Client) CircuitBreakerCounts() gobreaker.Counts {
	return c.circuitBreaker.Counts()
}
