package resilience

import (
	"errors"
	"fmt"
	"net/http"
)

// Predefined errors for resilient operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTimeout is returned when the final attempt was cancelled by its deadline.
	ErrTimeout = errors.New("request timed out")

	// ErrConnectivity is returned when the final attempt failed with a low-level
	// network fault (DNS failure, connection refused, reset).
	ErrConnectivity = errors.New("network connection failed")
)

// StatusError represents a non-2xx HTTP response that survived all retry attempts.
type StatusError struct {
	Code   int
	Reason string
}

func (e *StatusError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = http.StatusText(e.Code)
	}
	return fmt.Sprintf("http error %d: %s", e.Code, reason)
}

// IsRetryable reports whether an error represents a transient condition that a
// caller may reasonably retry at a higher level (e.g. a delayed reload).
// Validation-style errors are never retryable; only timeouts, connectivity
// faults and upstream status errors qualify.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrConnectivity) {
		return true
	}
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}
