package widget

import (
	"sync"

	"github.com/skycast/skycast/internal/location"
)

// Session holds the only state that outlives a single load cycle: the last
// successfully resolved location (the target for error-recovery reloads) and
// the forecast view toggle. A generation counter lets overlapping loads
// detect that a newer load has started, so a stale result never overwrites a
// fresher one.
type Session struct {
	mu           sync.Mutex
	lastLocation *location.Location
	viewMode     ViewMode
	generation   uint64
}

// NewSession creates a session starting in the hourly view.
func NewSession() *Session {
	return &Session{viewMode: ViewHourly}
}

// LastLocation returns the last successfully resolved location, or nil.
func (s *Session) LastLocation() *location.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastLocation
}

// ViewMode returns the current forecast view mode.
func (s *Session) ViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewMode
}

// ToggleView flips between hourly and daily and returns the new mode.
func (s *Session) ToggleView() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewMode == ViewHourly {
		s.viewMode = ViewDaily
	} else {
		s.viewMode = ViewHourly
	}
	return s.viewMode
}

// beginLoad marks the start of a load cycle and returns its generation.
func (s *Session) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// commit records a successful load. It returns false without writing when a
// newer load has started since gen, making the newer result authoritative.
func (s *Session) commit(gen uint64, loc *location.Location) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.lastLocation = loc
	return true
}
