package crawler

import (
	"sync"

	"github.com/NoamNol/geoscraper/internal/model"
)

// LocationStore is the shared, append-only collection of discovered
// locations. Appends happen concurrently from all crawl workers during
// discovery; enrichment later mutates the stored locations in place, one
// goroutine per location, so no locking is needed for that phase.
//
// Identity is the location's URL: a second location with a URL already in
// the store is dropped, which is what makes re-scanning a page idempotent.
type LocationStore struct {
	mu        sync.Mutex
	locations []*model.Location

	// byURL indexes stored locations for O(1) duplicate checks.
	byURL map[string]struct{}
}

// NewLocationStore creates an empty store.
func NewLocationStore() *LocationStore {
	return &LocationStore{
		locations: make([]*model.Location, 0),
		byURL:     make(map[string]struct{}),
	}
}

// Add appends a location unless one with the same identity URL is already
// stored or the location has no points. It reports whether the location
// was added.
func (s *LocationStore) Add(loc *model.Location) bool {
	if loc == nil || len(loc.Points) == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byURL[loc.URL]; ok {
		return false
	}
	s.byURL[loc.URL] = struct{}{}
	s.locations = append(s.locations, loc)
	return true
}

// Locations returns a snapshot of the stored locations in insertion order.
// The returned slice is a copy; the pointed-to locations are shared.
func (s *LocationStore) Locations() []*model.Location {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]*model.Location, len(s.locations))
	copy(snapshot, s.locations)
	return snapshot
}

// Len returns the number of stored locations.
func (s *LocationStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locations)
}
