package listingview

import (
	"slices"
	"sync"
	"time"

	"agrisolve/internal/domain/models"
)

// Store keeps the latest listing snapshot. It is built once at startup and handed
// to whoever fetches or reads listings; nothing reaches it through a global.
//
// Fetches may overlap, so each one takes a generation from Begin and reports back
// with it. A result is installed only when no later fetch has been installed yet.
type Store struct {
	mu        sync.RWMutex
	records   []models.Listing
	loaded    bool
	lastErr   error
	fetchedAt time.Time
	issued    uint64
	installed uint64
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot is a read-only view of the store at one instant.
type Snapshot struct {
	Records   []models.Listing
	Loaded    bool
	Err       error
	FetchedAt time.Time
}

// Begin marks the start of a fetch and returns its generation.
func (s *Store) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Replace installs the records fetched under gen, newest first by convention.
// It reports false and changes nothing when a later fetch is already installed.
func (s *Store) Replace(gen uint64, records []models.Listing) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.installed {
		return false
	}
	s.installed = gen
	s.records = slices.Clone(records)
	s.loaded = true
	s.lastErr = nil
	s.fetchedAt = time.Now()
	return true
}

// Fail records the error of the fetch started under gen. An earlier snapshot,
// if any, stays readable. Errors older than the installed snapshot are dropped.
func (s *Store) Fail(gen uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen <= s.installed {
		return false
	}
	s.lastErr = err
	return true
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Records:   s.records,
		Loaded:    s.loaded,
		Err:       s.lastErr,
		FetchedAt: s.fetchedAt,
	}
}

// View materializes the current snapshot, or the loading result before the first
// successful fetch.
func (s *Store) View(f FilterState, favs FavoriteSet) Result {
	snap := s.Snapshot()
	if !snap.Loaded {
		return MaterializeLoading(f)
	}
	return Materialize(snap.Records, f, favs)
}
