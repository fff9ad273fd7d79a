package cache

import (
	"sync"
	"time"
)

// Category scopes cached payloads so each data kind carries its own TTL.
type Category string

const (
	CategorySchedule Category = "schedule"
	CategoryQuotes   Category = "quotes"
	CategoryForm     Category = "form"
	CategoryProps    Category = "props"
)

// DefaultTTLs mirrors the upstream refresh cadence: schedules move every
// minute, odds every few minutes, team form barely within an hour.
func DefaultTTLs() map[Category]time.Duration {
	return map[Category]time.Duration{
		CategorySchedule: time.Minute,
		CategoryQuotes:   5 * time.Minute,
		CategoryForm:     time.Hour,
		CategoryProps:    5 * time.Minute,
	}
}

// DefaultFallbackWindow bounds how old an entry may be and still serve as
// a stale fallback when the upstream source is failing.
const DefaultFallbackWindow = 30 * time.Minute

type entry struct {
	payload   any
	fetchedAt time.Time
}

// Store is an in-process keyed cache with per-category TTLs and a shared
// stale-fallback window. All methods are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	ttls     map[Category]time.Duration
	fallback time.Duration
	entries  map[string]entry
	now      func() time.Time
}

// New creates a Store. Nil ttls selects DefaultTTLs; a zero fallback
// window selects DefaultFallbackWindow.
func New(ttls map[Category]time.Duration, fallbackWindow time.Duration) *Store {
	if ttls == nil {
		ttls = DefaultTTLs()
	}
	if fallbackWindow <= 0 {
		fallbackWindow = DefaultFallbackWindow
	}
	return &Store{
		ttls:     ttls,
		fallback: fallbackWindow,
		entries:  make(map[string]entry),
		now:      time.Now,
	}
}

func storeKey(cat Category, key string) string {
	return string(cat) + "/" + key
}

// Get returns the cached payload and whether it is still fresh under the
// category TTL. A miss or an entry beyond the fallback window returns
// (nil, false); entries past TTL but inside the fallback window are kept
// for GetStale and reported as not fresh.
func (s *Store) Get(cat Category, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[storeKey(cat, key)]
	if !ok {
		return nil, false
	}
	age := s.now().Sub(e.fetchedAt)
	if age >= s.fallback {
		delete(s.entries, storeKey(cat, key))
		return nil, false
	}
	ttl, ok := s.ttls[cat]
	if !ok {
		ttl = s.fallback
	}
	if age < ttl {
		return e.payload, true
	}
	return nil, false
}

// GetStale returns an expired payload that is still inside the fallback
// window. Callers use it only after a live fetch has failed; results built
// from it must carry a staleness flag.
func (s *Store) GetStale(cat Category, key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[storeKey(cat, key)]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.fetchedAt) >= s.fallback {
		delete(s.entries, storeKey(cat, key))
		return nil, false
	}
	return e.payload, true
}

// Put stores a payload with the current time as its fetch timestamp.
func (s *Store) Put(cat Category, key string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[storeKey(cat, key)] = entry{payload: payload, fetchedAt: s.now()}
}

// Len reports the number of live entries, sweeping anything beyond the
// fallback window first.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range s.entries {
		if s.now().Sub(e.fetchedAt) >= s.fallback {
			delete(s.entries, k)
		}
	}
	return len(s.entries)
}
