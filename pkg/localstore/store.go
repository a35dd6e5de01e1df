// Package localstore provides the per-plugin TTL key/value store the host
// injects into plugins that implement the LocalStorageConsumer capability.
package localstore

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	// DefaultCapacity bounds how many entries one plugin may hold.
	DefaultCapacity = 1024

	// DefaultTTL applies to entries stored without an explicit TTL.
	DefaultTTL = 30 * time.Minute
)

type entry struct {
	value     interface{}
	expiresAt time.Time
}

// Store is a size-bounded key/value cache with per-entry time-to-live.
// Expired entries are dropped lazily on access. Each plugin activation gets
// its own Store; stores are never shared between plugins.
type Store struct {
	cache      *lru.Cache[string, entry]
	defaultTTL time.Duration
	now        func() time.Time
}

// New creates a store with the default capacity and TTL.
func New() *Store {
	store, _ := NewWithConfig(DefaultCapacity, DefaultTTL)
	return store
}

// NewWithConfig creates a store with explicit capacity and default TTL.
func NewWithConfig(capacity int, defaultTTL time.Duration) (*Store, error) {
	cache, err := lru.New[string, entry](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{
		cache:      cache,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}, nil
}

// Set stores a value under the default TTL.
func (s *Store) Set(key string, value interface{}) {
	s.SetWithTTL(key, value, s.defaultTTL)
}

// SetWithTTL stores a value that expires after ttl. A non-positive ttl falls
// back to the default.
func (s *Store) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.cache.Add(key, entry{
		value:     value,
		expiresAt: s.now().Add(ttl),
	})
}

// Get returns the live value for key. Expired entries are removed and
// reported as absent.
func (s *Store) Get(key string) (interface{}, bool) {
	e, ok := s.cache.Get(key)
	if !ok {
		return nil, false
	}
	if s.now().After(e.expiresAt) {
		s.cache.Remove(key)
		return nil, false
	}
	return e.value, true
}

// Delete removes a key.
func (s *Store) Delete(key string) {
	s.cache.Remove(key)
}

// Len returns the number of stored entries, including any that have expired
// but not yet been evicted.
func (s *Store) Len() int {
	return s.cache.Len()
}

// Purge removes all entries.
func (s *Store) Purge() {
	s.cache.Purge()
}
