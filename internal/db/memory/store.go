// Package memory provides an in-process db.Store for the local environment
// and for tests. Entries honor TTLs via lazy expiry on read.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/scentdex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time // zero = no expiry
}

// Store is a mutex-guarded in-memory key-value store.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{entries: make(map[string]entry), now: time.Now}
}

// NewStoreWithClock creates a store with an injectable clock (test-only).
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{entries: make(map[string]entry), now: now}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady always succeeds immediately.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || s.expired(e) {
		return nil, db.ErrKeyNotFound
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// Set stores a value at the given key with no expiry.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.put(key, value, 0)
	return nil
}

// SetWithTTL stores a value with an expiration, replacing any existing entry
// under the lock so readers see either the old or the new value, never a mix.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.put(key, value, ttl)
	return nil
}

// Del removes a key.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Exists reports whether a key is present and not expired.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	return ok && !s.expired(e), nil
}

// Scan returns all live keys matching the glob pattern.
// Only the "prefix*" form is supported, which is all callers use.
func (s *Store) Scan(_ context.Context, pattern string) ([]string, error) {
	prefix := strings.TrimSuffix(pattern, "*")

	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k, e := range s.entries {
		if strings.HasPrefix(k, prefix) && !s.expired(e) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (s *Store) put(key string, value []byte, ttl time.Duration) {
	stored := make([]byte, len(value))
	copy(stored, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{value: stored, expiresAt: expiresAt}
	s.mu.Unlock()
}

func (s *Store) expired(e entry) bool {
	return !e.expiresAt.IsZero() && s.now().After(e.expiresAt)
}
