// Package codes stores short-lived email verification codes. Codes are
// single-use and expire after a fixed TTL; consuming or re-checking an
// expired code behaves the same as a missing one.
package codes

import (
	"sync"
	"time"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = 5 * time.Minute

// Store is the verification-code contract shared by the in-memory and
// Redis-backed implementations.
type Store interface {
	// Issue stores a code for the address, replacing any previous one.
	Issue(email, code string, ttl time.Duration) error
	// Active reports whether a non-expired code exists for the address.
	Active(email string) (bool, error)
	// Consume checks the code and deletes it on match. A missing, expired
	// or mismatched code returns false; the code survives a mismatch so
	// the user can retry until expiry.
	Consume(email, code string) (bool, error)
	// Drop removes any code for the address.
	Drop(email string) error
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryStore keeps codes in a mutex-guarded map with lazy expiry. The
// clock is injectable for tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an in-memory store using the real clock.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock creates an in-memory store with a custom clock.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

func (s *MemoryStore) Issue(email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[email] = memoryEntry{code: code, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Active(email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	if !ok {
		return false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, email)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Consume(email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[email]
	if !ok {
		return false, nil
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, email)
		return false, nil
	}
	if entry.code != code {
		return false, nil
	}
	delete(s.entries, email)
	return true, nil
}

func (s *MemoryStore) Drop(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, email)
	return nil
}
