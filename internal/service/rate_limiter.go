package service

import (
	"sync"
	"time"
)

// RateLimiter caps how many times a key (client IP) may perform an
// action within a sliding window. State is in-memory; restarting the
// process resets all windows.
type RateLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	max     int
	history map[string][]time.Time
	now     func() time.Time
}

// NewRateLimiter allows max events per key per window.
func NewRateLimiter(window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		window:  window,
		max:     max,
		history: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Allow records an attempt for the key and reports whether it fits in
// the window.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.history[key][:0]
	for _, t := range l.history[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.max {
		l.history[key] = kept
		return false
	}
	l.history[key] = append(kept, now)
	return true
}
