// Package ratelimit provides a fixed-window request limiter keyed by user.
package ratelimit

import (
	"sync"
	"time"
)

type entry struct {
	windowStart time.Time
	count       int
}

// Limiter enforces a per-key quota over a fixed window. The window resets
// entirely once it elapses; counts never carry over. Entries are created
// lazily on first use and live for the process lifetime.
type Limiter struct {
	mu      sync.Mutex
	quota   int
	window  time.Duration
	now     func() time.Time
	entries map[string]*entry
}

// New creates a limiter allowing quota calls per window for each key.
func New(quota int, window time.Duration) *Limiter {
	return &Limiter{
		quota:   quota,
		window:  window,
		now:     time.Now,
		entries: make(map[string]*entry),
	}
}

// Allow reports whether a call for key is within quota and, if so, counts it.
// The check-and-increment is atomic per key: two concurrent calls can never
// both consume the final slot.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e := l.entries[key]
	if e == nil || now.Sub(e.windowStart) >= l.window {
		e = &entry{windowStart: now}
		l.entries[key] = e
	}
	if e.count >= l.quota {
		return false
	}
	e.count++
	return true
}
