package ratelimit

import (
	"sync"
	"time"
)

// Limiter reports whether an identity has exhausted its fixed window.
type Limiter interface {
	Limited(identity string) bool
}

type bucket struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a fixed-window counter keyed by identity. State is
// per-process: not durable across restarts and not shared between
// instances. Use the Redis limiter when running more than one node.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemory(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Limited admits the first `limit` calls in each window and rejects the
// rest. A rejected call does not consume the counter, so a full window
// stays full for exactly its remaining duration.
func (l *MemoryLimiter) Limited(identity string) bool {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[identity]
	if !ok || !now.Before(b.resetAt) {
		l.buckets[identity] = &bucket{count: 1, resetAt: now.Add(l.window)}
		return false
	}
	if b.count >= l.limit {
		return true
	}
	b.count++
	return false
}
