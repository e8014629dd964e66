package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store counts hits per key within a fixed window. It is injected into the
// middleware so the in-memory implementation can be swapped for the Redis
// one without touching call sites.
type Store interface {
	// Incr records one hit for key and returns the hit count within the
	// current window.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

type windowCounter struct {
	count int64
	start time.Time
}

// MemoryStore is a process-local fixed-window counter. The clock is
// injectable for tests.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]windowCounter
	now      func() time.Time
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		counters: make(map[string]windowCounter),
		now:      now,
	}
}

func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	c, ok := s.counters[key]
	if !ok || now.Sub(c.start) >= window {
		c = windowCounter{start: now}
	}
	c.count++
	s.counters[key] = c

	// Drop counters from expired windows so the map does not grow with
	// one entry per client forever.
	if len(s.counters) > 1024 {
		for k, v := range s.counters {
			if now.Sub(v.start) >= window {
				delete(s.counters, k)
			}
		}
	}

	return c.count, nil
}
