package limitation

import (
	"context"
	"sync"
)

type counter struct {
	count     int64
	expiresAt int64
}

// MemoryStore is an in-process Store. It is safe for concurrent use
// by multiple goroutines, but its state is local to the process and
// is not shared across replicas; use RedisStore when you need a
// single global limit.
//
// It has no native TTL, so eviction is simulated: each counter keeps
// an explicit expiry timestamp and a read past it is treated as
// absent. The mutex makes every Count as indivisible as the Redis
// script, which is what makes this store usable for the concurrency
// tests and as a drop-in for single-instance deployments.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*counter
}

// NewMemoryStore constructs a MemoryStore with empty state.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		counters: make(map[string]*counter),
	}
}

// Count implements Store.
func (m *MemoryStore) Count(_ context.Context, key string, limit, periodSecs, nowSecs int64) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[key]
	if !ok || c.expiresAt <= nowSecs {
		// First increment after expiry starts a fresh window.
		c = &counter{expiresAt: nowSecs + periodSecs}
		m.counters[key] = c
	}
	c.count++

	ttl := c.expiresAt - nowSecs
	if ttl < 0 {
		ttl = periodSecs
	}

	if c.count > limit {
		return Result{Limited: true, Remaining: 0, Reset: nowSecs + ttl}, nil
	}
	return Result{Remaining: limit - c.count, Reset: nowSecs + ttl}, nil
}

// Len reports the number of live counters. Expired counters that were
// never touched again still count until their key is reused.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.counters)
}
