package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements CounterStore with an in-process map. It is the
// fallback when no Redis address is configured; counts are per-replica.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter
	stop     chan struct{}
	stopOnce sync.Once
}

type memoryCounter struct {
	count     int64
	expiresAt time.Time
}

// NewMemoryStore creates an in-memory counter store and starts a janitor
// that drops expired windows.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		counters: make(map[string]*memoryCounter),
		stop:     make(chan struct{}),
	}
	go store.cleanupExpired(time.Minute)
	return store
}

// Incr increments the counter for the key, resetting it if its window
// has already passed.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	counter, ok := s.counters[key]
	if !ok || now.After(counter.expiresAt) {
		counter = &memoryCounter{expiresAt: now.Add(window + time.Second)}
		s.counters[key] = counter
	}
	counter.count++

	return counter.count, nil
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// cleanupExpired periodically removes expired counters to bound memory.
func (s *MemoryStore) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := time.Now()
			s.mu.Lock()
			for key, counter := range s.counters {
				if now.After(counter.expiresAt) {
					delete(s.counters, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
