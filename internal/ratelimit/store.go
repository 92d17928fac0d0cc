package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Store counts requests per key within a fixed window. Incr returns the
// number of hits recorded for the key in its current window, including the
// one just added.
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	Close() error
}

type bucket struct {
	count   int64
	resetAt time.Time
}

// MemoryStore keeps per-key counters in process memory. Suitable for a
// single instance; use the Redis store when running more than one.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	done chan struct{}
	once sync.Once
}

// NewMemoryStore constructs a memory store with a background sweeper.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Incr bumps the key's counter, starting a fresh window when the previous
// one has expired.
func (s *MemoryStore) Incr(_ context.Context, key string, window time.Duration) (int64, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.buckets[key]
	if !ok || now.After(b.resetAt) {
		b = &bucket{resetAt: now.Add(window)}
		s.buckets[key] = b
	}
	b.count++
	return b.count, nil
}

// Close stops the background sweeper.
func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, b := range s.buckets {
				if now.After(b.resetAt) {
					delete(s.buckets, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
