package cache

import (
	"context"
	"sync"
	"time"
)

// InMemoryRateLimitStore keeps fixed-window counters in process memory.
// Suitable for a single API instance.
type InMemoryRateLimitStore struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	period  time.Duration
	stop    chan struct{}
	once    sync.Once
}

type window struct {
	count   int64
	resetAt time.Time
}

// NewInMemoryRateLimitStore creates a store allowing limit requests per period
func NewInMemoryRateLimitStore(limit int, period time.Duration) *InMemoryRateLimitStore {
	s := &InMemoryRateLimitStore{
		windows: make(map[string]*window),
		limit:   limit,
		period:  period,
		stop:    make(chan struct{}),
	}
	go s.cleanup(period * 2)
	return s
}

// cleanup drops expired windows periodically
func (s *InMemoryRateLimitStore) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, w := range s.windows {
				if now.After(w.resetAt) {
					delete(s.windows, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Allow counts one request for key
func (s *InMemoryRateLimitStore) Allow(_ context.Context, key string) (RateDecision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(s.period)}
		s.windows[key] = w
	}
	w.count++

	return decide(w.count, s.limit, w.resetAt.Sub(now)), nil
}

// Close stops the cleanup goroutine
func (s *InMemoryRateLimitStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}
