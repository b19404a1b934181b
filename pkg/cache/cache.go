package cache

import (
	"sync"
	"time"
)

// Store is a typed key/value cache with per-entry expiry.
// Implementations must be safe for concurrent use.
type Store[V any] interface {
	// Get returns the value and true if present and not expired.
	// Sliding stores push the expiry forward on every hit.
	Get(key string) (V, bool)

	// Set stores value under key for ttl
	Set(key string, value V, ttl time.Duration)

	// Delete removes key
	Delete(key string)

	// Len returns the number of stored entries, expired ones included until swept
	Len() int

	// Stop ends the background sweeper
	Stop()
}

type entry[V any] struct {
	value     V
	ttl       time.Duration
	expiresAt time.Time
}

// InMemoryStore is a map backed Store with a background sweeper
type InMemoryStore[V any] struct {
	mu       sync.RWMutex
	items    map[string]*entry[V]
	sliding  bool
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures an InMemoryStore
type Option func(*options)

type options struct {
	sliding bool
	now     func() time.Time
}

// WithSlidingExpiry makes every successful Get renew the entry's ttl
func WithSlidingExpiry() Option {
	return func(o *options) { o.sliding = true }
}

// WithClock overrides time.Now, used by tests
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewInMemoryStore creates a store and starts sweeping expired entries every
// sweepInterval. A non-positive interval disables the sweeper.
func NewInMemoryStore[V any](sweepInterval time.Duration, opts ...Option) *InMemoryStore[V] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	s := &InMemoryStore[V]{
		items:   make(map[string]*entry[V]),
		sliding: o.sliding,
		now:     o.now,
		stop:    make(chan struct{}),
	}
	if sweepInterval > 0 {
		go s.sweepLoop(sweepInterval)
	}
	return s
}

func (s *InMemoryStore[V]) Get(key string) (V, bool) {
	var zero V

	if !s.sliding {
		s.mu.RLock()
		defer s.mu.RUnlock()
		e, ok := s.items[key]
		if !ok || !s.now().Before(e.expiresAt) {
			return zero, false
		}
		return e.value, true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if !ok || !s.now().Before(e.expiresAt) {
		return zero, false
	}
	e.expiresAt = s.now().Add(e.ttl)
	return e.value, true
}

func (s *InMemoryStore[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items[key] = &entry[V]{
		value:     value,
		ttl:       ttl,
		expiresAt: s.now().Add(ttl),
	}
}

func (s *InMemoryStore[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
}

func (s *InMemoryStore[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Stop is safe to call more than once
func (s *InMemoryStore[V]) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *InMemoryStore[V]) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}

// Sweep drops expired entries and returns how many were removed
func (s *InMemoryStore[V]) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, e := range s.items {
		if !now.Before(e.expiresAt) {
			delete(s.items, key)
			removed++
		}
	}
	return removed
}
