// Package ratelimiter is an in-memory sliding window limiter keyed by
// namespace and caller.
package ratelimiter

import (
	"strings"
	"sync"
	"time"
)

const sweepInterval = time.Minute

// Policy allows Limit hits per Window
type Policy struct {
	Limit  int
	Window time.Duration
}

// Limiter tracks hits per "namespace:key". A namespace without a policy
// denies every request.
//
//	rl := ratelimiter.New()
//	defer rl.Stop()
//	rl.SetPolicy("imports", 30, time.Minute)
//
//	if ok, retry := rl.Allow("imports", ownerID); !ok {
//	    w.Header().Set("Retry-After", ...)
//	}
type Limiter struct {
	mu       sync.Mutex
	hits     map[string][]time.Time
	policies map[string]Policy
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// New starts a limiter and its background sweeper. Call Stop when done.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		hits:     make(map[string][]time.Time),
		policies: make(map[string]Policy),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.sweepLoop()
	return l
}

// SetPolicy sets or replaces the policy of namespace
func (l *Limiter) SetPolicy(namespace string, limit int, window time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.policies[namespace] = Policy{Limit: limit, Window: window}
}

// HasPolicy reports whether namespace is configured
func (l *Limiter) HasPolicy(namespace string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.policies[namespace]
	return ok
}

// Allow records a hit for key when it fits the namespace policy. A denied
// hit is not recorded; retryAfter is how long until the oldest hit in the
// window expires.
func (l *Limiter) Allow(namespace, key string) (allowed bool, retryAfter time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	policy, ok := l.policies[namespace]
	if !ok || policy.Limit <= 0 {
		return false, 0
	}

	now := l.now()
	composite := namespace + ":" + key
	recent := prune(l.hits[composite], now.Add(-policy.Window))

	if len(recent) >= policy.Limit {
		l.hits[composite] = recent
		return false, recent[0].Add(policy.Window).Sub(now)
	}
	l.hits[composite] = append(recent, now)
	return true, 0
}

// Reset forgets the hits of key
func (l *Limiter) Reset(namespace, key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.hits, namespace+":"+key)
}

// Stop ends the sweeper. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.sweep()
		case <-l.stop:
			return
		}
	}
}

// sweep drops keys whose hits all fell out of their window
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for composite, hits := range l.hits {
		namespace, _, _ := strings.Cut(composite, ":")
		policy, ok := l.policies[namespace]
		if !ok {
			delete(l.hits, composite)
			continue
		}
		if recent := prune(hits, now.Add(-policy.Window)); len(recent) == 0 {
			delete(l.hits, composite)
		} else {
			l.hits[composite] = recent
		}
	}
}

// prune returns the hits after cutoff; hits are in ascending order
func prune(hits []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}
