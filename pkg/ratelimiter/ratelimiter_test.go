package ratelimiter

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(t *testing.T) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	l := New(WithClock(clock.Now))
	t.Cleanup(l.Stop)
	return l, clock
}

func TestLimiter_AllowWithinLimit(t *testing.T) {
	l, _ := newTestLimiter(t)
	l.SetPolicy("imports", 3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, retry := l.Allow("imports", "owner-1")
		assert.True(t, ok, "hit %d", i+1)
		assert.Zero(t, retry)
	}

	ok, retry := l.Allow("imports", "owner-1")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)
}

func TestLimiter_KeysAndNamespacesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t)
	l.SetPolicy("imports", 1, time.Minute)
	l.SetPolicy("public", 1, time.Minute)

	ok, _ := l.Allow("imports", "owner-1")
	require.True(t, ok)

	ok, _ = l.Allow("imports", "owner-2")
	assert.True(t, ok)
	ok, _ = l.Allow("public", "owner-1")
	assert.True(t, ok)
	ok, _ = l.Allow("imports", "owner-1")
	assert.False(t, ok)
}

func TestLimiter_MissingPolicyDenies(t *testing.T) {
	l, _ := newTestLimiter(t)

	ok, retry := l.Allow("unknown", "k")
	assert.False(t, ok)
	assert.Zero(t, retry)
	assert.False(t, l.HasPolicy("unknown"))
}

func TestLimiter_WindowSlides(t *testing.T) {
	l, clock := newTestLimiter(t)
	l.SetPolicy("public", 2, time.Minute)

	ok, _ := l.Allow("public", "1.2.3.4")
	require.True(t, ok)
	clock.Advance(40 * time.Second)
	ok, _ = l.Allow("public", "1.2.3.4")
	require.True(t, ok)

	ok, retry := l.Allow("public", "1.2.3.4")
	assert.False(t, ok)
	assert.Equal(t, 20*time.Second, retry)

	clock.Advance(21 * time.Second)
	ok, _ = l.Allow("public", "1.2.3.4")
	assert.True(t, ok, "first hit left the window")
}

func TestLimiter_DeniedHitsAreNotRecorded(t *testing.T) {
	l, clock := newTestLimiter(t)
	l.SetPolicy("imports", 1, time.Minute)

	ok, _ := l.Allow("imports", "k")
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Second)
		ok, _ = l.Allow("imports", "k")
		require.False(t, ok)
	}

	clock.Advance(11 * time.Second)
	ok, _ = l.Allow("imports", "k")
	assert.True(t, ok)
}

func TestLimiter_Reset(t *testing.T) {
	l, _ := newTestLimiter(t)
	l.SetPolicy("imports", 1, time.Minute)

	ok, _ := l.Allow("imports", "k")
	require.True(t, ok)
	l.Reset("imports", "k")

	ok, _ = l.Allow("imports", "k")
	assert.True(t, ok)
}

func TestLimiter_Sweep(t *testing.T) {
	l, clock := newTestLimiter(t)
	l.SetPolicy("imports", 5, time.Minute)

	l.Allow("imports", "old")
	clock.Advance(50 * time.Second)
	l.Allow("imports", "new")
	l.mu.Lock()
	l.hits["gone:k"] = []time.Time{clock.Now()}
	l.mu.Unlock()

	clock.Advance(20 * time.Second)
	l.sweep()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.hits, "imports:old")
	assert.NotContains(t, l.hits, "gone:k")
	assert.Len(t, l.hits["imports:new"], 1)
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t)
	l.SetPolicy("imports", 50, time.Minute)

	var allowed int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("imports", "shared"); ok {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), allowed)
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	l := New()
	l.Stop()
	l.Stop()
}

func BenchmarkLimiter_Allow(b *testing.B) {
	l := New()
	defer l.Stop()
	l.SetPolicy("bench", b.N+1, time.Hour)

	for i := 0; i < b.N; i++ {
		l.Allow("bench", fmt.Sprintf("k%d", i%100))
	}
}
