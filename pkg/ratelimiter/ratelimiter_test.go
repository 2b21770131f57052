package ratelimiter

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(max int, window time.Duration) (*Limiter, *clock) {
	c := &clock{t: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	return newLimiter(max, window, c.now), c
}

func TestAllow_BlocksAfterMaxAttempts(t *testing.T) {
	l, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow("10.0.0.1")
		require.True(t, ok, "attempt %d", i+1)
	}

	ok, retry := l.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.InDelta(t, float64(20*time.Second), float64(retry), float64(time.Millisecond))
}

func TestAllow_TokensRefillOverWindow(t *testing.T) {
	l, c := newTestLimiter(2, time.Minute)

	ok, _ := l.Allow("k")
	require.True(t, ok)
	ok, _ = l.Allow("k")
	require.True(t, ok)

	ok, retry := l.Allow("k")
	assert.False(t, ok)
	assert.InDelta(t, float64(30*time.Second), float64(retry), float64(time.Millisecond))

	c.advance(10 * time.Second)
	ok, retry = l.Allow("k")
	assert.False(t, ok, "denied attempts must not push the next token further out")
	assert.InDelta(t, float64(20*time.Second), float64(retry), float64(time.Millisecond))

	c.advance(21 * time.Second)
	ok, _ = l.Allow("k")
	assert.True(t, ok)
	ok, _ = l.Allow("k")
	assert.False(t, ok)
}

func TestAllow_KeysAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	ok, _ := l.Allow("a")
	assert.True(t, ok)
	ok, _ = l.Allow("b")
	assert.True(t, ok)
	ok, _ = l.Allow("a")
	assert.False(t, ok)
}

func TestAllow_ZeroAttemptsAlwaysBlocks(t *testing.T) {
	l, _ := newTestLimiter(0, time.Minute)

	ok, retry := l.Allow("k")
	assert.False(t, ok)
	assert.Equal(t, time.Minute, retry)
}

func TestReset(t *testing.T) {
	l, _ := newTestLimiter(1, time.Minute)

	l.Allow("k")
	l.Reset("k")
	ok, _ := l.Allow("k")
	assert.True(t, ok)
}

func TestSweep_DropsIdleKeys(t *testing.T) {
	l, c := newTestLimiter(5, time.Minute)
	l.Allow("old")
	c.advance(45 * time.Second)
	l.Allow("fresh")
	c.advance(5 * time.Second)

	l.sweep()

	_, ok := l.limiters.Load("old")
	assert.False(t, ok)
	_, ok = l.limiters.Load("fresh")
	assert.True(t, ok)
}

func TestConcurrentAllow(t *testing.T) {
	l := New(50, time.Minute)
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestStop_Idempotent(t *testing.T) {
	l := New(1, time.Minute)
	l.Stop()
	assert.NotPanics(t, l.Stop)
}
