package ratelimiter

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a per-key token bucket holding MaxAttempts tokens that refill
// evenly over Window. Buckets live in memory, so limits are per instance.
type Limiter struct {
	limit  rate.Limit
	burst  int
	window time.Duration
	now    func() time.Time

	limiters sync.Map // map[key]*rate.Limiter

	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a limiter and starts a sweeper that drops idle keys every window
func New(maxAttempts int, window time.Duration) *Limiter {
	l := newLimiter(maxAttempts, window, time.Now)
	go l.sweepLoop()
	return l
}

func newLimiter(maxAttempts int, window time.Duration, now func() time.Time) *Limiter {
	l := &Limiter{
		burst:  maxAttempts,
		window: window,
		now:    now,
		stop:   make(chan struct{}),
	}
	if maxAttempts > 0 {
		l.limit = rate.Every(window / time.Duration(maxAttempts))
	}
	return l
}

func (l *Limiter) limiter(key string) *rate.Limiter {
	if existing, ok := l.limiters.Load(key); ok {
		return existing.(*rate.Limiter)
	}
	actual, _ := l.limiters.LoadOrStore(key, rate.NewLimiter(l.limit, l.burst))
	return actual.(*rate.Limiter)
}

// Allow takes a token for key. When none is left it returns false and how
// long until the next token is available; a denied attempt costs nothing.
func (l *Limiter) Allow(key string) (bool, time.Duration) {
	now := l.now()
	r := l.limiter(key).ReserveN(now, 1)
	if !r.OK() {
		return false, l.window
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Reset refills the bucket of key
func (l *Limiter) Reset(key string) {
	l.limiters.Delete(key)
}

// sweep drops buckets that have refilled completely
func (l *Limiter) sweep() {
	now := l.now()
	l.limiters.Range(func(key, value interface{}) bool {
		if value.(*rate.Limiter).TokensAt(now) >= float64(l.burst) {
			l.limiters.Delete(key)
		}
		return true
	})
}

func (l *Limiter) sweepLoop() {
	ticker := time.NewTicker(l.window)
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

// Stop ends the sweeper. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}
