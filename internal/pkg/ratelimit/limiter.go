package ratelimit

import (
	"sync"
	"time"
)

type Tier string

const (
	TierFree       Tier = "free"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Budget is the number of requests admitted within a trailing window.
type Budget struct {
	Requests int
	Window   time.Duration
}

// Limiter is a sliding-window admission controller. It keeps the request
// timestamps inside the trailing window per key; admission discards stale
// timestamps before comparing the count to the tier budget.
type Limiter struct {
	mu      sync.Mutex
	budgets map[Tier]Budget
	hits    map[string][]time.Time
	now     func() time.Time
}

func New(budgets map[Tier]Budget) *Limiter {
	return &Limiter{
		budgets: budgets,
		hits:    make(map[string][]time.Time),
		now:     time.Now,
	}
}

// WithClock overrides the time source, for tests.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

func (l *Limiter) budget(tier Tier) Budget {
	if b, ok := l.budgets[tier]; ok {
		return b
	}
	return l.budgets[TierFree]
}

func (l *Limiter) prune(key string, cutoff time.Time) []time.Time {
	window := l.hits[key]
	idx := 0
	for idx < len(window) && !window[idx].After(cutoff) {
		idx++
	}
	if idx > 0 {
		window = append([]time.Time(nil), window[idx:]...)
		if len(window) == 0 {
			delete(l.hits, key)
		} else {
			l.hits[key] = window
		}
	}
	return window
}

// Allow records and admits the request unless the key's budget is spent.
func (l *Limiter) Allow(key string, tier Tier) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.budget(tier)
	now := l.now()
	window := l.prune(key, now.Add(-b.Window))

	if len(window) >= b.Requests {
		return false
	}

	l.hits[key] = append(window, now)
	return true
}

// Remaining reports how many requests the key may still issue in the
// current window without recording one.
func (l *Limiter) Remaining(key string, tier Tier) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	b := l.budget(tier)
	window := l.prune(key, l.now().Add(-b.Window))

	remaining := b.Requests - len(window)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Reset drops all recorded windows, for tests and shutdown.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hits = make(map[string][]time.Time)
}
