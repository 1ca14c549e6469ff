package repository

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// MemoryRateLimiter keeps a token-bucket limiter per client key. Used
// standalone and as the fallback when Redis is unreachable.
type MemoryRateLimiter struct {
	limiters sync.Map // map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
}

// NewMemoryRateLimiter distributes limit requests evenly over window.
func NewMemoryRateLimiter(limit int, window time.Duration) *MemoryRateLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryRateLimiter{
		rps:   rate.Limit(float64(limit) / window.Seconds()),
		burst: limit,
	}
}

func (m *MemoryRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return m.limiterFor(key).Allow(), nil
}

func (m *MemoryRateLimiter) limiterFor(key string) *rate.Limiter {
	if v, ok := m.limiters.Load(key); ok {
		return v.(*rate.Limiter)
	}

	lim := rate.NewLimiter(m.rps, m.burst)
	actual, loaded := m.limiters.LoadOrStore(key, lim)
	if loaded {
		return actual.(*rate.Limiter)
	}
	return lim
}
