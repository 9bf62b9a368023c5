package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter is the contract the REST client waits on before each request.
type RateLimiter interface {
	Wait(ctx context.Context) error
	Allow() bool
	GetRemaining() int
}

// Limiter is a token bucket refilled at a fixed per-minute rate.
type Limiter struct {
	lim *rate.Limiter
	now func() time.Time
}

// NewLimiter allows perMinute requests per minute with bursts of up to burst.
func NewLimiter(perMinute, burst int) *Limiter {
	return &Limiter{
		lim: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst),
		now: time.Now,
	}
}

// Allow takes a token if one is available.
func (l *Limiter) Allow() bool {
	return l.lim.AllowN(l.now(), 1)
}

// Wait blocks until a token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.lim.Wait(ctx)
}

// GetRemaining returns the whole tokens available right now.
func (l *Limiter) GetRemaining() int {
	if r := int(l.lim.TokensAt(l.now())); r > 0 {
		return r
	}
	return 0
}

// Limiter keys used by the SDK clients.
const (
	KeyTrading = "trading"
	KeyData    = "data"
)

// accountLimit is the per-minute request budget of a standard account.
const accountLimit = 200

// RateLimitManager hands out one limiter per API family.
type RateLimitManager struct {
	limiters map[string]RateLimiter
	fallback RateLimiter
	mu       sync.RWMutex
}

// NewRateLimitManager creates a manager preloaded with the documented
// account limits: 200 requests per minute for trading and for market data.
func NewRateLimitManager() *RateLimitManager {
	return &RateLimitManager{
		limiters: map[string]RateLimiter{
			KeyTrading: NewLimiter(accountLimit, accountLimit),
			KeyData:    NewLimiter(accountLimit, accountLimit),
		},
		fallback: NewLimiter(accountLimit, accountLimit),
	}
}

// SetLimiter replaces the limiter for key.
func (rlm *RateLimitManager) SetLimiter(key string, limiter RateLimiter) {
	rlm.mu.Lock()
	defer rlm.mu.Unlock()
	rlm.limiters[key] = limiter
}

// GetLimiter returns the limiter for key, or the shared fallback.
func (rlm *RateLimitManager) GetLimiter(key string) RateLimiter {
	rlm.mu.RLock()
	defer rlm.mu.RUnlock()
	if limiter, ok := rlm.limiters[key]; ok {
		return limiter
	}
	return rlm.fallback
}

// Wait blocks until key allows another request.
func (rlm *RateLimitManager) Wait(ctx context.Context, key string) error {
	return rlm.GetLimiter(key).Wait(ctx)
}

// GetRemaining reports the remaining budget for key.
func (rlm *RateLimitManager) GetRemaining(key string) int {
	return rlm.GetLimiter(key).GetRemaining()
}
