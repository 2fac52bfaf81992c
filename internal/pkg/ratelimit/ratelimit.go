// Package ratelimit throttles outgoing GDS calls, either per process or
// shared across instances through Redis.
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/ijalalfrz/flight-fare-engine/internal/pkg/exception"
	"golang.org/x/time/rate"
)

var ErrRateLimitExceeded = exception.ApplicationError{
	StatusCode: http.StatusTooManyRequests,
	Message:    "gds rate limit exceeded",
}

// RedisAllower is the subset of *redis_rate.Limiter used here.
type RedisAllower interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RedisLimiter enforces a per-second budget shared by every instance using
// the same key. Over budget, a caller waits for the window the limiter
// reports instead of failing.
type RedisLimiter struct {
	allower RedisAllower
	key     string
	rps     int
}

// minRetryAfter bounds how tight the wait loop can spin.
const minRetryAfter = 10 * time.Millisecond

func NewRedisLimiter(allower RedisAllower, name string, rps int) *RedisLimiter {
	return &RedisLimiter{
		allower: allower,
		key:     fmt.Sprintf("limit:%s", name),
		rps:     rps,
	}
}

// Allow blocks until the shared budget admits the call. It returns
// ErrRateLimitExceeded when ctx ends first.
func (l *RedisLimiter) Allow(ctx context.Context) error {
	for {
		res, err := l.allower.Allow(ctx, l.key, redis_rate.PerSecond(l.rps))
		if err != nil {
			return fmt.Errorf("failed to rate limit: %w", err)
		}

		if res.Allowed > 0 {
			return nil
		}

		timer := time.NewTimer(max(res.RetryAfter, minRetryAfter))
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%s: %w", ctx.Err().Error(), ErrRateLimitExceeded)
		case <-timer.C:
		}
	}
}

// LocalLimiter is an in-process token bucket.
type LocalLimiter struct {
	limiter *rate.Limiter
}

func NewLocalLimiter(rps int) *LocalLimiter {
	if rps <= 0 {
		return &LocalLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}

	return &LocalLimiter{limiter: rate.NewLimiter(rate.Limit(rps), rps)}
}

func (l *LocalLimiter) Allow(ctx context.Context) error {
	if err := l.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%s: %w", err.Error(), ErrRateLimitExceeded)
	}

	return nil
}
