package enrichment

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter spaces out calls to the external service. Wait blocks until
// the next call is allowed or ctx is done.
type RateLimiter interface {
	Wait(ctx context.Context) error
}

// NewIntervalLimiter allows one call per interval. The first call passes
// immediately. A non-positive interval disables limiting.
func NewIntervalLimiter(interval time.Duration) RateLimiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Unlimited never waits. Tests use it to avoid the real delay.
type Unlimited struct{}

func (Unlimited) Wait(ctx context.Context) error {
	return ctx.Err()
}
