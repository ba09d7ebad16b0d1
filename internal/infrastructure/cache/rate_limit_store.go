// Package cache provides the shared counters behind HTTP rate limiting.
package cache

import (
	"context"
	"time"
)

// RateDecision is the outcome of counting one request against a window
type RateDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// RateLimitStore counts requests per key in fixed windows
type RateLimitStore interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
	Close() error
}

func decide(count int64, limit int, resetIn time.Duration) RateDecision {
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return RateDecision{
		Allowed:   count <= int64(limit),
		Limit:     limit,
		Remaining: remaining,
		ResetIn:   resetIn,
	}
}
