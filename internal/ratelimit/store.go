// Package ratelimit enforces a per-IP sliding window on the validate
// endpoint. Two window stores exist: in-memory for single-node deployments
// and tests, Redis for anything running more than one replica.
package ratelimit

import (
	"context"
	"time"
)

// Result describes one rate limit decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is whole seconds until the window frees up. Only
	// meaningful when Allowed is false.
	RetryAfter int
}

// Store tracks request timestamps per key within a sliding window.
type Store interface {
	// Allow records one request against key if the window has room and
	// reports the decision either way.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}

// retryAfterSeconds converts a reset time into the whole seconds a client
// should wait, rounding up so retrying at the stated time always succeeds.
func retryAfterSeconds(resetAt, now time.Time) int {
	wait := resetAt.Sub(now)
	if wait <= 0 {
		return 1
	}
	secs := int((wait + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
