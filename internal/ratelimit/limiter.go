// Package ratelimit implements the per-client fixed-window limiter used by
// the contact endpoint.
//
// Each key gets a counter and a reset time. The first request in a window
// stores {1, now+window}; later requests increment while the count is below
// the limit. Fixed windows admit up to twice the limit across a window edge.
package ratelimit

import (
	"context"
	"math"
	"time"
)

// Result is the outcome of a rate limit check
type Result struct {
	Success           bool
	RetryAfterSeconds int
}

// Limiter applies fixed-window limits over a Store
type Limiter struct {
	store Store
	now   func() time.Time
}

// Option configures a Limiter
type Option func(*Limiter)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter creates a limiter backed by store
func NewLimiter(store Store, opts ...Option) *Limiter {
	l := &Limiter{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow counts one request for id and reports whether it fits in the
// current window of length window.
func (l *Limiter) Allow(ctx context.Context, id string, limit int, window time.Duration) (Result, error) {
	now := l.now()

	if p, ok := l.store.(Purger); ok {
		if _, err := p.PurgeExpired(ctx, now); err != nil {
			return Result{}, err
		}
	}

	entry, found, err := l.store.Get(ctx, id)
	if err != nil {
		return Result{}, err
	}

	if !found || entry.Expired(now) {
		fresh := Entry{Count: 1, ResetTime: now.Add(window)}
		if err := l.store.Set(ctx, id, fresh); err != nil {
			return Result{}, err
		}
		return Result{Success: true}, nil
	}

	if entry.Count >= limit {
		return Result{
			Success:           false,
			RetryAfterSeconds: retryAfterSeconds(entry.ResetTime.Sub(now)),
		}, nil
	}

	entry.Count++
	if err := l.store.Set(ctx, id, entry); err != nil {
		return Result{}, err
	}
	return Result{Success: true}, nil
}

// Reset forgets the window for id
func (l *Limiter) Reset(ctx context.Context, id string) error {
	return l.store.Delete(ctx, id)
}

func retryAfterSeconds(remaining time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}
