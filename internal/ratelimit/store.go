package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable wraps backend failures so callers can tell them apart
// from a denied request.
var ErrStoreUnavailable = errors.New("rate limit store unavailable")

// Entry is the fixed-window counter kept per client identifier
type Entry struct {
	Count     int
	ResetTime time.Time
}

// Expired reports whether the window of the entry has closed at now
func (e Entry) Expired(now time.Time) bool {
	return now.After(e.ResetTime)
}

// Store holds rate limit entries keyed by client identifier
type Store interface {
	// Get returns the entry for key, or false if none is stored.
	Get(ctx context.Context, key string) (Entry, bool, error)

	// Set stores the entry for key, replacing any previous one.
	Set(ctx context.Context, key string, entry Entry) error

	// Delete removes the entry for key.
	Delete(ctx context.Context, key string) error
}

// Purger is implemented by stores that need expired entries removed by the
// caller. Stores with server-side expiry do not implement it.
type Purger interface {
	PurgeExpired(ctx context.Context, now time.Time) (int, error)
}

// Pinger is implemented by stores backed by a remote service
type Pinger interface {
	Ping(ctx context.Context) error
}
