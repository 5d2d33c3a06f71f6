package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) TestGetSetDelete() {
	_, found, err := s.store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.False(found)

	want := Entry{Count: 3, ResetTime: time.Unix(1700000000, 0)}
	s.Require().NoError(s.store.Set(s.ctx, "k", want))

	got, found, err := s.store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.True(found)
	s.Equal(want, got)

	s.Require().NoError(s.store.Delete(s.ctx, "k"))
	_, found, err = s.store.Get(s.ctx, "k")
	s.Require().NoError(err)
	s.False(found)
}

func (s *MemoryStoreSuite) TestPurgeExpired() {
	now := time.Unix(1700000000, 0)
	s.Require().NoError(s.store.Set(s.ctx, "old", Entry{Count: 1, ResetTime: now.Add(-time.Second)}))
	s.Require().NoError(s.store.Set(s.ctx, "edge", Entry{Count: 1, ResetTime: now}))
	s.Require().NoError(s.store.Set(s.ctx, "new", Entry{Count: 1, ResetTime: now.Add(time.Minute)}))

	purged, err := s.store.PurgeExpired(s.ctx, now)
	s.Require().NoError(err)
	s.Equal(1, purged)
	s.Equal(2, s.store.Len())
}

// Concurrent callers on one key may overshoot the limit, but never by more
// than the number of callers racing, and the store stays consistent.
func (s *MemoryStoreSuite) TestConcurrentAllow() {
	l := NewLimiter(s.store)
	const callers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.Allow(s.ctx, "shared", testLimit, time.Minute)
			if err != nil {
				return
			}
			if res.Success {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	s.GreaterOrEqual(allowed, testLimit)
	s.LessOrEqual(allowed, callers)
	s.Equal(1, s.store.Len())
}
