package bucket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"dummygen/internal/ratelimit/models"
)

const (
	testLimit  = 10
	testWindow = time.Minute
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type InMemoryBucketStoreSuite struct {
	suite.Suite
	clock *fakeClock
	store *InMemoryBucketStore
	ctx   context.Context
}

func TestInMemoryBucketStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryBucketStoreSuite))
}

func (s *InMemoryBucketStoreSuite) SetupTest() {
	s.clock = &fakeClock{now: time.Date(2026, time.January, 1, 12, 0, 0, 0, time.UTC)}
	s.store = New(WithClock(s.clock.Now))
	s.ctx = context.Background()
}

func (s *InMemoryBucketStoreSuite) TestAllow() {
	s.Run("first request allowed", func() {
		result, err := s.store.Allow(s.ctx, "ip:first:generate", testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit, result.Limit)
		s.Equal(testLimit-1, result.Remaining)
		s.Equal(s.clock.Now().Add(testWindow), result.ResetAt)
	})

	s.Run("requests up to limit allowed", func() {
		var result *models.RateLimitResult
		var err error
		for range testLimit {
			result, err = s.store.Allow(s.ctx, "ip:limit:generate", testLimit, testWindow)
		}
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(0, result.Remaining)
	})

	s.Run("eleventh request in a minute denied", func() {
		for range testLimit {
			_, err := s.store.Allow(s.ctx, "ip:over:generate", testLimit, testWindow)
			s.Require().NoError(err)
		}
		s.clock.Advance(20 * time.Second)
		result, err := s.store.Allow(s.ctx, "ip:over:generate", testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
		s.Equal(0, result.Remaining)
		s.Equal(testLimit, result.Limit)
		s.Equal(40, result.RetryAfter)
	})

	s.Run("window slides", func() {
		key := "ip:slide:generate"
		for range testLimit {
			_, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
			s.Require().NoError(err)
		}
		s.clock.Advance(testWindow)
		result, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
		s.Require().NoError(err)
		s.True(result.Allowed)
		s.Equal(testLimit-1, result.Remaining)
	})
}

func (s *InMemoryBucketStoreSuite) TestDeniedRequestsConsumeNothing() {
	key := "ip:deny:read"
	for range testLimit {
		_, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
		s.Require().NoError(err)
	}
	s.clock.Advance(testWindow / 2)
	for range 3 {
		result, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
		s.Require().NoError(err)
		s.False(result.Allowed)
	}

	s.clock.Advance(testWindow / 2)
	result, err := s.store.Allow(s.ctx, key, testLimit, testWindow)
	s.Require().NoError(err)
	s.True(result.Allowed)
	s.Equal(testLimit-1, result.Remaining)
}

func (s *InMemoryBucketStoreSuite) TestCleanup() {
	_, err := s.store.Allow(s.ctx, "ip:old:generate", testLimit, testWindow)
	s.Require().NoError(err)
	s.clock.Advance(45 * time.Second)
	_, err = s.store.Allow(s.ctx, "ip:recent:generate", testLimit, testWindow)
	s.Require().NoError(err)
	s.Equal(2, s.store.Len())

	s.Zero(s.store.Cleanup(s.clock.Now()))

	s.clock.Advance(30 * time.Second)
	s.Equal(1, s.store.Cleanup(s.clock.Now()))
	s.Equal(1, s.store.Len())

	result, err := s.store.Allow(s.ctx, "ip:recent:generate", testLimit, testWindow)
	s.Require().NoError(err)
	s.Equal(testLimit-2, result.Remaining)
}

func (s *InMemoryBucketStoreSuite) TestConcurrent() {
	limit := 100
	key := "ip:concurrent:read"
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for range 200 {
		wg.Go(func() {
			result, err := s.store.Allow(s.ctx, key, limit, testWindow)
			s.NoError(err)
			if err == nil && result.Allowed {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		})
	}

	wg.Wait()
	s.Equal(limit, allowedCount)
}

func TestRunJanitorStopsWithContext(t *testing.T) {
	store := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		store.RunJanitor(ctx, time.Millisecond, nil)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}
