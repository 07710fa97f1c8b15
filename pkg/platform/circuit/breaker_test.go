package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type outcome bool

const (
	fail outcome = false
	ok   outcome = true
)

func TestBreakerSequences(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		successes int
		steps     []outcome
		wantOpen  bool
	}{
		{"starts closed", 3, 2, nil, false},
		{"below failure threshold", 3, 2, []outcome{fail, fail}, false},
		{"opens at failure threshold", 3, 2, []outcome{fail, fail, fail}, true},
		{"success resets failure streak", 3, 2, []outcome{fail, fail, ok, fail, fail}, false},
		{"one success is not enough to close", 1, 2, []outcome{fail, ok}, true},
		{"closes at success threshold", 1, 2, []outcome{fail, ok, ok}, false},
		{"failure resets success streak", 1, 3, []outcome{fail, ok, ok, fail, ok, ok}, true},
		{"recovers after a fresh streak", 1, 3, []outcome{fail, ok, ok, fail, ok, ok, ok}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("redis-ratelimit", WithFailureThreshold(tt.failures), WithSuccessThreshold(tt.successes))
			for _, step := range tt.steps {
				if step == ok {
					b.RecordSuccess()
				} else {
					b.RecordFailure()
				}
			}
			assert.Equal(t, tt.wantOpen, b.IsOpen())
		})
	}
}

func TestBreakerReportsTransitionsOnce(t *testing.T) {
	b := New("redis-ratelimit", WithFailureThreshold(2), WithSuccessThreshold(1))
	assert.Equal(t, "redis-ratelimit", b.Name())
	assert.Equal(t, "closed", b.State().String())

	useFallback, change := b.RecordFailure()
	assert.False(t, useFallback)
	assert.Equal(t, StateChange{}, change)

	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback)
	assert.True(t, change.Opened)
	assert.Equal(t, "open", b.State().String())

	useFallback, change = b.RecordFailure()
	assert.True(t, useFallback, "an open breaker keeps routing to the fallback")
	assert.False(t, change.Opened)

	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)

	usePrimary, change = b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.False(t, change.Closed)
}

func TestBreakerDefaultsAndReset(t *testing.T) {
	b := New("redis-ratelimit", WithFailureThreshold(0), WithSuccessThreshold(-1))
	for range 4 {
		b.RecordFailure()
	}
	assert.False(t, b.IsOpen(), "non-positive thresholds keep the default of five")
	b.RecordFailure()
	assert.True(t, b.IsOpen())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	b.RecordFailure()
	assert.False(t, b.IsOpen(), "reset clears the failure streak")
}

func TestBreakerConcurrentUse(t *testing.T) {
	b := New("redis-ratelimit", WithFailureThreshold(50))
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.RecordFailure()
		}()
	}
	wg.Wait()
	assert.True(t, b.IsOpen())
}
