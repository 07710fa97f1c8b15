package bucket

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"dummygen/internal/ratelimit/models"
	"dummygen/pkg/platform/sentinel"
)

// slidingWindowScript trims the window, admits one entry if it fits and
// returns {allowed, count, oldest score}. Scores are unix milliseconds.
// Members are nonces so requests in the same millisecond stay distinct.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local nonce = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
  redis.call('ZADD', key, now, nonce)
  count = count + 1
  allowed = 1
end
if count > 0 then
  redis.call('PEXPIRE', key, window)
end

local oldest = now
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if first[2] then
  oldest = tonumber(first[2])
end
return {allowed, count, oldest}
`)

// RedisBucketStore implements BucketStore on one sorted set per key so every
// replica shares the same windows.
type RedisBucketStore struct {
	client    redis.Cmdable
	keyPrefix string
	now       func() time.Time
}

type RedisOption func(*RedisBucketStore)

// WithKeyPrefix namespaces every key, e.g. "dummygen:rl:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisBucketStore) {
		s.keyPrefix = prefix
	}
}

// WithRedisClock replaces time.Now, for tests.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(s *RedisBucketStore) {
		s.now = now
	}
}

func NewRedis(client redis.Cmdable, opts ...RedisOption) *RedisBucketStore {
	s := &RedisBucketStore{
		client:    client,
		keyPrefix: "dummygen:ratelimit:",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.RateLimitResult, error) {
	now := s.now()
	raw, err := slidingWindowScript.Run(ctx, s.client, []string{s.keyPrefix + key},
		now.UnixMilli(), window.Milliseconds(), limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("%w: sliding window script: %w", sentinel.ErrUnavailable, err)
	}
	if len(raw) != 3 {
		return nil, fmt.Errorf("%w: sliding window script returned %d values", sentinel.ErrUnavailable, len(raw))
	}

	allowed, count, oldest := raw[0] == 1, int(raw[1]), time.UnixMilli(raw[2])
	resetAt := oldest.Add(window)
	if !allowed {
		return &models.RateLimitResult{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: retryAfter(now, resetAt),
		}, nil
	}
	return &models.RateLimitResult{
		Allowed:   true,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}, nil
}
