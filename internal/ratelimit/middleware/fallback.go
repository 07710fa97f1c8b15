package middleware

import (
	"context"
	"log/slog"

	"dummygen/internal/ratelimit/config"
	"dummygen/internal/ratelimit/models"
	"dummygen/internal/ratelimit/service/requestlimit"
	"dummygen/internal/ratelimit/store/bucket"
)

// fallbackLimiter rate limits from process memory while the shared store is
// unavailable.
type fallbackLimiter struct {
	requests *requestlimit.Service
}

// NewFallbackLimiter builds a limiter over store with the same limits and
// allowlist as the primary. It returns nil, logging why, if a dependency is
// missing.
func NewFallbackLimiter(store *bucket.InMemoryBucketStore, cfg *config.Config, allowlistStore requestlimit.AllowlistStore, logger *slog.Logger) RateLimiter {
	if store == nil || cfg == nil || allowlistStore == nil {
		if logger != nil {
			logger.Error("fallback limiter is missing a dependency")
		}
		return nil
	}
	requests, err := requestlimit.New(
		store,
		allowlistStore,
		requestlimit.WithLogger(logger),
		requestlimit.WithConfig(cfg),
	)
	if err != nil {
		if logger != nil {
			logger.Error("failed to initialize fallback rate limiter", "error", err)
		}
		return nil
	}
	return &fallbackLimiter{requests: requests}
}

func (f *fallbackLimiter) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	return f.requests.CheckIP(ctx, ip, class)
}
