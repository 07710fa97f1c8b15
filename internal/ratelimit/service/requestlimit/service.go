// Package requestlimit applies per-IP sliding-window limits by endpoint class.
package requestlimit

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dummygen/internal/ratelimit/config"
	"dummygen/internal/ratelimit/metrics"
	"dummygen/internal/ratelimit/models"
	"dummygen/internal/ratelimit/ports"
	dErrors "dummygen/pkg/domain-errors"
	"dummygen/pkg/platform/privacy"
	"dummygen/pkg/requestcontext"
)

type (
	BucketStore    = ports.BucketStore
	AllowlistStore = ports.AllowlistStore
)

// retryAfterUnconfigured is returned when a class has no limit.
const retryAfterUnconfigured = 60

type Service struct {
	buckets   BucketStore
	allowlist AllowlistStore
	logger    *slog.Logger
	config    *config.Config
	metrics   *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(buckets BucketStore, allowlist AllowlistStore, opts ...Option) (*Service, error) {
	if buckets == nil {
		return nil, errors.New("buckets store is required")
	}
	if allowlist == nil {
		return nil, errors.New("allowlist store is required")
	}

	svc := &Service{
		buckets:   buckets,
		allowlist: allowlist,
		config:    config.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CheckIP consumes one request from ip's window for class. A class without a
// configured limit is denied.
func (s *Service) CheckIP(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	now := requestcontext.Now(ctx)
	logIP := privacy.AnonymizeIP(ip)

	requestsPerWindow, window, ok := s.config.GetIPLimit(class)
	if !ok {
		ports.LogAudit(ctx, s.logger, "rate_limit_config_missing",
			"identifier", logIP,
			"endpoint_class", class,
		)
		s.metrics.RecordDecision(class, false)
		return &models.RateLimitResult{
			Allowed:    false,
			ResetAt:    now,
			RetryAfter: retryAfterUnconfigured,
		}, nil
	}

	allowlisted, err := s.allowlist.IsAllowlisted(ctx, ip)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check allowlist")
	}
	if allowlisted {
		s.metrics.RecordAllowlistBypass(string(models.KeyPrefixIP))
		ports.LogAudit(ctx, s.logger, "allowlist_bypass",
			"identifier", logIP,
			"endpoint_class", class,
		)
		return &models.RateLimitResult{
			Allowed:   true,
			Bypassed:  true,
			Limit:     requestsPerWindow,
			Remaining: requestsPerWindow,
			ResetAt:   now.Add(window),
		}, nil
	}

	key := models.NewRateLimitKey(models.KeyPrefixIP, ip, class)
	result, err := s.buckets.Allow(ctx, key.String(), requestsPerWindow, window)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rate limit")
	}

	s.metrics.RecordDecision(class, result.Allowed)
	if !result.Allowed {
		ports.LogAudit(ctx, s.logger, "ip_rate_limit_exceeded",
			"identifier", logIP,
			"endpoint_class", class,
			"limit", requestsPerWindow,
			"window_seconds", int(window/time.Second),
		)
	}
	return result, nil
}
