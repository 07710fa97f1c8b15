package middleware

import (
	"context"
	"log/slog"

	"dummygen/internal/ratelimit/metrics"
	"dummygen/internal/ratelimit/models"
	"dummygen/internal/ratelimit/service/requestlimit"
	"dummygen/pkg/platform/circuit"
)

// Limiter checks the primary request limiter and, once the circuit to its
// store opens, answers from a local fallback limiter until the primary has
// recovered.
type Limiter struct {
	primary  *requestlimit.Service
	fallback RateLimiter
	breaker  *circuit.Breaker
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type LimiterOption func(*Limiter)

// WithFallback enables degraded mode. Without a fallback, store errors are
// returned and the middleware fails open.
func WithFallback(fallback RateLimiter) LimiterOption {
	return func(l *Limiter) {
		l.fallback = fallback
	}
}

func WithBreaker(b *circuit.Breaker) LimiterOption {
	return func(l *Limiter) {
		l.breaker = b
	}
}

func WithLimiterLogger(logger *slog.Logger) LimiterOption {
	return func(l *Limiter) {
		l.logger = logger
	}
}

func WithLimiterMetrics(m *metrics.Metrics) LimiterOption {
	return func(l *Limiter) {
		l.metrics = m
	}
}

func NewLimiter(primary *requestlimit.Service, opts ...LimiterOption) *Limiter {
	l := &Limiter{
		primary: primary,
		breaker: circuit.New("ratelimit-store"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) CheckIPRateLimit(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	result, err := l.primary.CheckIP(ctx, ip, class)
	if l.fallback == nil {
		return result, err
	}

	if err != nil {
		l.metrics.RecordStoreError()
		useFallback, change := l.breaker.RecordFailure()
		if change.Opened {
			l.metrics.SetFallbackActive(true)
			l.logger.WarnContext(ctx, "rate limit store unavailable, using in-memory fallback",
				"breaker", l.breaker.Name(),
				"error", err,
			)
		}
		if !useFallback {
			return nil, err
		}
		return l.degraded(ctx, ip, class)
	}

	usePrimary, change := l.breaker.RecordSuccess()
	if change.Closed {
		l.metrics.SetFallbackActive(false)
		l.logger.InfoContext(ctx, "rate limit store recovered", "breaker", l.breaker.Name())
	}
	if usePrimary {
		return result, nil
	}
	return l.degraded(ctx, ip, class)
}

func (l *Limiter) degraded(ctx context.Context, ip string, class models.EndpointClass) (*models.RateLimitResult, error) {
	result, err := l.fallback.CheckIPRateLimit(ctx, ip, class)
	if err != nil {
		return nil, err
	}
	result.Degraded = true
	return result, nil
}
