package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"dummygen/internal/fields"
	fieldshandler "dummygen/internal/fields/handler"
	generatorhandler "dummygen/internal/generator/handler"
	generatormetrics "dummygen/internal/generator/metrics"
	generatorservice "dummygen/internal/generator/service"
	httpapi "dummygen/internal/http"
	"dummygen/internal/platform/config"
	"dummygen/internal/platform/httpserver"
	"dummygen/internal/platform/logger"
	platformmetrics "dummygen/internal/platform/metrics"
	"dummygen/internal/platform/redis"
	ratelimitconfig "dummygen/internal/ratelimit/config"
	ratelimitmetrics "dummygen/internal/ratelimit/metrics"
	ratelimitmw "dummygen/internal/ratelimit/middleware"
	"dummygen/internal/ratelimit/ports"
	"dummygen/internal/ratelimit/service/requestlimit"
	"dummygen/internal/ratelimit/store/allowlist"
	"dummygen/internal/ratelimit/store/bucket"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "dummygen:", err)
		os.Exit(1)
	}
}

// run wires dependencies and blocks until the server stops. Business logic
// lives in the internal service packages.
func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := buildRegistry(cfg.Generation.FieldsFile)
	if err != nil {
		return err
	}
	log.Info("field registry loaded", "fields", len(registry.IDs()), "extra_file", cfg.Generation.FieldsFile)

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc, err := generatorservice.New(registry,
		generatorservice.WithLogger(log),
		generatorservice.WithMetrics(generatormetrics.New(promRegistry)),
		generatorservice.WithStrictConstraints(cfg.Generation.StrictConstraints),
	)
	if err != nil {
		return fmt.Errorf("init generator: %w", err)
	}

	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, rate limiting in memory", "error", err)
	}

	memoryBuckets := bucket.New()
	limiter, err := buildLimiter(cfg.RateLimit, redisClient, memoryBuckets, ratelimitmetrics.New(promRegistry), log)
	if err != nil {
		return err
	}

	var redisHealth httpapi.HealthChecker
	if redisClient != nil {
		redisHealth = redisClient
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Logger:         log,
		Fields:         fieldshandler.New(registry, log),
		Generator:      generatorhandler.New(svc, log, cfg.Generation.MaxRecords),
		Health:         httpapi.NewHealthHandler(redisHealth, log),
		RateLimit:      ratelimitmw.New(limiter, log, ratelimitmw.WithDisabled(cfg.RateLimit.Disabled)),
		Metrics:        platformmetrics.New(promRegistry),
		Gatherer:       promRegistry,
		MetricsToken:   cfg.MetricsToken,
		CORSOrigins:    cfg.CORSOrigins,
		RequestTimeout: cfg.RequestTimeout,
	})
	srv := httpserver.New(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("DummyGen API started", "addr", cfg.Addr, "redis", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		memoryBuckets.RunJanitor(gctx, cfg.RateLimit.CleanupInterval, log)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		if redisClient != nil {
			if cerr := redisClient.Close(); cerr != nil {
				log.Warn("closing redis", "error", cerr)
			}
		}
		log.Info("DummyGen API stopped")
		if err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func buildRegistry(fieldsFile string) (*fields.Registry, error) {
	var extra []fields.FieldDefinition
	if fieldsFile != "" {
		defs, err := fields.LoadFile(fieldsFile)
		if err != nil {
			return nil, err
		}
		extra = defs
	}
	registry, err := fields.Default(extra...)
	if err != nil {
		return nil, fmt.Errorf("build field registry: %w", err)
	}
	return registry, nil
}

// buildLimiter limits in memory, or in Redis with memory as the circuit
// breaker fallback when Redis is configured.
func buildLimiter(
	cfg config.RateLimitConfig,
	redisClient *redis.Client,
	memoryBuckets *bucket.InMemoryBucketStore,
	m *ratelimitmetrics.Metrics,
	log *slog.Logger,
) (*ratelimitmw.Limiter, error) {
	limits := ratelimitconfig.FromPlatform(cfg)
	allow, err := allowlist.NewStatic(limits.Allowlist)
	if err != nil {
		return nil, fmt.Errorf("rate limit allowlist: %w", err)
	}

	var primaryStore ports.BucketStore = memoryBuckets
	if redisClient != nil {
		primaryStore = bucket.NewRedis(redisClient.Client)
	}
	primary, err := requestlimit.New(primaryStore, allow,
		requestlimit.WithConfig(limits),
		requestlimit.WithLogger(log),
		requestlimit.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("init rate limiter: %w", err)
	}

	opts := []ratelimitmw.LimiterOption{
		ratelimitmw.WithLimiterLogger(log),
		ratelimitmw.WithLimiterMetrics(m),
	}
	if redisClient != nil {
		opts = append(opts, ratelimitmw.WithFallback(ratelimitmw.NewFallbackLimiter(memoryBuckets, limits, allow, log)))
	}
	return ratelimitmw.NewLimiter(primary, opts...), nil
}
