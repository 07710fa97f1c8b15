// Package httpapi assembles the public HTTP surface.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	platformmetrics "dummygen/internal/platform/metrics"
	platformmiddleware "dummygen/internal/platform/middleware"
	ratelimitmw "dummygen/internal/ratelimit/middleware"
	"dummygen/internal/ratelimit/models"
	"dummygen/pkg/platform/middleware/device"
	"dummygen/pkg/platform/middleware/metadata"
	"dummygen/pkg/platform/middleware/request"
	"dummygen/pkg/platform/middleware/requesttime"
	"dummygen/pkg/platform/middleware/token"
)

// RouteRegistrar is implemented by module handlers.
type RouteRegistrar interface {
	Register(r chi.Router)
}

// Deps carries everything the router mounts.
type Deps struct {
	Logger         *slog.Logger
	Fields         RouteRegistrar
	Generator      RouteRegistrar
	Health         *HealthHandler
	RateLimit      *ratelimitmw.Middleware
	Metrics        *platformmetrics.Metrics
	Gatherer       prometheus.Gatherer
	// MetricsToken, when set, must be presented as a bearer token on /metrics.
	MetricsToken   string
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter mounts the API under /api and Prometheus metrics at /metrics.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(device.Middleware)
	r.Use(platformmiddleware.AccessLog(d.Logger))
	r.Use(chimiddleware.Recoverer)
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Content-Disposition", request.HeaderRequestID, ratelimitmw.HeaderLimit, ratelimitmw.HeaderRemaining, ratelimitmw.HeaderReset, ratelimitmw.HeaderRetryAfter},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if d.Gatherer != nil {
		r.With(token.Require(d.MetricsToken, d.Logger)).
			Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		if d.RequestTimeout > 0 {
			api.Use(chimiddleware.Timeout(d.RequestTimeout))
		}

		api.Get("/health", d.Health.HandleHealth)

		api.Group(func(read chi.Router) {
			read.Use(d.RateLimit.RateLimit(models.ClassRead))
			d.Fields.Register(read)
		})

		api.Group(func(gen chi.Router) {
			gen.Use(d.RateLimit.RateLimit(models.ClassGenerate))
			d.Generator.Register(gen)
		})
	})

	return r
}
