package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"dummygen/internal/fields"
	fieldshandler "dummygen/internal/fields/handler"
	generatorhandler "dummygen/internal/generator/handler"
	generatorservice "dummygen/internal/generator/service"
	platformmetrics "dummygen/internal/platform/metrics"
	ratelimitconfig "dummygen/internal/ratelimit/config"
	ratelimitmw "dummygen/internal/ratelimit/middleware"
	"dummygen/internal/ratelimit/service/requestlimit"
	"dummygen/internal/ratelimit/store/allowlist"
	"dummygen/internal/ratelimit/store/bucket"
	"dummygen/pkg/testutil"
)

type fakeRedis struct{ err error }

func (f fakeRedis) Health(context.Context) error { return f.err }

type RouterSuite struct {
	suite.Suite
	router       http.Handler
	metricsToken string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) newRouter(redis HealthChecker) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()

	registry, err := fields.Default()
	s.Require().NoError(err)
	svc, err := generatorservice.New(registry, generatorservice.WithLogger(logger))
	s.Require().NoError(err)

	allow, err := allowlist.NewStatic(nil)
	s.Require().NoError(err)
	requests, err := requestlimit.New(bucket.New(), allow, requestlimit.WithConfig(ratelimitconfig.DefaultConfig()))
	s.Require().NoError(err)

	return NewRouter(Deps{
		Logger:         logger,
		Fields:         fieldshandler.New(registry, logger),
		Generator:      generatorhandler.New(svc, logger, 1000),
		Health:         NewHealthHandler(redis, logger),
		RateLimit:      ratelimitmw.New(ratelimitmw.NewLimiter(requests), logger),
		Metrics:        platformmetrics.New(reg),
		Gatherer:       reg,
		MetricsToken:   s.metricsToken,
		CORSOrigins:    []string{"http://localhost:3000"},
		RequestTimeout: 5 * time.Second,
	})
}

func (s *RouterSuite) SetupTest() {
	s.metricsToken = ""
	s.router = s.newRouter(nil)
}

func (s *RouterSuite) TestHealth() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/api/health"))
	testutil.AssertStatusOK(s.T(), rr)
	s.JSONEq(`{"status":"healthy","service":"dummygen-api"}`, rr.Body.String())

	s.Run("reports redis", func() {
		rr := testutil.DoRequest(s.newRouter(fakeRedis{}), testutil.NewRequest(s.T(), http.MethodGet, "/api/health"))
		s.JSONEq(`{"status":"healthy","service":"dummygen-api","redis":"ok"}`, rr.Body.String())

		rr = testutil.DoRequest(s.newRouter(fakeRedis{err: errors.New("down")}), testutil.NewRequest(s.T(), http.MethodGet, "/api/health"))
		testutil.AssertStatusOK(s.T(), rr)
		s.JSONEq(`{"status":"degraded","service":"dummygen-api","redis":"unavailable"}`, rr.Body.String())
	})
}

func (s *RouterSuite) TestFields() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/api/fields"))
	testutil.AssertStatusOK(s.T(), rr)
	s.Equal("100", rr.Header().Get(ratelimitmw.HeaderLimit))
	s.Equal("99", rr.Header().Get(ratelimitmw.HeaderRemaining))
	testutil.AssertJSONHasKey(s.T(), testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/api/fields")), "categories")
	testutil.AssertJSONHasKey(s.T(), rr, "fields")
}

func (s *RouterSuite) TestGenerateIsRateLimitedPerIP() {
	body := `{"schema":{"name":"full_name","age":"age"},"count":2,"seed":7}`
	for i := range 10 {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/generate", body)
		req.Header.Set("X-Forwarded-For", "198.51.100.4")
		rr := testutil.DoRequest(s.router, req)
		s.Require().Equal(http.StatusOK, rr.Code, "request %d: %s", i+1, rr.Body.String())
	}

	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/generate", body)
	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusTooManyRequests, "rate_limit_exceeded")
	s.NotEmpty(rr.Header().Get(ratelimitmw.HeaderRetryAfter))

	s.Run("other clients are unaffected", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/generate", body)
		req.Header.Set("X-Forwarded-For", "198.51.100.5")
		testutil.AssertStatusOK(s.T(), testutil.DoRequest(s.router, req))
	})
}

func (s *RouterSuite) TestGenerateCSV() {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/api/generate",
		`{"schema":{"id":"uuid","ok":"boolean"},"count":3,"format":"csv"}`)
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	s.Equal("attachment; filename=dummygen.csv", rr.Header().Get("Content-Disposition"))
	rows := testutil.ReadCSV(s.T(), rr)
	s.Len(rows, 4)
	s.Equal([]string{"id", "ok"}, rows[0])
}

func (s *RouterSuite) TestCORSPreflight() {
	req := testutil.NewRequest(s.T(), http.MethodOptions, "/api/generate")
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := testutil.DoRequest(s.router, req)

	s.Equal("http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
	s.Equal("true", rr.Header().Get("Access-Control-Allow-Credentials"))
}

func (s *RouterSuite) TestMetricsEndpoint() {
	testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/api/health"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Body.String(), `dummygen_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}

func (s *RouterSuite) TestMetricsToken() {
	s.metricsToken = "ops"
	router := s.newRouter(nil)

	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))
	s.Equal(http.StatusUnauthorized, rr.Code)

	req := testutil.NewRequest(s.T(), http.MethodGet, "/metrics")
	req.Header.Set("Authorization", "Bearer ops")
	rr = testutil.DoRequest(router, req)
	testutil.AssertStatusOK(s.T(), rr)

	s.Run("api routes do not need the token", func() {
		rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/api/health"))
		testutil.AssertStatusOK(s.T(), rr)
	})
}

func (s *RouterSuite) TestRequestIDEchoed() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/api/health"))
	s.NotEmpty(rr.Header().Get("X-Request-ID"))
}

func TestSeededGenerationOverHTTP(t *testing.T) {
	rs := &RouterSuite{}
	rs.SetT(t)
	router := rs.newRouter(nil)
	body := `{"schema":{"name":"full_name","email":"email","score":{"type":"integer","min":1,"max":5}},"count":4,"seed":2024}`

	testutil.Given(t, "two identical seeded requests", func(t *testing.T) {
		first := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/api/generate", body))
		second := testutil.DoRequest(router, testutil.NewRequestWithBody(t, http.MethodPost, "/api/generate", body))

		testutil.When(t, "both succeed", func(t *testing.T) {
			testutil.AssertStatusOK(t, first)
			testutil.AssertStatusOK(t, second)

			testutil.Then(t, "the batches are identical", func(t *testing.T) {
				if first.Body.String() != second.Body.String() {
					t.Fatalf("seeded batches differ:\n%s\n%s", first.Body.String(), second.Body.String())
				}
			})
			testutil.Then(t, "the envelope reports the count", func(t *testing.T) {
				testutil.AssertJSONContains(t, first, "count", float64(4))
			})
		})
	})
}
