package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"dummygen/internal/ratelimit/models"
)

type Metrics struct {
	Decisions         *prometheus.CounterVec
	AllowlistBypasses *prometheus.CounterVec
	StoreErrors       prometheus.Counter
	FallbackActive    prometheus.Gauge
}

// New registers the rate limiting metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dummygen_ratelimit_decisions_total",
			Help: "Rate limit decisions by endpoint class and outcome",
		}, []string{"class", "outcome"}),
		AllowlistBypasses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dummygen_ratelimit_allowlist_bypass_total",
			Help: "Requests that skipped rate limiting because the client is allowlisted",
		}, []string{"type"}),
		StoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummygen_ratelimit_store_errors_total",
			Help: "Bucket store failures, each answered from the fallback store or failed open",
		}),
		FallbackActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dummygen_ratelimit_fallback_active",
			Help: "1 while the circuit to the primary bucket store is open",
		}),
	}
}

func (m *Metrics) RecordDecision(class models.EndpointClass, allowed bool) {
	if m == nil {
		return
	}
	outcome := "allowed"
	if !allowed {
		outcome = "denied"
	}
	m.Decisions.WithLabelValues(string(class), outcome).Inc()
}

func (m *Metrics) RecordAllowlistBypass(bypassType string) {
	if m == nil {
		return
	}
	m.AllowlistBypasses.WithLabelValues(bypassType).Inc()
}

func (m *Metrics) RecordStoreError() {
	if m == nil {
		return
	}
	m.StoreErrors.Inc()
}

func (m *Metrics) SetFallbackActive(active bool) {
	if m == nil {
		return
	}
	if active {
		m.FallbackActive.Set(1)
		return
	}
	m.FallbackActive.Set(0)
}
