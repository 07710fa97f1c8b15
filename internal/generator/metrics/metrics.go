package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for batch generation.
type Metrics struct {
	// Batches by outcome: "success", "unknown_field_type", ...
	Batches *prometheus.CounterVec

	RecordsGenerated prometheus.Counter

	// Values generated with no arguments because constraints did not bind
	ConstraintFallbacks prometheus.Counter

	BatchDuration prometheus.Histogram
}

// New creates generator metrics registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Batches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dummygen_generator_batches_total",
			Help: "Total generation batches by outcome",
		}, []string{"outcome"}),

		RecordsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummygen_generator_records_total",
			Help: "Total records generated",
		}),

		ConstraintFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "dummygen_generator_constraint_fallbacks_total",
			Help: "Values generated without arguments because the constraints were invalid",
		}),

		BatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dummygen_generator_batch_duration_seconds",
			Help:    "Duration of a full generation batch",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveBatch records one finished batch.
func (m *Metrics) ObserveBatch(outcome string, records, fallbacks int, d time.Duration) {
	if m == nil {
		return
	}
	m.Batches.WithLabelValues(outcome).Inc()
	m.RecordsGenerated.Add(float64(records))
	m.ConstraintFallbacks.Add(float64(fallbacks))
	m.BatchDuration.Observe(d.Seconds())
}
