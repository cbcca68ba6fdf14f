// Package metrics exposes prometheus collectors for the resolve path. The
// resolver gates every tracking event under a tight latency budget, so the
// duration histogram and per-outcome counters are the primary operational
// signal for this service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Resolve outcomes, used as the label value on the counter.
const (
	OutcomeAuthorized   = "authorized"
	OutcomeUnauthorized = "unauthorized"
	OutcomeInvalid      = "invalid_domain"
	OutcomeInconsistent = "consistency_fault"
	OutcomeError        = "error"
)

type Metrics struct {
	resolveTotal    *prometheus.CounterVec
	resolveDuration prometheus.Histogram
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatekeep",
			Name:      "resolve_total",
			Help:      "Domain resolution attempts by outcome.",
		}, []string{"outcome"}),
		resolveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gatekeep",
			Name:      "resolve_duration_seconds",
			Help:      "End-to-end resolution latency. Budget is 100ms.",
			Buckets:   []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}

	reg.MustRegister(m.resolveTotal, m.resolveDuration)
	return m
}

// ObserveResolve records one resolution attempt.
func (m *Metrics) ObserveResolve(outcome string, elapsed time.Duration) {
	m.resolveTotal.WithLabelValues(outcome).Inc()
	m.resolveDuration.Observe(elapsed.Seconds())
}
