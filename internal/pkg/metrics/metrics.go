// Package metrics exposes Prometheus instrumentation for the order lifecycle.
package metrics

import (
	"net/http"

	"grocery/internal/core/domain/model/order"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LifecycleMetrics counts transition attempts by edge and outcome. Rejected
// attempts are counted too; the outcome label separates applied transitions
// from authorization failures, conflicts and invalid proofs.
type LifecycleMetrics struct {
	Transitions *prometheus.CounterVec
}

// NewLifecycleMetrics registers and returns the lifecycle metrics.
// Call once per process; duplicate registration panics.
func NewLifecycleMetrics() *LifecycleMetrics {
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "grocery",
		Subsystem: "orders",
		Name:      "transitions_total",
		Help:      "Total number of order transition attempts.",
	}, []string{"from", "to", "outcome"})

	prometheus.MustRegister(transitions)
	return &LifecycleMetrics{Transitions: transitions}
}

// ObserveTransition records one transition attempt.
func (m *LifecycleMetrics) ObserveTransition(from, to order.Status, outcome string) {
	m.Transitions.WithLabelValues(from.String(), to.String(), outcome).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
