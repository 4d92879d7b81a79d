// Package metrics exposes Prometheus collectors for bill splitting.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for BillsSplit.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics holds the collectors recorded by the transports.
type Metrics struct {
	registry *prometheus.Registry

	billsSplit      *prometheus.CounterVec
	reconciliations *prometheus.CounterVec
	persons         prometheus.Histogram
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		billsSplit: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitbill",
			Name:      "bills_split_total",
			Help:      "Bills submitted for splitting, by transport and outcome.",
		}, []string{"transport", "outcome"}),
		reconciliations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "splitbill",
			Name:      "reconciliations_total",
			Help:      "Split bills by the reconciliation step needed to balance the shares.",
		}, []string{"kind"}),
		persons: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "splitbill",
			Name:      "persons_per_bill",
			Help:      "Number of distinct persons on each split bill.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12, 20},
		}),
	}

	m.registry.MustRegister(
		m.billsSplit,
		m.reconciliations,
		m.persons,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSplit records a successful split.
func (m *Metrics) ObserveSplit(transport, reconciliation string, persons int) {
	if m == nil {
		return
	}
	m.billsSplit.WithLabelValues(transport, OutcomeOK).Inc()
	m.reconciliations.WithLabelValues(reconciliation).Inc()
	m.persons.Observe(float64(persons))
}

// ObserveFailure records a bill that could not be split.
func (m *Metrics) ObserveFailure(transport, outcome string) {
	if m == nil {
		return
	}
	m.billsSplit.WithLabelValues(transport, outcome).Inc()
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
