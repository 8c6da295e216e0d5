package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for synthesis requests.
type Metrics struct {
	// Generation outcomes by kind: ok, validation, no_rule, build
	GenerateOutcome *prometheus.CounterVec

	GenerateLatency prometheus.Histogram

	// Plans created, by whether the plan was empty
	PlansCreated *prometheus.CounterVec
}

// NewMetrics registers the server metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GenerateOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ots_generate_outcomes_total",
			Help: "Schematic generation outcomes by kind",
		}, []string{"kind"}),

		GenerateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "ots_generate_duration_seconds",
			Help:    "Duration of rule-based schematic generation",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		}),

		PlansCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ots_plans_created_total",
			Help: "Designs created from plans, by whether the plan had steps",
		}, []string{"empty"}),
	}
}

// IncrementOutcome records a generation outcome.
func (m *Metrics) IncrementOutcome(kind string) {
	if m != nil {
		m.GenerateOutcome.WithLabelValues(kind).Inc()
	}
}

// ObserveGenerateLatency records one generation's duration.
func (m *Metrics) ObserveGenerateLatency(d time.Duration) {
	if m != nil {
		m.GenerateLatency.Observe(d.Seconds())
	}
}

// IncrementPlans records a created design.
func (m *Metrics) IncrementPlans(empty bool) {
	if m != nil {
		label := "false"
		if empty {
			label = "true"
		}
		m.PlansCreated.WithLabelValues(label).Inc()
	}
}
