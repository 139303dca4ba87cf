package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds the collectors for interview operations and the external
// calls they make.
type Metrics struct {
	Transitions    *prometheus.CounterVec
	AdapterLatency *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interview_transitions_total",
				Help: "Interview session operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		AdapterLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "interview_adapter_call_duration_seconds",
				Help:    "Latency of calls to external interview capabilities.",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"adapter", "call"},
		),
	}

	reg.MustRegister(m.Transitions, m.AdapterLatency)
	return m
}

// Observe records one operation outcome. A nil receiver is a no-op.
func (m *Metrics) Observe(operation string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeFailure
	}
	m.Transitions.WithLabelValues(operation, outcome).Inc()
}

// Time returns a func that records the elapsed time of an adapter call.
func (m *Metrics) Time(adapter, call string) func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.AdapterLatency.WithLabelValues(adapter, call).Observe(time.Since(start).Seconds())
	}
}
