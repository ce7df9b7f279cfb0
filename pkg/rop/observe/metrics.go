package observe

import (
	"context"

	"github.com/ib-77/chainer/pkg/rop/chain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records chain events as Prometheus metrics.
type Metrics struct {
	runs         *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	stepFailures *prometheus.CounterVec
	runDuration  *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainer_runs_total",
				Help: "Total number of finished chain runs",
			},
			[]string{"chain", "outcome"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chainer_step_duration_seconds",
				Help:    "Duration of chain step executions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"chain", "step"},
		),
		stepFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chainer_failures_total",
				Help: "Total number of chain failures by failing step",
			},
			[]string{"chain", "step"},
		),
		runDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chainer_run_duration_seconds",
				Help:    "Duration of whole chain runs",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"chain"},
		),
	}

	for _, c := range []prometheus.Collector{m.runs, m.stepDuration, m.stepFailures, m.runDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Observe(_ context.Context, e chain.Event) {
	switch e.Phase {
	case chain.PhaseStepEnd:
		m.stepDuration.WithLabelValues(e.Chain, e.Step).Observe(e.Duration.Seconds())
	case chain.PhaseFailure:
		m.stepFailures.WithLabelValues(e.Chain, e.Step).Inc()
	case chain.PhaseEnd:
		outcome := "success"
		if !e.Success {
			outcome = "failure"
		}
		m.runs.WithLabelValues(e.Chain, outcome).Inc()
		m.runDuration.WithLabelValues(e.Chain).Observe(e.Duration.Seconds())
	}
}
