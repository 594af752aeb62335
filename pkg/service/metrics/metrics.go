package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secmon-lab/riskquant/pkg/domain/types"
)

const namespace = "riskquant"

// Recorder collects simulation metrics into its own registry
type Recorder struct {
	registry *prometheus.Registry

	runs       *prometheus.CounterVec
	iterations prometheus.Counter
	duration   prometheus.Histogram
	riskScore  prometheus.Gauge
}

// New creates a Recorder with a fresh registry holding the simulation metrics plus the
// Go runtime and process collectors
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "runs_total",
				Help:      "Total number of simulation runs by outcome",
			},
			[]string{"outcome"},
		),
		iterations: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "iterations_total",
				Help:      "Total number of Monte Carlo iterations completed",
			},
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "duration_seconds",
				Help:      "Wall time of completed simulation runs",
				Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		riskScore: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "simulation",
				Name:      "last_risk_score",
				Help:      "Risk score of the most recent successful run",
			},
		),
	}
}

// ObserveSuccess records a completed run
func (r *Recorder) ObserveSuccess(iterations int, elapsed time.Duration, riskScore float64) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(types.RunOutcomeSuccess.String()).Inc()
	r.iterations.Add(float64(iterations))
	r.duration.Observe(elapsed.Seconds())
	r.riskScore.Set(riskScore)
}

// ObserveFailure records a run that ended with the given outcome
func (r *Recorder) ObserveFailure(outcome types.RunOutcome) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(outcome.String()).Inc()
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
