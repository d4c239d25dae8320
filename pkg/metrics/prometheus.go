package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements repository.Metrics using Prometheus.
type Recorder struct {
	screens    *prometheus.CounterVec
	validation *prometheus.CounterVec
	lookups    *prometheus.CounterVec
	errorsTot  *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// New registers the recorder's collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		screens: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optscreen_screens_total",
				Help: "Screen runs by terminal outcome",
			},
			[]string{"outcome"},
		),
		validation: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optscreen_validation_errors_total",
				Help: "Rejected preset values by reason",
			},
			[]string{"reason"},
		),
		lookups: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optscreen_ticker_lookups_total",
				Help: "Ticker existence lookups by source and result",
			},
			[]string{"source", "result"},
		),
		errorsTot: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "optscreen_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "optscreen_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

func (r *Recorder) RecordScreen(outcome string) {
	r.screens.WithLabelValues(outcome).Inc()
}

func (r *Recorder) RecordValidationErrors(reason string, n int) {
	r.validation.WithLabelValues(reason).Add(float64(n))
}

func (r *Recorder) RecordLookup(source, result string) {
	r.lookups.WithLabelValues(source, result).Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTot.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards everything. Used when metrics are disabled.
type Nop struct{}

func (Nop) RecordScreen(string)                {}
func (Nop) RecordValidationErrors(string, int) {}
func (Nop) RecordLookup(string, string)        {}
func (Nop) RecordError(string)                 {}
func (Nop) RecordLatency(string, float64)      {}
