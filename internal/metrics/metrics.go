// Package metrics exposes Prometheus metrics for rating activity and
// storage health.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option applies a configuration option to the Recorder.
type Option func(*Recorder)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		if namespace != "" {
			r.namespace = namespace
		}
	}
}

// WithRegistry sets a custom Prometheus registry.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(r *Recorder) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// Recorder owns the review metrics. A nil *Recorder is valid and records nothing.
type Recorder struct {
	namespace string
	registry  *prometheus.Registry

	ratings       *prometheus.CounterVec
	storeFailures *prometheus.CounterVec
	intervalDays  prometheus.Histogram
}

// New creates a Recorder registered on its own registry.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace: "gilead",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(r)
	}

	auto := promauto.With(r.registry)
	r.ratings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "ratings_total",
		Help:      "Total number of card ratings by button (again, good, easy)",
	}, []string{"outcome"})

	r.storeFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Name:      "store_failures_total",
		Help:      "Storage operations that failed and were absorbed (get, put, decode)",
	}, []string{"op"})

	r.intervalDays = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Name:      "review_interval_days",
		Help:      "Scheduled review interval in days",
		Buckets:   []float64{1, 2, 4, 6, 10, 15, 30, 60, 120, 365},
	})

	return r
}

// ObserveRating records a rating and the interval it produced.
func (r *Recorder) ObserveRating(outcome string, interval int) {
	if r == nil {
		return
	}
	r.ratings.WithLabelValues(outcome).Inc()
	r.intervalDays.Observe(float64(interval))
}

// StoreFailure records an absorbed storage failure.
func (r *Recorder) StoreFailure(op string) {
	if r == nil {
		return
	}
	r.storeFailures.WithLabelValues(op).Inc()
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
