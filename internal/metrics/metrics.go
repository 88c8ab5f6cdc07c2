// Package metrics exposes Prometheus collectors for model invocations and reviews.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	AttemptsTotal  *prometheus.CounterVec
	RetriesTotal   *prometheus.CounterVec
	RetryDelay     prometheus.Histogram
	ReviewsTotal   *prometheus.CounterVec
	ReviewDuration prometheus.Histogram
}

// New registers all collectors on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "review_relay_model_attempts_total",
				Help: "Model calls by outcome (success, retryable, terminal)",
			},
			[]string{"outcome"},
		),
		RetriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "review_relay_model_retries_total",
				Help: "Retries scheduled after a transient model failure",
			},
			[]string{"status"},
		),
		RetryDelay: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "review_relay_model_retry_delay_seconds",
				Help:    "Backoff delay applied before a retry",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16},
			},
		),
		ReviewsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "review_relay_reviews_total",
				Help: "Finished reviews by result",
			},
			[]string{"result"},
		),
		ReviewDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "review_relay_review_duration_seconds",
				Help:    "End-to-end review duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
		),
	}
}

func (m *Metrics) ObserveAttempt(outcome string) {
	m.AttemptsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRetry(_ int, status int, delay time.Duration) {
	m.RetriesTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	m.RetryDelay.Observe(delay.Seconds())
}

func (m *Metrics) ObserveReview(result string, elapsed time.Duration) {
	m.ReviewsTotal.WithLabelValues(result).Inc()
	m.ReviewDuration.Observe(elapsed.Seconds())
}

// Registry returns the registry backing these collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
