package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "classifier"

// Metrics groups the service collectors
type Metrics struct {
	Requests    *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Predictions *prometheus.CounterVec
	Failures    *prometheus.CounterVec
	CacheHits   *prometheus.CounterVec
	Inference   *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		Predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predictions_total",
			Help:      "Classified texts by model and category.",
		}, []string{"model", "category"}),
		Failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_failures_total",
			Help:      "Failed classifications by model and reason.",
		}, []string{"model", "reason"}),
		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "prediction_cache_lookups_total",
			Help:      "Prediction cache lookups by result.",
		}, []string{"result"}),
		Inference: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "inference_duration_seconds",
			Help:      "Time spent vectorizing and predicting on cache misses, by model.",
			Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"model"}),
	}

	reg.MustRegister(m.Requests, m.Duration, m.Predictions, m.Failures, m.CacheHits, m.Inference)
	return m
}

// ObserveRequest records one HTTP request
func (m *Metrics) ObserveRequest(method, route, status string, elapsed time.Duration) {
	m.Requests.WithLabelValues(method, route, status).Inc()
	m.Duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObservePrediction counts a successful classification, cached or not
func (m *Metrics) ObservePrediction(model, category string) {
	m.Predictions.WithLabelValues(model, category).Inc()
}

// ObserveInference records the time a model spent on one text.
// Cache hits are not observed.
func (m *Metrics) ObserveInference(model string, elapsed time.Duration) {
	m.Inference.WithLabelValues(model).Observe(elapsed.Seconds())
}

// ObserveFailure records a failed classification
func (m *Metrics) ObserveFailure(model, reason string) {
	m.Failures.WithLabelValues(model, reason).Inc()
}

// ObserveCache records a cache lookup
func (m *Metrics) ObserveCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheHits.WithLabelValues(result).Inc()
}
