package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("POST", "/api/v1/predictions", "200", 15*time.Millisecond)
	m.ObserveRequest("POST", "/api/v1/predictions", "200", 5*time.Millisecond)
	m.ObservePrediction("knn", "News")
	m.ObserveInference("knn", time.Millisecond)
	m.ObserveFailure("svc", "artifact_not_found")
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveCache(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("POST", "/api/v1/predictions", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Predictions.WithLabelValues("knn", "News")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures.WithLabelValues("svc", "artifact_not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("miss")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Inference))

	expected := `
# HELP classifier_predictions_total Classified texts by model and category.
# TYPE classifier_predictions_total counter
classifier_predictions_total{category="News",model="knn"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "classifier_predictions_total"))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
