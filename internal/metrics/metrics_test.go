package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRating(t *testing.T) {
	r := New()
	r.ObserveRating("good", 6)
	r.ObserveRating("good", 17)
	r.ObserveRating("again", 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.ratings.WithLabelValues("good")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ratings.WithLabelValues("again")))

	families, err := r.Registry().Gather()
	require.NoError(t, err)
	var count uint64
	for _, mf := range families {
		if mf.GetName() == "gilead_review_interval_days" {
			count = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(3), count)
}

func TestStoreFailure(t *testing.T) {
	r := New()
	r.StoreFailure("put")
	assert.Equal(t, 1.0, testutil.ToFloat64(r.storeFailures.WithLabelValues("put")))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveRating("easy", 1)
	r.StoreFailure("get")
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := New(WithNamespace("test"))
	r.ObserveRating("easy", 1)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `test_ratings_total{outcome="easy"} 1`), rec.Body.String())
}
