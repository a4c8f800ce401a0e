package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()
	m.CacheHit()
	m.CacheHit()
	m.CacheMiss()
	m.Alert("sent")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ListingCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ListingCache.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AlertsSent.WithLabelValues("sent")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheHit()
		m.CacheMiss()
		m.ObserveListing(0.1)
		m.Alert("failed")
		m.Import("ok")
		m.WSConnected()
		m.WSDisconnected()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Import("ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `jobboard_jobs_imported_total{outcome="ok"} 1`)
}
