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

func TestRecordCall(t *testing.T) {
	m := NewMetrics("test")

	m.RecordCall(KindMap, "upsert", OutcomeOK)
	m.RecordCall(KindMap, "upsert", OutcomeOK)
	m.RecordCall(KindSet, "insert", OutcomeAbsent)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(KindMap, "upsert", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CallsTotal.WithLabelValues(KindSet, "insert", OutcomeAbsent)))
}

func TestRecordAllocAndRelease(t *testing.T) {
	m := NewMetrics("test")

	m.RecordAlloc(AllocText, true)
	m.RecordAlloc(AllocText, false)
	m.RecordRelease(AllocText)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OwnedAllocations.WithLabelValues(AllocText)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AllocFailures))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OwnedReleases.WithLabelValues(AllocText)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordCall(KindMap, "size", OutcomeOK)
		m.RecordTagMismatch("get_number")
		m.RecordAlloc(AllocEntries, true)
		m.RecordRelease(AllocEntries)
		m.RecordExport(3)
		m.UpdateCollections(1, 2)
	})
}

func TestIndependentInstances(t *testing.T) {
	// Two instances with the same namespace must not collide.
	assert.NotPanics(t, func() {
		_ = NewMetrics("dup")
		_ = NewMetrics("dup")
	})
}

func TestMetricsServerHandler(t *testing.T) {
	m := NewMetrics("namedcache")
	m.UpdateCollections(3, 1)
	s := NewMetricsServer("127.0.0.1:0", m)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `namedcache_collections{kind="map"} 3`), body)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, "OK", rec.Body.String())
}
