package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordOrderLookup(t *testing.T) {
	m := New()

	m.RecordOrderLookup(false)
	m.RecordOrderLookup(true)
	m.RecordOrderLookup(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrderLookupsTotal.WithLabelValues("hit")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OrderLookupsTotal.WithLabelValues("fallback")))
}

func TestSessionGauge(t *testing.T) {
	m := New()

	m.SessionStarted()
	m.SessionStarted()
	m.SessionStopped()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.TelemetrySessionsActive))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.RecordHTTPRequest(http.MethodGet, "/vendor", http.StatusOK, 15*time.Millisecond)
	m.RecordTick("position")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `delitrack_http_requests_total{method="GET",route="/vendor",status="200"} 1`)
	assert.Contains(t, body, `delitrack_telemetry_ticks_total{kind="position"} 1`)
}
