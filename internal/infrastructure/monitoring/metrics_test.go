package monitoring

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordExtraction(t *testing.T) {
	m := NewMetrics()

	m.RecordExtraction("scoped", ResultSuccess, 20*time.Millisecond, 3, 1024)
	m.RecordExtraction("scoped", ResultFailure, time.Millisecond, 1, 10)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("scoped", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("scoped", ResultFailure)))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.EntriesExtracted))
	assert.Equal(t, 1034.0, testutil.ToFloat64(m.BytesExtracted))
}

func TestTimerStop(t *testing.T) {
	m := NewMetrics()

	NewTimer(m, "named").Stop(errors.New("corrupt"), 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Extractions.WithLabelValues("named", ResultFailure)))
}

func TestGauges(t *testing.T) {
	m := NewMetrics()

	m.SetRegistrySize(4)
	m.IncTempAreas()
	m.IncTempAreas()
	m.DecTempAreas()

	assert.Equal(t, 4.0, testutil.ToFloat64(m.RegistrySize))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TempAreas))

	m.ResetTempAreas()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.TempAreas))
}

func TestRecordListing(t *testing.T) {
	m := NewMetrics()

	m.RecordListing("images", nil)
	m.RecordListing("siblings", errors.New("missing"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Listings.WithLabelValues("images", ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Listings.WithLabelValues("siblings", ResultFailure)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordExtraction("scoped", ResultSuccess, 0, 1, 1)
		m.RecordListing("images", nil)
		m.SetRegistrySize(1)
		m.IncTempAreas()
		m.DecTempAreas()
		NewTimer(m, "scoped").Stop(nil, 0, 0)
	})
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetrics()

	router := gin.New()
	router.Use(Middleware(m))
	router.GET("/images", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/images?path=/x", nil))
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/images", "200")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "liview_http_requests_total")
}
