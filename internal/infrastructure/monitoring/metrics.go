package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Extraction results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Archive metrics
	Extractions        *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec
	EntriesExtracted   prometheus.Counter
	BytesExtracted     prometheus.Counter

	// Session metrics
	RegistrySize prometheus.Gauge
	TempAreas    prometheus.Gauge

	// Discovery metrics
	Listings *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates a collector registered on its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewMetricsWith(reg, reg)
}

// NewMetricsWith registers collectors on reg and serves them from gatherer.
func NewMetricsWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liview_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "liview_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		Extractions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liview_extractions_total",
				Help: "Total number of archive extractions",
			},
			[]string{"policy", "result"},
		),
		ExtractionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "liview_extraction_duration_seconds",
				Help:    "Archive extraction duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"policy"},
		),
		EntriesExtracted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "liview_entries_extracted_total",
				Help: "Total number of archive entries written",
			},
		),
		BytesExtracted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "liview_bytes_extracted_total",
				Help: "Total number of bytes written by extraction",
			},
		),

		RegistrySize: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "liview_registry_directories",
				Help: "Number of extracted directories registered in the session",
			},
		),
		TempAreas: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "liview_temp_directories",
				Help: "Number of live temp directories allocated by the session",
			},
		),

		Listings: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "liview_listings_total",
				Help: "Total number of discovery operations",
			},
			[]string{"operation", "result"},
		),

		gatherer: gatherer,
	}
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordExtraction records one extraction attempt
func (m *Metrics) RecordExtraction(policy, result string, duration time.Duration, entries int, bytes int64) {
	if m == nil {
		return
	}
	m.Extractions.WithLabelValues(policy, result).Inc()
	m.ExtractionDuration.WithLabelValues(policy).Observe(duration.Seconds())
	m.EntriesExtracted.Add(float64(entries))
	m.BytesExtracted.Add(float64(bytes))
}

// RecordListing records a discovery operation
func (m *Metrics) RecordListing(operation string, err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	m.Listings.WithLabelValues(operation, result).Inc()
}

// SetRegistrySize sets the number of registered extracted directories
func (m *Metrics) SetRegistrySize(n int) {
	if m == nil {
		return
	}
	m.RegistrySize.Set(float64(n))
}

// IncTempAreas increments live temp directories
func (m *Metrics) IncTempAreas() {
	if m == nil {
		return
	}
	m.TempAreas.Inc()
}

// DecTempAreas decrements live temp directories
func (m *Metrics) DecTempAreas() {
	if m == nil {
		return
	}
	m.TempAreas.Dec()
}

// ResetTempAreas zeroes the live temp directory gauge
func (m *Metrics) ResetTempAreas() {
	if m == nil {
		return
	}
	m.TempAreas.Set(0)
}

// Handler serves the registry in Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
