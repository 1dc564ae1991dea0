package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ivdepaste/ivdepaste-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the paste
// lifecycle and the HTTP surface.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	pastesCreated   *prometheus.CounterVec
	pastesDeleted   prometheus.Counter
	detections      *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "paste_cache_latency_seconds",
		Help:    "Latency for paste cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheHits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "paste_cache_hits_total",
		Help: "Total paste cache hits",
	})

	cacheMisses := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "paste_cache_misses_total",
		Help: "Total paste cache misses",
	})

	pastesCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "pastes_created_total",
		Help: "Total pastes created, by ownership kind",
	}, []string{"ownership"})

	pastesDeleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "pastes_deleted_total",
		Help: "Total pastes deleted",
	})

	detections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "language_detections_total",
		Help: "Total language detections, by detected label",
	}, []string{"language"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheHits, cacheMisses, pastesCreated, pastesDeleted, detections, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheHits:       cacheHits,
		cacheMisses:     cacheMisses,
		pastesCreated:   pastesCreated,
		pastesDeleted:   pastesDeleted,
		detections:      detections,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheLookup records a paste cache hit or miss.
func (m *MetricsService) RecordCacheLookup(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}

// RecordPasteCreated counts a successful create by ownership kind.
func (m *MetricsService) RecordPasteCreated(anonymous bool) {
	if m == nil {
		return
	}
	ownership := "authenticated"
	if anonymous {
		ownership = "anonymous"
	}
	m.pastesCreated.WithLabelValues(ownership).Inc()
}

// RecordPastesDeleted counts deleted pastes.
func (m *MetricsService) RecordPastesDeleted(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.pastesDeleted.Add(float64(count))
}

// RecordDetection counts a language detection result.
func (m *MetricsService) RecordDetection(lang models.Language) {
	if m == nil {
		return
	}
	m.detections.WithLabelValues(string(lang)).Inc()
}
