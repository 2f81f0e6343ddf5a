package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP layer
// and the refresh cycle.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	refreshDuration prometheus.Observer
	refreshRuns     prometheus.Counter
	refreshSkipped  prometheus.Counter
	windowSize      prometheus.Gauge
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

	refreshDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "upcoming_refresh_duration_seconds",
		Help:    "Duration of upcoming-events refresh cycles",
		Buckets: prometheus.DefBuckets,
	})

	refreshRuns := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "upcoming_refresh_runs_total",
		Help: "Total refresh cycles executed",
	})

	refreshSkipped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "upcoming_refresh_skipped_records_total",
		Help: "Source records skipped due to malformed dates",
	})

	windowSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "upcoming_window_events",
		Help: "Events in the most recently computed look-ahead window",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, refreshDuration, refreshRuns, refreshSkipped, windowSize, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		refreshDuration: refreshDuration,
		refreshRuns:     refreshRuns,
		refreshSkipped:  refreshSkipped,
		windowSize:      windowSize,
	}
}

// Handler returns the Prometheus scrape handler.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one served request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, fmt.Sprintf("%d", status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// ObserveRefresh records one completed refresh cycle.
func (s *MetricsService) ObserveRefresh(computed, skipped int, duration time.Duration) {
	s.refreshRuns.Inc()
	s.refreshDuration.Observe(duration.Seconds())
	s.refreshSkipped.Add(float64(skipped))
	s.windowSize.Set(float64(computed))
}
