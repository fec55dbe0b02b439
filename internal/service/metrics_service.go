package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/achievement-console/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamTotal    *prometheus.CounterVec
	reportsTotal     *prometheus.CounterVec
	bulkDeleteFiles  *prometheus.CounterVec
	activeWorkspaces prometheus.Gauge

	requestCount          uint64
	requestDurationTotal  uint64
	upstreamCount         uint64
	upstreamFailureCount  uint64
	upstreamDurationTotal uint64
	reportsGenerated      uint64
	reportsFailed         uint64
	workspaces            int64
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

	upstreamDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of calls to the backend collaborator",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	upstreamTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Total calls to the backend collaborator by status (0 for transport failures)",
	}, []string{"method", "route", "status"})

	reportsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_generations_total",
		Help: "Report generation outcomes",
	}, []string{"type", "outcome"})

	bulkDeleteFiles := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_bulk_delete_files_total",
		Help: "Files processed by bulk deletion of old reports",
	}, []string{"outcome"})

	activeWorkspaces := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "reports_workspaces_active",
		Help: "Reports workspaces currently held in memory",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, upstreamDuration, upstreamTotal, reportsTotal, bulkDeleteFiles, activeWorkspaces, goroutines)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		upstreamDuration: upstreamDuration,
		upstreamTotal:    upstreamTotal,
		reportsTotal:     reportsTotal,
		bulkDeleteFiles:  bulkDeleteFiles,
		activeWorkspaces: activeWorkspaces,
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

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	atomic.AddUint64(&m.requestCount, 1)
	atomic.AddUint64(&m.requestDurationTotal, uint64(duration.Nanoseconds()))
}

// ObserveUpstream records one backend call. It satisfies httpclient.Observer.
func (m *MetricsService) ObserveUpstream(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(method, route).Observe(duration.Seconds())
	m.upstreamTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	atomic.AddUint64(&m.upstreamCount, 1)
	atomic.AddUint64(&m.upstreamDurationTotal, uint64(duration.Nanoseconds()))
	if status == 0 || status >= 500 {
		atomic.AddUint64(&m.upstreamFailureCount, 1)
	}
}

// RecordReportGeneration counts a generation outcome.
func (m *MetricsService) RecordReportGeneration(reportType models.ReportType, success bool) {
	if m == nil {
		return
	}
	outcome := "failed"
	if success {
		outcome = "succeeded"
		atomic.AddUint64(&m.reportsGenerated, 1)
	} else {
		atomic.AddUint64(&m.reportsFailed, 1)
	}
	m.reportsTotal.WithLabelValues(string(reportType), outcome).Inc()
}

// RecordBulkDelete counts the settled outcomes of a bulk deletion.
func (m *MetricsService) RecordBulkDelete(deleted, failed int) {
	if m == nil {
		return
	}
	m.bulkDeleteFiles.WithLabelValues("deleted").Add(float64(deleted))
	m.bulkDeleteFiles.WithLabelValues("failed").Add(float64(failed))
}

// SetActiveWorkspaces publishes the number of live reports workspaces.
func (m *MetricsService) SetActiveWorkspaces(n int) {
	if m == nil {
		return
	}
	atomic.StoreInt64(&m.workspaces, int64(n))
	m.activeWorkspaces.Set(float64(n))
}

// Snapshot returns aggregated metrics for the admin summary endpoint.
func (m *MetricsService) Snapshot() models.GatewayMetrics {
	if m == nil {
		return models.GatewayMetrics{}
	}
	requests := atomic.LoadUint64(&m.requestCount)
	reqDuration := atomic.LoadUint64(&m.requestDurationTotal)
	upstream := atomic.LoadUint64(&m.upstreamCount)
	upDuration := atomic.LoadUint64(&m.upstreamDurationTotal)

	var avgRequestMs float64
	if requests > 0 {
		avgRequestMs = float64(reqDuration) / float64(requests) / float64(time.Millisecond)
	}
	var avgUpstreamMs float64
	if upstream > 0 {
		avgUpstreamMs = float64(upDuration) / float64(upstream) / float64(time.Millisecond)
	}

	return models.GatewayMetrics{
		RequestsTotal:             requests,
		AverageRequestDurationMs:  avgRequestMs,
		UpstreamCalls:             upstream,
		UpstreamFailures:          atomic.LoadUint64(&m.upstreamFailureCount),
		AverageUpstreamDurationMs: avgUpstreamMs,
		ReportsGenerated:          atomic.LoadUint64(&m.reportsGenerated),
		ReportsFailed:             atomic.LoadUint64(&m.reportsFailed),
		ActiveWorkspaces:          atomic.LoadInt64(&m.workspaces),
		Goroutines:                runtime.NumGoroutine(),
		GeneratedAt:               time.Now().UTC(),
	}
}
