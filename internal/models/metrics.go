package models

import "time"

// GatewayMetrics is a lightweight snapshot of gateway instrumentation.
type GatewayMetrics struct {
	RequestsTotal             uint64    `json:"requests_total"`
	AverageRequestDurationMs  float64   `json:"average_request_duration_ms"`
	UpstreamCalls             uint64    `json:"upstream_calls"`
	UpstreamFailures          uint64    `json:"upstream_failures"`
	AverageUpstreamDurationMs float64   `json:"average_upstream_duration_ms"`
	ReportsGenerated          uint64    `json:"reports_generated"`
	ReportsFailed             uint64    `json:"reports_failed"`
	ActiveWorkspaces          int64     `json:"active_workspaces"`
	Goroutines                int       `json:"goroutines"`
	GeneratedAt               time.Time `json:"generated_at"`
}
