package http

import (
	"dynamic-routing/internal/shared/metrics"
)

var requestLabels = []string{"method", "route", "status", metrics.FieldErrorCode}

var (
	metricHTTPRequestsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "requests_total",
		},
		requestLabels,
	)

	metricHTTPRequestDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubHTTP,
			Name:      "request_duration_seconds",
			Buckets:   metrics.LatencyBuckets,
		},
		requestLabels,
	)
)
