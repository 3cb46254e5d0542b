package stores

import (
	"dynamic-routing/internal/shared/metrics"
)

var (
	metricStoreOperationTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "operation_total",
		},
		[]string{"backend", "operation", "result"},
	)

	metricStoreOperationDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStore,
			Name:      "operation_latency",
			Buckets:   metrics.LatencyBuckets,
		},
		[]string{"backend", "operation"},
	)
)
