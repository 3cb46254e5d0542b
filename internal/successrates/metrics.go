package successrates

import (
	"dynamic-routing/internal/shared/metrics"
)

const labelFallback = "fallback"

var (
	metricLabelUpdatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubUpdate,
			Name:      "label_updated_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricConflictRetryTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubUpdate,
			Name:      "conflict_retry_total",
			Help:      "Window writes retried after losing an optimistic version check",
		},
	)

	metricUpdateAttempts = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubUpdate,
			Name:      "attempts",
			Buckets:   metrics.AttemptBuckets,
		},
		[]string{metrics.FieldErrorCode},
	)

	metricScoreServedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubFetch,
			Name:      "score_served_total",
		},
		[]string{labelFallback},
	)
)
