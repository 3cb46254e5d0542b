package aggregators

import (
	"dynamic-routing/internal/shared/metrics"
)

// metricBlockRotatedTotal counts blocks opened by the rotator, labelled by trigger:
//   - "open": first block of an empty window
//   - "count": the current block reached max_total_count
//   - "duration": the current block outlived duration_in_mins
var (
	metricBlockRotatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "block_rotated_total",
		},
		[]string{"trigger"},
	)

	// metricBlockEvictedTotal counts history blocks dropped to respect max_aggregates_size.
	metricBlockEvictedTotal = metrics.NewCounter(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "block_evicted_total",
		},
	)
)
