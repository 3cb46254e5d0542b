package models

import (
	"math"
	"time"
)

// CurrentBlockThreshold decides when the current block closes. A nil DurationInMins means
// the block is never closed by age; zero minutes is a valid, present duration.
type CurrentBlockThreshold struct {
	DurationInMins *uint64 `json:"duration_in_mins,omitempty"`
	MaxTotalCount  uint64  `json:"max_total_count"`
}

// maxDurationInMins is the largest minute count representable as a time.Duration.
const maxDurationInMins = uint64(math.MaxInt64 / int64(time.Minute))

// Duration returns the configured block age limit and whether one is set. Limits beyond
// the time.Duration range saturate at math.MaxInt64 (about 292 years).
func (t CurrentBlockThreshold) Duration() (time.Duration, bool) {
	if t.DurationInMins == nil {
		return 0, false
	}
	if *t.DurationInMins > maxDurationInMins {
		return time.Duration(math.MaxInt64), true
	}
	return time.Duration(*t.DurationInMins) * time.Minute, true
}

// UpdateWindowConfig is the per-request policy for UpdateSuccessRateWindow.
type UpdateWindowConfig struct {
	MaxAggregatesSize     uint32                `json:"max_aggregates_size" validate:"min=1"`
	CurrentBlockThreshold CurrentBlockThreshold `json:"current_block_threshold"`
}

// FetchConfig is the per-request policy for FetchSuccessRate.
type FetchConfig struct {
	MinAggregatesSize  uint32  `json:"min_aggregates_size"`
	DefaultSuccessRate float64 `json:"default_success_rate"`
}

// Totals are the summed counts of a window.
type Totals struct {
	Success uint64
	Failure uint64
}

func (t Totals) Total() uint64 {
	return t.Success + t.Failure
}
