package aggregators

import (
	"time"

	"dynamic-routing/internal/models"
)

// RotationTrigger names what made the current block close.
type RotationTrigger string

const (
	TriggerNone     RotationTrigger = ""
	TriggerOpen     RotationTrigger = "open"     // window had no block yet
	TriggerCount    RotationTrigger = "count"    // max_total_count reached
	TriggerDuration RotationTrigger = "duration" // block older than duration_in_mins
)

// BlockRotator decides when the current block of a window closes and records outcomes.
//
// Example with max_total_count=3 and no duration:
//   - outcomes 1..3 land in block A (A reaches 3)
//   - outcome 4 finds A full, A is frozen, block B opens at "now" and receives outcome 4
//
// An outcome that triggers a rotation always lands in the new block.
type BlockRotator interface {
	// ShouldRotate reports whether current must close before another outcome is recorded.
	ShouldRotate(current *models.Block, threshold models.CurrentBlockThreshold, now time.Time) RotationTrigger
	// Record rotates window if needed and adds one outcome to its current block.
	Record(window *models.Window, threshold models.CurrentBlockThreshold, status bool, now time.Time) RotationTrigger
}

type blockRotator struct{}

func NewBlockRotator() BlockRotator {
	return &blockRotator{}
}

func (r *blockRotator) ShouldRotate(current *models.Block, threshold models.CurrentBlockThreshold, now time.Time) RotationTrigger {
	if current == nil {
		return TriggerOpen
	}
	if d, ok := threshold.Duration(); ok && now.Sub(current.StartTime) >= d {
		return TriggerDuration
	}
	if current.Total() >= threshold.MaxTotalCount {
		return TriggerCount
	}
	return TriggerNone
}

func (r *blockRotator) Record(window *models.Window, threshold models.CurrentBlockThreshold, status bool, now time.Time) RotationTrigger {
	current := window.Current()
	trigger := r.ShouldRotate(current, threshold, now)
	if trigger != TriggerNone {
		current = window.Open(now)
		metricBlockRotatedTotal.WithLabelValues(string(trigger)).Inc()
	}

	if status {
		current.SuccessCount++
	} else {
		current.FailureCount++
	}
	return trigger
}
