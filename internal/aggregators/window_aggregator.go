package aggregators

import (
	"dynamic-routing/internal/models"
)

// WindowAggregator totals the blocks of a window and keeps its history bounded.
type WindowAggregator interface {
	// Totals sums success and failure counts across every block, current included.
	// A nil window totals to zero.
	Totals(window *models.Window) models.Totals
	// Evict drops the oldest blocks until at most maxAggregatesSize remain and
	// returns how many were dropped. Whole blocks only.
	Evict(window *models.Window, maxAggregatesSize uint32) int
}

type windowAggregator struct{}

func NewWindowAggregator() WindowAggregator {
	return &windowAggregator{}
}

func (a *windowAggregator) Totals(window *models.Window) models.Totals {
	var totals models.Totals
	if window == nil {
		return totals
	}
	for _, block := range window.Blocks {
		totals.Success += block.SuccessCount
		totals.Failure += block.FailureCount
	}
	return totals
}

func (a *windowAggregator) Evict(window *models.Window, maxAggregatesSize uint32) int {
	// a cap of 0 would evict the block that just received an outcome
	limit := int(maxAggregatesSize)
	if limit < 1 {
		limit = 1
	}
	excess := len(window.Blocks) - limit
	if excess <= 0 {
		return 0
	}
	evicted := window.DropOldest(excess)
	metricBlockEvictedTotal.Add(float64(evicted))
	return evicted
}
