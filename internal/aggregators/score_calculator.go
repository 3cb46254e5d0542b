package aggregators

import (
	"dynamic-routing/internal/models"
)

// ScoreCalculator turns window totals into a success likelihood.
//
// Example with min_aggregates_size=5, default_success_rate=0.5:
//   - 2 successes + 1 failure (total 3 < 5) -> 0.5 (fallback)
//   - 4 successes + 1 failure (total 5)     -> 0.8
type ScoreCalculator interface {
	// Score returns the score and whether the fallback rate was used.
	Score(totals models.Totals, config models.FetchConfig) (float64, bool)
}

type scoreCalculator struct{}

func NewScoreCalculator() ScoreCalculator {
	return &scoreCalculator{}
}

func (c *scoreCalculator) Score(totals models.Totals, config models.FetchConfig) (float64, bool) {
	total := totals.Total()
	// total==0 also covers min_aggregates_size=0 on an empty window
	if total == 0 || total < uint64(config.MinAggregatesSize) {
		return config.DefaultSuccessRate, true
	}
	return float64(totals.Success) / float64(total), false
}
