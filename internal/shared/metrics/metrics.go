// Package metrics keeps every collector of the service under one namespace and registers
// them with the default prometheus registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	FieldErrorCode = "error_code"

	// ValueNoError labels successful observations.
	ValueNoError = ""
)

const (
	Namespace      = "success_rate"
	SubAggregation = "aggregation"
	SubUpdate      = "update"
	SubFetch       = "fetch"
	SubStore       = "store"
	SubHTTP        = "http"
)

type (
	CounterOpts   = prometheus.CounterOpts
	HistogramOpts = prometheus.HistogramOpts
)

var (
	// LatencyBuckets covers in-memory calls (sub-millisecond) up to slow remote stores.
	LatencyBuckets = []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

	// AttemptBuckets counts compare-and-swap attempts per label update.
	AttemptBuckets = []float64{1, 2, 3, 5, 8, 13}
)

var (
	NewCounter      = promauto.NewCounter
	NewCounterVec   = promauto.NewCounterVec
	NewHistogramVec = promauto.NewHistogramVec
)

// Handler serves the default registry in the prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
