package stores

import (
	"context"
	"errors"
	"time"

	"dynamic-routing/internal/models"
)

const (
	resultOK       = "ok"
	resultConflict = "conflict"
	resultError    = "error"
)

type instrumentedWindowStore struct {
	next    WindowStore
	backend string
}

// NewInstrumentedWindowStore wraps next with per-operation prometheus metrics.
func NewInstrumentedWindowStore(next WindowStore, backend string) WindowStore {
	return &instrumentedWindowStore{next: next, backend: backend}
}

func (s *instrumentedWindowStore) Get(ctx context.Context, key models.WindowKey) (*models.VersionedWindow, error) {
	start := time.Now()
	window, err := s.next.Get(ctx, key)
	s.observe("get", start, err)
	return window, err
}

func (s *instrumentedWindowStore) Put(ctx context.Context, key models.WindowKey, expectedVersion uint64, window *models.Window) error {
	start := time.Now()
	err := s.next.Put(ctx, key, expectedVersion, window)
	s.observe("put", start, err)
	return err
}

func (s *instrumentedWindowStore) observe(operation string, start time.Time, err error) {
	result := resultOK
	switch {
	case errors.Is(err, ErrVersionConflict):
		result = resultConflict
	case err != nil:
		result = resultError
	}
	metricStoreOperationTotal.WithLabelValues(s.backend, operation, result).Inc()
	metricStoreOperationDuration.WithLabelValues(s.backend, operation).Observe(time.Since(start).Seconds())
}
