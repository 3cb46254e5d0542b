package stores

import (
	"context"
	"errors"

	"dynamic-routing/internal/models"
)

var (
	// ErrVersionConflict is returned by Put when the stored version no longer matches
	// the version the caller read.
	ErrVersionConflict = errors.New("window version conflict")
)

// WindowStore is a keyed store of label windows with conditional writes.
//
// Get never fails for a missing window: it returns an empty window with version 0, so an
// absent window and an empty one look the same to callers.
//
// Put stores window as version expectedVersion+1 only if the stored version is still
// expectedVersion (0 meaning "absent"); otherwise it returns ErrVersionConflict and leaves
// the stored window untouched. A Put is all-or-nothing: readers observe either the old
// window or the new one.
//
// Example optimistic update:
//   - A and B both Get "stripe" at version 7
//   - A puts with expectedVersion=7 -> stored as version 8
//   - B puts with expectedVersion=7 -> ErrVersionConflict, B reloads version 8 and retries
//
//go:generate mockgen -source=window_store.go -destination=./mocks/window_store_mock.go -package=mocks
type WindowStore interface {
	Get(ctx context.Context, key models.WindowKey) (*models.VersionedWindow, error)
	Put(ctx context.Context, key models.WindowKey, expectedVersion uint64, window *models.Window) error
}

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)
