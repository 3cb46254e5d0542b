package stores

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dynamic-routing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runWindowStoreSuite checks the WindowStore contract against one backend.
func runWindowStoreSuite(t *testing.T, newStore func(t *testing.T) WindowStore) {
	t.Run("absent window reads as empty version 0", func(t *testing.T) {
		store := newStore(t)
		got, err := store.Get(context.Background(), models.NewWindowKey("m1", "USD", "stripe"))
		require.NoError(t, err)
		assert.Equal(t, uint64(0), got.Version)
		require.NotNil(t, got.Window)
		assert.Empty(t, got.Window.Blocks)
	})

	t.Run("put then get round trips blocks and bumps version", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		key := models.NewWindowKey("m1", "USD", "stripe")
		window := sampleWindow()

		require.NoError(t, store.Put(ctx, key, 0, window))
		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), got.Version)
		assertBlocksEqual(t, window.Blocks, got.Window.Blocks)

		window.Current().SuccessCount++
		require.NoError(t, store.Put(ctx, key, 1, window))
		got, err = store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), got.Version)
		assertBlocksEqual(t, window.Blocks, got.Window.Blocks)
	})

	t.Run("stale version conflicts and leaves window untouched", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		key := models.NewWindowKey("m1", "USD", "stripe")
		original := sampleWindow()
		require.NoError(t, store.Put(ctx, key, 0, original))

		changed := sampleWindow()
		changed.Current().FailureCount = 99

		assert.ErrorIs(t, store.Put(ctx, key, 0, changed), ErrVersionConflict, "create over existing window")
		assert.ErrorIs(t, store.Put(ctx, key, 5, changed), ErrVersionConflict, "version ahead of store")

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), got.Version)
		assertBlocksEqual(t, original.Blocks, got.Window.Blocks)
	})

	t.Run("update of absent window with non-zero version conflicts", func(t *testing.T) {
		store := newStore(t)
		err := store.Put(context.Background(), models.NewWindowKey("m1", "USD", "ghost"), 3, sampleWindow())
		assert.ErrorIs(t, err, ErrVersionConflict)
	})

	t.Run("keys differing only in params are independent", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		usd := models.NewWindowKey("m1", "USD", "stripe")
		eur := models.NewWindowKey("m1", "EUR", "stripe")

		require.NoError(t, store.Put(ctx, usd, 0, sampleWindow()))

		got, err := store.Get(ctx, eur)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), got.Version)
		assert.Empty(t, got.Window.Blocks)
	})

	t.Run("caller mutations after put are not visible", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		key := models.NewWindowKey("m1", "USD", "stripe")
		window := sampleWindow()
		require.NoError(t, store.Put(ctx, key, 0, window))

		window.Current().SuccessCount = 1000
		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.NotEqual(t, uint64(1000), got.Window.Current().SuccessCount)

		got.Window.Current().FailureCount = 1000
		again, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.NotEqual(t, uint64(1000), again.Window.Current().FailureCount)
	})

	t.Run("cancelled context fails without writing", func(t *testing.T) {
		store := newStore(t)
		key := models.NewWindowKey("m1", "USD", "stripe")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		assert.Error(t, store.Put(ctx, key, 0, sampleWindow()))
		_, err := store.Get(ctx, key)
		assert.Error(t, err)

		got, err := store.Get(context.Background(), key)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), got.Version)
	})

	t.Run("concurrent compare-and-swap counts every increment once", func(t *testing.T) {
		store := newStore(t)
		ctx := context.Background()
		key := models.NewWindowKey("m1", "USD", "stripe")
		start := time.Date(2025, 12, 28, 18, 0, 0, 0, time.UTC)

		const workers = 16
		var wg sync.WaitGroup
		errs := make(chan error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for {
					current, err := store.Get(ctx, key)
					if err != nil {
						errs <- err
						return
					}
					window := current.Window
					if window.Current() == nil {
						window.Open(start)
					}
					window.Current().SuccessCount++
					err = store.Put(ctx, key, current.Version, window)
					if errors.Is(err, ErrVersionConflict) {
						continue
					}
					if err != nil {
						errs <- err
					}
					return
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, uint64(workers), got.Version)
		require.Len(t, got.Window.Blocks, 1)
		assert.Equal(t, uint64(workers), got.Window.Current().SuccessCount)
	})
}

func sampleWindow() *models.Window {
	start := time.Date(2025, 12, 28, 18, 3, 0, 0, time.UTC)
	return &models.Window{Blocks: []models.Block{
		{StartTime: start, SuccessCount: 18, FailureCount: 2},
		{StartTime: start.Add(5 * time.Minute), SuccessCount: 3, FailureCount: 1},
	}}
}

func assertBlocksEqual(t *testing.T, expected, actual []models.Block) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.True(t, expected[i].StartTime.Equal(actual[i].StartTime), "block %d start time", i)
		assert.Equal(t, expected[i].SuccessCount, actual[i].SuccessCount, "block %d success", i)
		assert.Equal(t, expected[i].FailureCount, actual[i].FailureCount, "block %d failure", i)
	}
}
