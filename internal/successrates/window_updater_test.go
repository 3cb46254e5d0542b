package successrates_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"dynamic-routing/internal/aggregators"
	"dynamic-routing/internal/models"
	"dynamic-routing/internal/shared/clocks"
	"dynamic-routing/internal/shared/svcerrors"
	"dynamic-routing/internal/stores"
	storemocks "dynamic-routing/internal/stores/mocks"
	"dynamic-routing/internal/successrates"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	testNow    = time.Date(2025, 12, 21, 14, 21, 0, 0, time.UTC)
	testKey    = models.NewWindowKey("merchant_1", "card:USD", "stripe")
	testConfig = models.UpdateWindowConfig{
		MaxAggregatesSize:     10,
		CurrentBlockThreshold: models.CurrentBlockThreshold{MaxTotalCount: 20},
	}
	noBackoff = successrates.RetryPolicy{MaxAttempts: 3}
)

func newTestUpdater(store stores.WindowStore, clock clocks.Clock, policy successrates.RetryPolicy) successrates.WindowUpdater {
	return successrates.NewWindowUpdater(store, aggregators.NewBlockRotator(), aggregators.NewWindowAggregator(), clock, policy)
}

func requireServiceError(t *testing.T, err error, code string) *svcerrors.ServiceError {
	t.Helper()

	require.Error(t, err, "expected error")
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError, got %v", err)
	assert.Equal(t, code, svcErr.Code)
	return svcErr
}

func TestWindowUpdater_Apply_RetriesOnConflict(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storemocks.NewMockWindowStore(ctrl)
	updater := newTestUpdater(store, clocks.NewFakeClockAt(testNow), noBackoff)

	concurrent := &models.VersionedWindow{
		Version: 1,
		Window:  &models.Window{Blocks: []models.Block{{StartTime: testNow, FailureCount: 1}}},
	}
	gomock.InOrder(
		store.EXPECT().Get(gomock.Any(), testKey).Return(models.NewEmptyVersionedWindow(), nil),
		store.EXPECT().Put(gomock.Any(), testKey, uint64(0), gomock.Any()).Return(stores.ErrVersionConflict),
		store.EXPECT().Get(gomock.Any(), testKey).Return(concurrent, nil),
		store.EXPECT().Put(gomock.Any(), testKey, uint64(1), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ models.WindowKey, _ uint64, window *models.Window) error {
				// the outcome lands on top of the concurrent write, not the stale read
				require.Len(t, window.Blocks, 1)
				assert.Equal(t, uint64(1), window.Blocks[0].SuccessCount)
				assert.Equal(t, uint64(1), window.Blocks[0].FailureCount)
				return nil
			}),
	)

	attempts, err := updater.Apply(context.Background(), testKey, true, testConfig)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWindowUpdater_Apply_ErrContention(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storemocks.NewMockWindowStore(ctrl)
	updater := newTestUpdater(store, clocks.NewFakeClockAt(testNow), noBackoff)

	store.EXPECT().Get(gomock.Any(), testKey).Return(models.NewEmptyVersionedWindow(), nil).Times(3)
	store.EXPECT().Put(gomock.Any(), testKey, uint64(0), gomock.Any()).Return(stores.ErrVersionConflict).Times(3)

	attempts, err := updater.Apply(context.Background(), testKey, true, testConfig)

	svcErr := requireServiceError(t, err, "SR_4090")
	assert.Equal(t, "resource_conflict", svcErr.Category)
	assert.True(t, svcErr.IsRetryable())
	assert.ErrorIs(t, err, stores.ErrVersionConflict)
	assert.Equal(t, 3, attempts)
}

func TestWindowUpdater_Apply_StorageFailures(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")

	tests := []struct {
		name             string
		setup            func(store *storemocks.MockWindowStore)
		code             string
		target           error
		expectedAttempts int
	}{
		{
			name: "get keeps failing",
			setup: func(store *storemocks.MockWindowStore) {
				store.EXPECT().Get(gomock.Any(), testKey).Return(nil, storeErr).Times(3)
			},
			code:             "SR_5030",
			target:           storeErr,
			expectedAttempts: 3,
		},
		{
			name: "put keeps failing",
			setup: func(store *storemocks.MockWindowStore) {
				store.EXPECT().Get(gomock.Any(), testKey).Return(models.NewEmptyVersionedWindow(), nil).Times(3)
				store.EXPECT().Put(gomock.Any(), testKey, uint64(0), gomock.Any()).Return(storeErr).Times(3)
			},
			code:             "SR_5030",
			target:           storeErr,
			expectedAttempts: 3,
		},
		{
			name: "last failure decides the error",
			setup: func(store *storemocks.MockWindowStore) {
				store.EXPECT().Get(gomock.Any(), testKey).Return(models.NewEmptyVersionedWindow(), nil).Times(3)
				gomock.InOrder(
					store.EXPECT().Put(gomock.Any(), testKey, uint64(0), gomock.Any()).Return(stores.ErrVersionConflict),
					store.EXPECT().Put(gomock.Any(), testKey, uint64(0), gomock.Any()).Return(stores.ErrVersionConflict),
					store.EXPECT().Put(gomock.Any(), testKey, uint64(0), gomock.Any()).Return(storeErr),
				)
			},
			code:             "SR_5030",
			target:           storeErr,
			expectedAttempts: 3,
		},
		{
			name: "store observes cancellation",
			setup: func(store *storemocks.MockWindowStore) {
				store.EXPECT().Get(gomock.Any(), testKey).Return(nil, context.Canceled)
			},
			code:             "SR_5031",
			target:           context.Canceled,
			expectedAttempts: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := storemocks.NewMockWindowStore(ctrl)
			tt.setup(store)
			updater := newTestUpdater(store, clocks.NewFakeClockAt(testNow), noBackoff)

			attempts, err := updater.Apply(context.Background(), testKey, false, testConfig)

			svcErr := requireServiceError(t, err, tt.code)
			assert.Equal(t, "unavailable", svcErr.Category)
			assert.ErrorIs(t, err, tt.target)
			assert.Equal(t, tt.expectedAttempts, attempts)
		})
	}
}

func TestWindowUpdater_Apply_RecoversFromTransientStorageFailure(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storemocks.NewMockWindowStore(ctrl)
	updater := newTestUpdater(store, clocks.NewFakeClockAt(testNow), noBackoff)

	gomock.InOrder(
		store.EXPECT().Get(gomock.Any(), testKey).Return(nil, errors.New("i/o timeout")),
		store.EXPECT().Get(gomock.Any(), testKey).Return(models.NewEmptyVersionedWindow(), nil),
		store.EXPECT().Put(gomock.Any(), testKey, uint64(0), gomock.Any()).Return(nil),
	)

	attempts, err := updater.Apply(context.Background(), testKey, true, testConfig)

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestWindowUpdater_Apply_DeadlineShorterThanBackoff(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storemocks.NewMockWindowStore(ctrl)
	policy := successrates.RetryPolicy{MaxAttempts: 5, BaseBackoff: time.Minute, MaxBackoff: time.Minute}
	updater := newTestUpdater(store, clocks.NewRealClock(), policy)

	store.EXPECT().Get(gomock.Any(), testKey).Return(models.NewEmptyVersionedWindow(), nil)
	store.EXPECT().Put(gomock.Any(), testKey, uint64(0), gomock.Any()).Return(stores.ErrVersionConflict)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	start := time.Now()
	attempts, err := updater.Apply(ctx, testKey, true, testConfig)

	requireServiceError(t, err, "SR_5031")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, attempts)
	assert.Less(t, time.Since(start), time.Second, "must give up without sleeping past the deadline")
}

func TestWindowUpdater_Apply_RotatesByDuration(t *testing.T) {
	t.Parallel()

	clock := clocks.NewFakeClockAt(testNow)
	store := stores.NewMemoryWindowStore(1)
	updater := newTestUpdater(store, clock, noBackoff)

	two := uint64(2)
	config := models.UpdateWindowConfig{
		MaxAggregatesSize:     10,
		CurrentBlockThreshold: models.CurrentBlockThreshold{DurationInMins: &two, MaxTotalCount: 100},
	}
	ctx := context.Background()

	_, err := updater.Apply(ctx, testKey, true, config)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = updater.Apply(ctx, testKey, true, config)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	_, err = updater.Apply(ctx, testKey, false, config)
	require.NoError(t, err)

	got, err := store.Get(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.Version)
	assert.Equal(t, []models.Block{
		{StartTime: testNow, SuccessCount: 2},
		{StartTime: testNow.Add(2 * time.Minute), FailureCount: 1},
	}, got.Window.Blocks)
}

func TestWindowUpdater_Apply_EvictsOldestBlocks(t *testing.T) {
	t.Parallel()

	store := stores.NewMemoryWindowStore(1)
	updater := newTestUpdater(store, clocks.NewFakeClockAt(testNow), noBackoff)

	config := models.UpdateWindowConfig{
		MaxAggregatesSize:     2,
		CurrentBlockThreshold: models.CurrentBlockThreshold{MaxTotalCount: 1},
	}
	ctx := context.Background()

	for _, status := range []bool{false, true, true, true} {
		_, err := updater.Apply(ctx, testKey, status, config)
		require.NoError(t, err)
	}

	got, err := store.Get(ctx, testKey)
	require.NoError(t, err)
	require.Len(t, got.Window.Blocks, 2)
	totals := aggregators.NewWindowAggregator().Totals(got.Window)
	assert.Equal(t, models.Totals{Success: 2}, totals)
}
