package successrates

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"dynamic-routing/internal/aggregators"
	"dynamic-routing/internal/models"
	"dynamic-routing/internal/shared/clocks"
	"dynamic-routing/internal/shared/loggers"
	"dynamic-routing/internal/stores"
)

const (
	defaultMaxAttempts = 5
	defaultBaseBackoff = 5 * time.Millisecond
	defaultMaxBackoff  = 250 * time.Millisecond
)

// RetryPolicy bounds the optimistic read-modify-write loop of a single label.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// DefaultRetryPolicy is used for every zero field of a RetryPolicy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: defaultMaxAttempts,
		BaseBackoff: defaultBaseBackoff,
		MaxBackoff:  defaultMaxBackoff,
	}
}

// WindowUpdater records one outcome into the window of one label.
//
// Each attempt is: load -> rotate -> record -> evict -> conditional put. Lost version
// checks and store failures share one attempt budget. Cancellation is never retried.
// When the budget runs out the last failure decides the error: Contention (SR_4090)
// or StorageUnavailable (SR_5030).
//
// Example with MaxAttempts=3 and BaseBackoff=10ms:
//   - attempt 1 conflicts, sleep ~5-10ms
//   - attempt 2 conflicts, sleep ~10-20ms
//   - attempt 3 conflicts -> Contention (SR_4090)
//
//go:generate mockgen -source=window_updater.go -destination=./mocks/window_updater_mock.go -package=mocks
type WindowUpdater interface {
	// Apply returns the number of attempts made, also on failure.
	Apply(ctx context.Context, key models.WindowKey, status bool, config models.UpdateWindowConfig) (int, error)
}

type windowUpdater struct {
	store      stores.WindowStore
	rotator    aggregators.BlockRotator
	aggregator aggregators.WindowAggregator
	clock      clocks.Clock
	policy     RetryPolicy
}

func NewWindowUpdater(store stores.WindowStore, rotator aggregators.BlockRotator, aggregator aggregators.WindowAggregator, clock clocks.Clock, policy RetryPolicy) WindowUpdater {
	defaults := DefaultRetryPolicy()
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = defaults.MaxAttempts
	}
	if policy.BaseBackoff < 0 {
		policy.BaseBackoff = 0
	}
	if policy.MaxBackoff <= 0 {
		policy.MaxBackoff = defaults.MaxBackoff
	}

	return &windowUpdater{
		store:      store,
		rotator:    rotator,
		aggregator: aggregator,
		clock:      clock,
		policy:     policy,
	}
}

func (u *windowUpdater) Apply(ctx context.Context, key models.WindowKey, status bool, config models.UpdateWindowConfig) (int, error) {
	logger := loggers.Ctx(ctx)

	var lastErr error
	for attempt := 1; attempt <= u.policy.MaxAttempts; attempt++ {
		err := u.attempt(ctx, key, status, config)
		if err == nil {
			return attempt, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return attempt, errStorage(err)
		}

		lastErr = err
		if attempt == u.policy.MaxAttempts {
			break
		}
		if errors.Is(err, stores.ErrVersionConflict) {
			metricConflictRetryTotal.Inc()
			logger.Warn().
				Str(loggers.FieldLabel, key.Label).
				Int(loggers.FieldAttempt, attempt).
				Msg("window changed concurrently, retrying")
		} else {
			logger.Warn().
				Err(err).
				Str(loggers.FieldLabel, key.Label).
				Int(loggers.FieldAttempt, attempt).
				Msg("window store failed, retrying")
		}

		if err := u.backoff(ctx, attempt); err != nil {
			return attempt, errStorage(err)
		}
	}

	if errors.Is(lastErr, stores.ErrVersionConflict) {
		return u.policy.MaxAttempts, errContention(key.Label, u.policy.MaxAttempts, lastErr)
	}
	return u.policy.MaxAttempts, errStorage(lastErr)
}

// attempt runs one read-modify-write cycle against the store.
func (u *windowUpdater) attempt(ctx context.Context, key models.WindowKey, status bool, config models.UpdateWindowConfig) error {
	current, err := u.store.Get(ctx, key)
	if err != nil {
		return err
	}

	window := current.Window
	if window == nil {
		window = &models.Window{}
	}
	u.rotator.Record(window, config.CurrentBlockThreshold, status, u.clock.Now())
	u.aggregator.Evict(window, config.MaxAggregatesSize)

	return u.store.Put(ctx, key, current.Version, window)
}

// backoff sleeps before the next attempt. It gives up early when the context is done or
// its deadline would pass during the sleep.
func (u *windowUpdater) backoff(ctx context.Context, attempt int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	delay := u.backoffDelay(attempt)
	if delay <= 0 {
		return nil
	}
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < delay {
		return context.DeadlineExceeded
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-u.clock.After(delay):
		return nil
	}
}

// backoffDelay is exponential in attempt with jitter in [50%, 100%), capped at MaxBackoff.
func (u *windowUpdater) backoffDelay(attempt int) time.Duration {
	if u.policy.BaseBackoff <= 0 {
		return 0
	}

	delay := u.policy.MaxBackoff
	if shift := attempt - 1; shift < 16 {
		if d := u.policy.BaseBackoff << shift; d < delay {
			delay = d
		}
	}
	return time.Duration(float64(delay) * (0.5 + 0.5*rand.Float64()))
}
