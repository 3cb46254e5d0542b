package successrates

import (
	"context"
	"fmt"
	"strconv"

	"dynamic-routing/internal/aggregators"
	"dynamic-routing/internal/models"
	"dynamic-routing/internal/shared/loggers"
	"dynamic-routing/internal/shared/metrics"
	"dynamic-routing/internal/shared/svcerrors"
	"dynamic-routing/internal/shared/validators"
	"dynamic-routing/internal/stores"

	"golang.org/x/sync/errgroup"
)

const (
	defaultMaxParallelLabels = 16

	messageWindowUpdated = "success rate window updated"
)

//go:generate mockgen -source=success_rate_service.go -destination=./mocks/success_rate_service_mock.go -package=mocks
type SuccessRateService interface {
	// FetchSuccessRate scores every requested label, in request order.
	FetchSuccessRate(ctx context.Context, req *models.FetchSuccessRateRequest) (*models.FetchSuccessRateResponse, error)
	// UpdateSuccessRateWindow records one outcome per (label, status) entry.
	//
	// Entries are independent: a label that fails never blocks or undoes its siblings.
	// When any entry fails the response is still returned together with a ServiceError
	// whose category follows the first failed entry and whose details name every one.
	UpdateSuccessRateWindow(ctx context.Context, req *models.UpdateSuccessRateWindowRequest) (*models.UpdateSuccessRateWindowResponse, error)
}

type successRateService struct {
	store             stores.WindowStore
	updater           WindowUpdater
	aggregator        aggregators.WindowAggregator
	calculator        aggregators.ScoreCalculator
	validate          *validators.Validate
	maxParallelLabels int
}

func NewSuccessRateService(store stores.WindowStore, updater WindowUpdater, aggregator aggregators.WindowAggregator, calculator aggregators.ScoreCalculator, maxParallelLabels int) SuccessRateService {
	if maxParallelLabels <= 0 {
		maxParallelLabels = defaultMaxParallelLabels
	}
	return &successRateService{
		store:             store,
		updater:           updater,
		aggregator:        aggregator,
		calculator:        calculator,
		validate:          validators.NewWithTagNames("json"),
		maxParallelLabels: maxParallelLabels,
	}
}

func (s *successRateService) FetchSuccessRate(ctx context.Context, req *models.FetchSuccessRateRequest) (*models.FetchSuccessRateResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	logger := loggers.Ctx(ctx)
	logger.Debug().
		Str(loggers.FieldRoutingID, req.ID).
		Int(loggers.FieldLabelCount, len(req.Labels)).
		Msg("started fetching success rates")

	// duplicates share one read so they score from the same snapshot
	distinct := make([]string, 0, len(req.Labels))
	index := make(map[string]int, len(req.Labels))
	for _, label := range req.Labels {
		if _, ok := index[label]; !ok {
			index[label] = len(distinct)
			distinct = append(distinct, label)
		}
	}

	totals := make([]models.Totals, len(distinct))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxParallelLabels)
	for i, label := range distinct {
		i, label := i, label
		g.Go(func() error {
			versioned, err := s.store.Get(gctx, models.NewWindowKey(req.ID, req.Params, label))
			if err != nil {
				return fmt.Errorf("label %q: %w", label, err)
			}
			totals[i] = s.aggregator.Totals(versioned.Window)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		svcErr := errStorage(err)
		logger.Error().Err(err).Str(loggers.FieldErrorCode, svcErr.Code).Msg("failed to read windows")
		return nil, svcErr
	}

	scores := make([]models.LabelWithScore, len(req.Labels))
	for i, label := range req.Labels {
		score, fallback := s.calculator.Score(totals[index[label]], req.Config)
		metricScoreServedTotal.WithLabelValues(strconv.FormatBool(fallback)).Inc()
		scores[i] = models.LabelWithScore{Label: label, Score: score}
	}

	return &models.FetchSuccessRateResponse{LabelsWithScore: scores}, nil
}

func (s *successRateService) UpdateSuccessRateWindow(ctx context.Context, req *models.UpdateSuccessRateWindowRequest) (*models.UpdateSuccessRateWindowResponse, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	logger := loggers.Ctx(ctx)
	logger.Debug().
		Str(loggers.FieldRoutingID, req.ID).
		Int(loggers.FieldLabelCount, len(req.LabelsWithStatus)).
		Msg("started updating success rate windows")

	// plain group: a failing label must not cancel its siblings
	errs := make([]error, len(req.LabelsWithStatus))
	var g errgroup.Group
	g.SetLimit(s.maxParallelLabels)
	for i, entry := range req.LabelsWithStatus {
		i, entry := i, entry
		g.Go(func() error {
			key := models.NewWindowKey(req.ID, req.Params, entry.Label)
			attempts, err := s.updater.Apply(ctx, key, entry.Status, req.Config)

			code := metrics.ValueNoError
			if err != nil {
				code = asServiceError(err).Code
			}
			metricLabelUpdatedTotal.WithLabelValues(code).Inc()
			metricUpdateAttempts.WithLabelValues(code).Observe(float64(attempts))

			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	resp := &models.UpdateSuccessRateWindowResponse{
		Message: messageWindowUpdated,
		Results: make([]models.LabelUpdateResult, len(req.LabelsWithStatus)),
	}

	var first *svcerrors.ServiceError
	var details []svcerrors.Detail
	for i, entry := range req.LabelsWithStatus {
		i, entry := i, entry
		resp.Results[i] = models.LabelUpdateResult{Label: entry.Label, Updated: errs[i] == nil}
		if errs[i] == nil {
			continue
		}

		svcErr := asServiceError(errs[i])
		resp.Results[i].ErrorCode = svcErr.Code
		details = append(details, svcerrors.Detail{Target: entry.Label, Code: svcErr.Code, Message: svcErr.Message})
		if first == nil {
			first = svcErr
		}
		logger.Warn().Err(errs[i]).
			Str(loggers.FieldLabel, entry.Label).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("failed to update success rate window")
	}

	if first != nil {
		resp.Message = fmt.Sprintf("%d of %d labels updated", len(req.LabelsWithStatus)-len(details), len(req.LabelsWithStatus))
		return resp, first.WithDetails(details)
	}
	return resp, nil
}

// validateRequest rejects malformed requests before any storage access.
func (s *successRateService) validateRequest(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return errValidationFailed(validators.Describe(err), err)
	}
	return nil
}
