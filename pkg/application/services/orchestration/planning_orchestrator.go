package orchestration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/botplan/pkg/application/dto"
	"github.com/vsinha/botplan/pkg/application/services/search"
	"github.com/vsinha/botplan/pkg/domain/entities"
	"github.com/vsinha/botplan/pkg/domain/repositories"
	"github.com/vsinha/botplan/pkg/infrastructure/events"
)

// MetricsRecorder receives every finished search
type MetricsRecorder interface {
	RecordSearch(result dto.SearchResult)
}

// Settings holds the parameters of one planning run
type Settings struct {
	Horizon   int
	MaxStates int
	// Timeout bounds each blueprint search (0 = none)
	Timeout time.Duration
	// Workers is the number of blueprints searched concurrently
	Workers  int
	SpendCap bool
	// First limits the yield product to the first N blueprints (0 = all)
	First int
}

// PlanningOrchestrator searches every stored blueprint and aggregates the yields
type PlanningOrchestrator struct {
	blueprintRepo repositories.BlueprintRepository
	eventStore    events.EventStore
	metrics       MetricsRecorder
	logger        *slog.Logger
}

// NewPlanningOrchestrator creates a new planning orchestrator.
// eventStore and metrics may be nil.
func NewPlanningOrchestrator(
	blueprintRepo repositories.BlueprintRepository,
	eventStore events.EventStore,
	metrics MetricsRecorder,
	logger *slog.Logger,
) *PlanningOrchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanningOrchestrator{
		blueprintRepo: blueprintRepo,
		eventStore:    eventStore,
		metrics:       metrics,
		logger:        logger,
	}
}

// Run searches all blueprints and returns per-blueprint results in load order.
// A search cut short by its own timeout or state cap is reported as truncated;
// cancellation of ctx aborts the whole run.
func (po *PlanningOrchestrator) Run(ctx context.Context, settings Settings) (*dto.BatchResult, error) {
	blueprints, err := po.blueprintRepo.GetAllBlueprints()
	if err != nil {
		return nil, fmt.Errorf("failed to list blueprints: %w", err)
	}
	if len(blueprints) == 0 {
		return nil, fmt.Errorf("no blueprints to search")
	}

	workers := settings.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	runID := uuid.NewString()
	po.emit(runID, events.RunStartedEvent, events.RunStarted{
		Blueprints: len(blueprints),
		Horizon:    settings.Horizon,
		Workers:    workers,
	})
	po.logger.Info("planning run started",
		"run_id", runID,
		"blueprints", len(blueprints),
		"horizon", settings.Horizon,
		"workers", workers)

	results := make([]dto.SearchResult, len(blueprints))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, bp := range blueprints {
		i, bp := i, bp
		g.Go(func() error {
			result, err := po.searchBlueprint(gctx, runID, bp, settings)
			if result != nil {
				results[i] = *result
			}
			if err != nil && !(errors.Is(err, search.ErrSearchTruncated) && ctx.Err() == nil) {
				return fmt.Errorf("blueprint %d: %w", bp.ID(), err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := Aggregate(results, settings.First)
	batch.RunID = runID
	batch.Duration = time.Since(start)

	po.emit(runID, events.RunCompletedEvent, events.RunCompleted{
		QualitySum:   batch.QualitySum,
		YieldProduct: batch.YieldProduct,
	})
	po.logger.Info("planning run completed",
		"run_id", runID,
		"quality_sum", batch.QualitySum,
		"yield_product", batch.YieldProduct,
		"duration", batch.Duration)

	return batch, nil
}

// Aggregate computes the quality sum over all results and the yield product over
// the first `first` results (all when first <= 0)
func Aggregate(results []dto.SearchResult, first int) *dto.BatchResult {
	batch := &dto.BatchResult{
		Results:      results,
		YieldProduct: 1,
	}
	for i, r := range results {
		batch.QualitySum += r.QualityLevel()
		if first <= 0 || i < first {
			batch.YieldProduct *= r.Yield
		}
	}
	return batch
}

func (po *PlanningOrchestrator) searchBlueprint(
	ctx context.Context,
	runID string,
	bp *entities.Blueprint,
	settings Settings,
) (*dto.SearchResult, error) {
	stream := fmt.Sprintf("%s/blueprint-%d", runID, bp.ID())

	opts := search.Options{
		Horizon:   settings.Horizon,
		MaxStates: settings.MaxStates,
		SpendCap:  settings.SpendCap,
		OnImprove: func(yield int, state entities.SearchState) {
			po.emit(stream, events.YieldImprovedEvent, events.YieldImproved{
				BlueprintID: bp.ID(),
				Yield:       yield,
				State:       state,
			})
		},
	}

	explorer, err := search.NewExplorer(bp, opts, po.logger)
	if err != nil {
		return nil, err
	}

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	po.emit(stream, events.SearchStartedEvent, events.SearchStarted{
		BlueprintID: bp.ID(),
		Horizon:     settings.Horizon,
		Costs:       bp.Table(),
	})

	result, err := explorer.Search(ctx)
	if result != nil {
		if po.metrics != nil {
			po.metrics.RecordSearch(*result)
		}
		if result.Truncated {
			po.emit(stream, events.SearchTruncatedEvent, events.SearchTruncated{
				Result: *result,
				Reason: err.Error(),
			})
		} else {
			po.emit(stream, events.SearchCompletedEvent, events.SearchCompleted{Result: *result})
		}
	}
	return result, err
}

func (po *PlanningOrchestrator) emit(stream, eventType string, data any) {
	if po.eventStore == nil {
		return
	}
	if err := po.eventStore.AppendEvent(stream, events.NewEvent(eventType, stream, data)); err != nil {
		po.logger.Warn("failed to append event", "type", eventType, "stream", stream, "error", err)
	}
}
