package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vsinha/botplan/pkg/application/dto"
	"github.com/vsinha/botplan/pkg/domain/entities"
	"github.com/vsinha/botplan/pkg/domain/services"
)

// ErrSearchTruncated is returned when a deadline or state cap stops a search early.
// The accompanying result still carries the best yield found so far.
var ErrSearchTruncated = errors.New("search truncated")

// ErrInvalidState is returned if a successor would hold negative stock
var ErrInvalidState = errors.New("invalid search state")

// cancelCheckInterval is how many states are expanded between context checks
const cancelCheckInterval = 4096

// Options holds configuration for one search
type Options struct {
	// Horizon is the number of time units available
	Horizon int
	// MaxStates caps the number of expanded states (0 = unlimited)
	MaxStates int
	// SpendCap skips robots whose resource is already produced at the maximum spend rate
	SpendCap bool
	// Thresholds overrides the horizon-derived pruning thresholds when set
	Thresholds *services.Thresholds
	// OnImprove is called every time the best yield increases
	OnImprove func(yield int, state entities.SearchState)
}

// DefaultOptions returns the options used by the CLI for a horizon
func DefaultOptions(horizon int) Options {
	return Options{
		Horizon:  horizon,
		SpendCap: true,
	}
}

// Explorer runs a level-order traversal of robot build decisions for one blueprint
type Explorer struct {
	blueprint *entities.Blueprint
	oracle    *services.PruningOracle
	opts      Options
	logger    *slog.Logger
}

// NewExplorer creates an explorer for a blueprint
func NewExplorer(blueprint *entities.Blueprint, opts Options, logger *slog.Logger) (*Explorer, error) {
	if blueprint == nil {
		return nil, fmt.Errorf("blueprint cannot be nil")
	}
	if opts.MaxStates < 0 {
		return nil, fmt.Errorf("max states cannot be negative, got %d", opts.MaxStates)
	}
	if logger == nil {
		logger = slog.Default()
	}

	oracleOpts := []services.OracleOption{services.WithSpendCap(opts.SpendCap)}
	if opts.Thresholds != nil {
		if err := opts.Thresholds.Validate(opts.Horizon); err != nil {
			return nil, fmt.Errorf("invalid pruning thresholds: %w", err)
		}
		oracleOpts = append(oracleOpts, services.WithThresholds(*opts.Thresholds))
	}

	return &Explorer{
		blueprint: blueprint,
		oracle:    services.NewPruningOracle(blueprint, opts.Horizon, oracleOpts...),
		opts:      opts,
		logger:    logger.With("blueprint", blueprint.ID(), "horizon", opts.Horizon),
	}, nil
}

// Search returns the maximum terminal yield reachable within the horizon.
// On truncation the partial result is returned together with an error wrapping
// ErrSearchTruncated.
func (e *Explorer) Search(ctx context.Context) (*dto.SearchResult, error) {
	start := time.Now()
	horizon := e.opts.Horizon
	terminal := e.blueprint.Terminal()
	robots := e.blueprint.Chain().Len()

	result := &dto.SearchResult{
		BlueprintID: e.blueprint.ID(),
		Horizon:     horizon,
		Terminal:    string(e.blueprint.Chain().At(terminal)),
	}

	if horizon <= 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	var pruned [services.ReachableBound + 1]int
	best := 0
	fold := func(yield int, s entities.SearchState) {
		if yield > best {
			best = yield
			if e.opts.OnImprove != nil {
				e.opts.OnImprove(yield, s)
			}
		}
	}

	queue := newStateQueue(1024)
	queue.Push(entities.InitialState())
	seen := map[entities.SearchState]struct{}{entities.InitialState(): {}}

	var stopErr error
	for queue.Len() > 0 {
		if e.opts.MaxStates > 0 && result.StatesExplored >= e.opts.MaxStates {
			stopErr = fmt.Errorf("%w: state limit %d reached", ErrSearchTruncated, e.opts.MaxStates)
			break
		}
		if result.StatesExplored%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				stopErr = fmt.Errorf("%w: %w", ErrSearchTruncated, err)
				break
			}
		}

		node, _ := queue.Pop()
		result.StatesExplored++

		if node.Elapsed >= horizon {
			fold(node.YieldAt(terminal, horizon), node)
			continue
		}

		if !e.oracle.CanImprove(node, best) {
			pruned[services.ReachableBound]++
			fold(node.YieldAt(terminal, horizon), node)
			continue
		}

		for robot := 0; robot < robots; robot++ {
			if rule := e.oracle.Check(node, best, robot); rule != services.Keep {
				pruned[rule]++
				continue
			}

			cost := e.blueprint.Cost(robot)
			wait := services.MinimumWait(node, cost, horizon)
			if node.Elapsed+wait+1 >= horizon {
				continue
			}

			next := node.Advance(robot, cost, wait)
			if !next.Valid() {
				return nil, fmt.Errorf("%w: building robot %d from %+v after waiting %d",
					ErrInvalidState, robot, node, wait)
			}
			if _, ok := seen[next]; ok {
				result.DuplicateStates++
				continue
			}
			seen[next] = struct{}{}
			queue.Push(next)
		}
		if queue.Len() > result.MaxFrontier {
			result.MaxFrontier = queue.Len()
		}

		// Building nothing more from here is always a candidate
		fold(node.YieldAt(terminal, horizon), node)
	}

	result.Yield = best
	result.StatesPruned = make(map[string]int)
	for _, rule := range services.PruneRules {
		if pruned[rule] > 0 {
			result.StatesPruned[rule.String()] = pruned[rule]
		}
	}
	result.Duration = time.Since(start)

	if stopErr != nil {
		result.Truncated = true
		e.logger.Warn("search truncated",
			"yield", best,
			"states", result.StatesExplored,
			"frontier", queue.Len(),
			"error", stopErr)
		return result, stopErr
	}

	e.logger.Debug("search completed",
		"yield", best,
		"states", result.StatesExplored,
		"pruned", result.TotalPruned(),
		"duration", result.Duration)

	return result, nil
}
