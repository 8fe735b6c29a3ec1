package services

import (
	"fmt"

	"github.com/vsinha/botplan/pkg/domain/entities"
)

// PruneRule identifies which rule discarded a candidate
type PruneRule int

const (
	Keep PruneRule = iota
	OreHorizon
	LockIn
	LowTier
	OptimisticBound
	SpendCap
	ReachableBound
)

// String method for PruneRule enum
func (r PruneRule) String() string {
	switch r {
	case Keep:
		return "Keep"
	case OreHorizon:
		return "OreHorizon"
	case LockIn:
		return "LockIn"
	case LowTier:
		return "LowTier"
	case OptimisticBound:
		return "OptimisticBound"
	case SpendCap:
		return "SpendCap"
	case ReachableBound:
		return "ReachableBound"
	default:
		return "Unknown"
	}
}

// PruneRules lists every rule that can discard a candidate, in evaluation order.
// ReachableBound applies to a whole state rather than one candidate.
var PruneRules = []PruneRule{OreHorizon, LockIn, LowTier, OptimisticBound, SpendCap, ReachableBound}

// Thresholds are the elapsed times at which the late-game rules switch on
type Thresholds struct {
	// LockIn: only the terminal robot is considered from here on
	LockIn int
	// LowTier: the two lowest-tier robots are no longer considered
	LowTier int
	// Bound: the optimistic upper bound is checked from here on
	Bound int
}

// ThresholdsFor derives the thresholds for a horizon (21, 22, 23 for 24)
func ThresholdsFor(horizon int) Thresholds {
	return Thresholds{
		LockIn:  horizon - 1,
		LowTier: horizon - 2,
		Bound:   horizon - 3,
	}
}

// Validate checks the thresholds are ordered and inside the horizon
func (t Thresholds) Validate(horizon int) error {
	if t.Bound > t.LowTier || t.LowTier > t.LockIn {
		return fmt.Errorf("thresholds must satisfy bound <= low tier <= lock-in, got %d, %d, %d",
			t.Bound, t.LowTier, t.LockIn)
	}
	if t.LockIn > horizon {
		return fmt.Errorf("lock-in threshold %d exceeds horizon %d", t.LockIn, horizon)
	}
	return nil
}

// PruningOracle decides whether building a robot from a state can be skipped
// without losing the optimum. It only reads its inputs.
type PruningOracle struct {
	blueprint  *entities.Blueprint
	horizon    int
	thresholds Thresholds
	spendCap   bool
	terminal   int
}

// OracleOption configures a PruningOracle
type OracleOption func(*PruningOracle)

// WithThresholds overrides the horizon-derived thresholds
func WithThresholds(t Thresholds) OracleOption {
	return func(o *PruningOracle) {
		o.thresholds = t
	}
}

// WithSpendCap enables or disables the robot spend cap
func WithSpendCap(enabled bool) OracleOption {
	return func(o *PruningOracle) {
		o.spendCap = enabled
	}
}

// NewPruningOracle creates an oracle for one blueprint and horizon
func NewPruningOracle(blueprint *entities.Blueprint, horizon int, opts ...OracleOption) *PruningOracle {
	o := &PruningOracle{
		blueprint:  blueprint,
		horizon:    horizon,
		thresholds: ThresholdsFor(horizon),
		spendCap:   true,
		terminal:   blueprint.Terminal(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Thresholds returns the thresholds in effect
func (o *PruningOracle) Thresholds() Thresholds {
	return o.thresholds
}

// ShouldSkip reports whether the candidate robot can be skipped from state
func (o *PruningOracle) ShouldSkip(state entities.SearchState, best, candidate int) bool {
	return o.Check(state, best, candidate) != Keep
}

// Check returns the first rule that discards the candidate, or Keep
func (o *PruningOracle) Check(state entities.SearchState, best, candidate int) PruneRule {
	elapsed := state.Elapsed

	if candidate == 0 && o.horizon <= elapsed+o.blueprint.Cost(0)[0] {
		return OreHorizon
	}

	if elapsed >= o.thresholds.LockIn && candidate != o.terminal {
		return LockIn
	}

	if elapsed >= o.thresholds.LowTier && candidate <= 1 {
		return LowTier
	}

	if elapsed >= o.thresholds.Bound && o.optimisticYield(state) <= best {
		return OptimisticBound
	}

	if o.spendCap && candidate != o.terminal && state.Robots[candidate] >= o.blueprint.MaxSpend()[candidate] {
		return SpendCap
	}

	return Keep
}

// optimisticYield bounds the terminal stock reachable by the horizon: current
// robots keep producing, and a new terminal robot appears every unit from the
// earliest moment one can be afforded.
func (o *PruningOracle) optimisticYield(state entities.SearchState) int {
	remaining := o.horizon - state.Elapsed
	potential := state.Inventory[o.terminal] + state.Robots[o.terminal]*remaining

	wait := MinimumWait(state, o.blueprint.Cost(o.terminal), o.horizon)
	if extra := remaining - wait - 1; extra > 0 {
		potential += extra * (extra + 1) / 2
	}
	return potential
}

// CanImprove reports whether some continuation of state might still beat best.
// Unlike the candidate rules it holds at any elapsed time.
func (o *PruningOracle) CanImprove(state entities.SearchState, best int) bool {
	return o.reachableYield(state) > best
}

// reachableYield replays the remaining time with every robot type built in each unit
// its cost is covered, and no cost ever paid. Stock and robot counts of the replay
// never fall below those of a real build order, so its terminal stock bounds the yield.
func (o *PruningOracle) reachableYield(state entities.SearchState) int {
	inventory, robots := state.Inventory, state.Robots
	n := o.blueprint.Chain().Len()

	var affordable [entities.MaxResources]bool
	for t := state.Elapsed; t < o.horizon; t++ {
		for j := 0; j < n; j++ {
			affordable[j] = affordable[j] || covers(inventory, o.blueprint.Cost(j))
		}
		for i := 0; i < n; i++ {
			inventory[i] += robots[i]
		}
		for j := 0; j < n; j++ {
			if affordable[j] {
				robots[j]++
			}
		}
	}
	return inventory[o.terminal]
}

func covers(inventory entities.Stock, cost entities.CostVector) bool {
	for i, required := range cost {
		if inventory[i] < required {
			return false
		}
	}
	return true
}
