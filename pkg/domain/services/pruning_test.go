package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/botplan/pkg/domain/entities"
)

func exampleBlueprint(t *testing.T) *entities.Blueprint {
	t.Helper()
	bp, err := entities.NewBlueprint(1, entities.DefaultChain(), entities.CostTable{
		entities.Ore:      {entities.Ore: 4},
		entities.Clay:     {entities.Ore: 2},
		entities.Obsidian: {entities.Ore: 3, entities.Clay: 14},
		entities.Geode:    {entities.Ore: 2, entities.Obsidian: 7},
	})
	require.NoError(t, err)
	return bp
}

func TestThresholdsFor(t *testing.T) {
	assert.Equal(t, Thresholds{LockIn: 23, LowTier: 22, Bound: 21}, ThresholdsFor(24))
	assert.Equal(t, Thresholds{LockIn: 31, LowTier: 30, Bound: 29}, ThresholdsFor(32))
}

func TestThresholds_Validate(t *testing.T) {
	assert.NoError(t, ThresholdsFor(24).Validate(24))
	assert.NoError(t, Thresholds{LockIn: 20, LowTier: 20, Bound: 20}.Validate(24))

	err := Thresholds{LockIn: 22, LowTier: 23, Bound: 21}.Validate(24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bound <= low tier <= lock-in")

	err = Thresholds{LockIn: 25, LowTier: 22, Bound: 21}.Validate(24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds horizon")
}

func TestPruningOracle_Check(t *testing.T) {
	bp := exampleBlueprint(t)
	oracle := NewPruningOracle(bp, 24)

	tests := []struct {
		name      string
		state     entities.SearchState
		best      int
		candidate int
		want      PruneRule
	}{
		{
			name:      "ore robot cannot pay back",
			state:     entities.SearchState{Robots: entities.Stock{1}, Elapsed: 20},
			candidate: 0,
			want:      OreHorizon,
		},
		{
			name:      "ore robot still pays back",
			state:     entities.SearchState{Robots: entities.Stock{1}, Elapsed: 19},
			candidate: 0,
			want:      Keep,
		},
		{
			name:      "only terminal robots at lock-in",
			state:     entities.SearchState{Robots: entities.Stock{1, 1}, Elapsed: 23},
			candidate: 2,
			want:      LockIn,
		},
		{
			name:      "low tiers dropped",
			state:     entities.SearchState{Robots: entities.Stock{1, 1}, Elapsed: 22},
			candidate: 1,
			want:      LowTier,
		},
		{
			name:      "obsidian still allowed before lock-in",
			state:     entities.SearchState{Inventory: entities.Stock{0, 0, 0, 5}, Robots: entities.Stock{1, 1}, Elapsed: 22},
			best:      3,
			candidate: 2,
			want:      Keep,
		},
		{
			name:      "no terminal reachable cannot beat best",
			state:     entities.SearchState{Robots: entities.Stock{1, 1}, Elapsed: 21},
			best:      0,
			candidate: 3,
			want:      OptimisticBound,
		},
		{
			name: "bound equal to best is pruned",
			state: entities.SearchState{
				Inventory: entities.Stock{2, 0, 7, 1},
				Robots:    entities.Stock{1, 1, 1, 1},
				Elapsed:   21,
			},
			best:      7,
			candidate: 3,
			want:      OptimisticBound,
		},
		{
			name: "bound above best is kept",
			state: entities.SearchState{
				Inventory: entities.Stock{2, 0, 7, 1},
				Robots:    entities.Stock{1, 1, 1, 1},
				Elapsed:   21,
			},
			best:      6,
			candidate: 3,
			want:      Keep,
		},
		{
			name:      "bound not checked early",
			state:     entities.SearchState{Robots: entities.Stock{1, 1}, Elapsed: 20},
			best:      100,
			candidate: 3,
			want:      Keep,
		},
		{
			name:      "clay production at max spend",
			state:     entities.SearchState{Robots: entities.Stock{1, 14}, Elapsed: 5},
			candidate: 1,
			want:      SpendCap,
		},
		{
			name:      "terminal robot never capped",
			state:     entities.SearchState{Robots: entities.Stock{4, 14, 7, 30}, Elapsed: 5},
			candidate: 3,
			want:      Keep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oracle.Check(tt.state, tt.best, tt.candidate)
			assert.Equal(t, tt.want, got, "got %s", got)
			assert.Equal(t, tt.want != Keep, oracle.ShouldSkip(tt.state, tt.best, tt.candidate))
		})
	}
}

func TestPruningOracle_SpendCapDisabled(t *testing.T) {
	oracle := NewPruningOracle(exampleBlueprint(t), 24, WithSpendCap(false))
	state := entities.SearchState{Robots: entities.Stock{1, 14}, Elapsed: 5}

	assert.Equal(t, Keep, oracle.Check(state, 0, 1))
}

func TestPruningOracle_WithThresholds(t *testing.T) {
	custom := Thresholds{LockIn: 10, LowTier: 8, Bound: 6}
	oracle := NewPruningOracle(exampleBlueprint(t), 24, WithThresholds(custom))

	assert.Equal(t, custom, oracle.Thresholds())
	assert.Equal(t, LockIn, oracle.Check(entities.SearchState{Robots: entities.Stock{1}, Elapsed: 10}, 0, 2))
}

func TestPruningOracle_DoesNotMutateState(t *testing.T) {
	oracle := NewPruningOracle(exampleBlueprint(t), 24)
	state := entities.SearchState{
		Inventory: entities.Stock{2, 0, 7, 1},
		Robots:    entities.Stock{1, 1, 1, 1},
		Elapsed:   21,
	}
	before := state

	for candidate := 0; candidate < 4; candidate++ {
		oracle.Check(state, 3, candidate)
	}
	assert.Equal(t, before, state)
}

func TestPruneRule_String(t *testing.T) {
	names := make([]string, 0, len(PruneRules))
	for _, r := range PruneRules {
		names = append(names, r.String())
	}
	assert.Equal(t, []string{"OreHorizon", "LockIn", "LowTier", "OptimisticBound", "SpendCap", "ReachableBound"}, names)
	assert.Equal(t, "Keep", Keep.String())
	assert.Equal(t, "Unknown", PruneRule(99).String())
}

func TestPruningOracle_CanImprove(t *testing.T) {
	bp := exampleBlueprint(t)

	tests := []struct {
		name    string
		horizon int
		state   entities.SearchState
		best    int
		want    bool
	}{
		{
			name:    "no obsidian before horizon",
			horizon: 14,
			state:   entities.InitialState(),
			want:    false,
		},
		{
			name:    "terminal robots reachable",
			horizon: 16,
			state:   entities.InitialState(),
			want:    true,
		},
		{
			name:    "relaxed replay reaches 3",
			horizon: 16,
			state:   entities.InitialState(),
			best:    3,
			want:    false,
		},
		{
			name:    "late state beats 6",
			horizon: 24,
			state: entities.SearchState{
				Inventory: entities.Stock{2, 0, 7, 1},
				Robots:    entities.Stock{1, 1, 1, 1},
				Elapsed:   21,
			},
			best: 6,
			want: true,
		},
		{
			name:    "late state tops out at 7",
			horizon: 24,
			state: entities.SearchState{
				Inventory: entities.Stock{2, 0, 7, 1},
				Robots:    entities.Stock{1, 1, 1, 1},
				Elapsed:   21,
			},
			best: 7,
			want: false,
		},
		{
			name:    "at horizon",
			horizon: 24,
			state:   entities.SearchState{Inventory: entities.Stock{0, 0, 0, 5}, Elapsed: 24},
			best:    4,
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := NewPruningOracle(bp, tt.horizon)
			assert.Equal(t, tt.want, oracle.CanImprove(tt.state, tt.best))
		})
	}
}

func TestPruningOracle_ReachableYieldCoversOptimisticBound(t *testing.T) {
	bp := exampleBlueprint(t)
	oracle := NewPruningOracle(bp, 24)

	// Wherever a terminal robot is affordable now the replay builds one every unit
	state := entities.SearchState{
		Inventory: entities.Stock{40, 40, 40, 0},
		Robots:    entities.Stock{1, 1, 1, 0},
		Elapsed:   20,
	}
	assert.Equal(t, 6, oracle.reachableYield(state))
	assert.Equal(t, oracle.optimisticYield(state), oracle.reachableYield(state))
}
