package search

import (
	"github.com/vsinha/botplan/pkg/domain/entities"
	"github.com/vsinha/botplan/pkg/domain/services"
)

// ExhaustiveYield enumerates every build sequence without pruning and returns the
// best terminal yield. Only tractable for short horizons; used as the reference
// the explorer is checked against.
func ExhaustiveYield(blueprint *entities.Blueprint, horizon int) int {
	if horizon <= 0 {
		return 0
	}
	w := &walker{
		blueprint: blueprint,
		horizon:   horizon,
		terminal:  blueprint.Terminal(),
		robots:    blueprint.Chain().Len(),
	}
	w.visit(entities.InitialState())
	return w.best
}

type walker struct {
	blueprint *entities.Blueprint
	horizon   int
	terminal  int
	robots    int
	best      int
}

func (w *walker) visit(s entities.SearchState) {
	if y := s.YieldAt(w.terminal, w.horizon); y > w.best {
		w.best = y
	}
	for robot := 0; robot < w.robots; robot++ {
		cost := w.blueprint.Cost(robot)
		wait := services.MinimumWait(s, cost, w.horizon)
		// A robot finishing at the horizon produces nothing
		if s.Elapsed+wait+1 >= w.horizon {
			continue
		}
		w.visit(s.Advance(robot, cost, wait))
	}
}
