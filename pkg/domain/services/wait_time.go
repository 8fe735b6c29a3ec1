package services

import "github.com/vsinha/botplan/pkg/domain/entities"

// Unreachable is the wait reported when a cost can never be met within the horizon
func Unreachable(horizon int) int {
	return horizon + 1
}

// MinimumWait returns the number of idle units needed before a robot with the
// given cost can be built from state. Every resource must be covered at once,
// so the result is the largest per-resource wait. A resource with a positive
// deficit and no producer yields Unreachable(horizon).
//
// For any reachable wait w, state.Advance(robot, cost, w) has no negative inventory:
// after w units every resource holds at least its cost.
func MinimumWait(state entities.SearchState, cost entities.CostVector, horizon int) int {
	wait := 0
	for i, required := range cost {
		onHand := state.Inventory[i]
		if onHand >= required {
			continue
		}
		rate := state.Robots[i]
		if rate == 0 {
			return Unreachable(horizon)
		}
		if w := (required - onHand + rate - 1) / rate; w > wait {
			wait = w
		}
	}
	return wait
}
