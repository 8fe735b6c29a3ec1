package entities

// SearchState is a point in the exploration space.
// It is a value: successors are new states, never edits of a parent.
type SearchState struct {
	Inventory Stock
	Robots    Stock
	Elapsed   int
}

// InitialState returns the start of every search: one ore robot, nothing in stock
func InitialState() SearchState {
	var s SearchState
	s.Robots[0] = 1
	return s
}

// Advance returns the state after waiting `wait` units and then spending one unit
// building a robot of the given position. Production accrues for wait+1 units,
// then the cost is paid.
func (s SearchState) Advance(robot int, cost CostVector, wait int) SearchState {
	next := s
	for i := range next.Inventory {
		next.Inventory[i] = s.Inventory[i] + s.Robots[i]*(wait+1) - cost[i]
	}
	next.Robots[robot]++
	next.Elapsed = s.Elapsed + wait + 1
	return next
}

// YieldAt projects the stock of a resource at the horizon if nothing more is built
func (s SearchState) YieldAt(resource, horizon int) int {
	remaining := horizon - s.Elapsed
	if remaining < 0 {
		remaining = 0
	}
	return s.Inventory[resource] + s.Robots[resource]*remaining
}

// Valid reports whether every inventory entry is non-negative
func (s SearchState) Valid() bool {
	for _, v := range s.Inventory {
		if v < 0 {
			return false
		}
	}
	return true
}
