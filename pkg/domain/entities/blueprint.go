package entities

import (
	"fmt"
	"sort"
)

// CostTable maps robot type to the resources it consumes
type CostTable map[ResourceType]map[ResourceType]int

// Blueprint is the immutable cost table for one puzzle instance
type Blueprint struct {
	id       int
	chain    Chain
	costs    [MaxResources]CostVector
	maxSpend Stock
}

// NewBlueprint creates a validated Blueprint.
// Every robot type of the chain must be present; a robot may only be charged
// resources at or below its own tier.
func NewBlueprint(id int, chain Chain, table CostTable) (*Blueprint, error) {
	if id < 0 {
		return nil, fmt.Errorf("blueprint id cannot be negative, got %d", id)
	}
	if chain.Len() == 0 {
		return nil, fmt.Errorf("blueprint %d: chain cannot be empty", id)
	}

	bp := &Blueprint{id: id, chain: chain}
	present := make([]bool, chain.Len())

	// Sorted robot names keep the first reported error stable
	robots := make([]string, 0, len(table))
	for robot := range table {
		robots = append(robots, string(robot))
	}
	sort.Strings(robots)

	for _, name := range robots {
		robot := ResourceType(name)
		j, ok := chain.Index(robot)
		if !ok {
			return nil, fmt.Errorf("blueprint %d: unknown robot type: %s", id, robot)
		}
		if present[j] {
			return nil, fmt.Errorf("blueprint %d: duplicate robot type: %s", id, robot)
		}
		present[j] = true

		for resource, qty := range table[robot] {
			i, ok := chain.Index(resource)
			if !ok {
				return nil, fmt.Errorf("blueprint %d: %s robot references unknown resource: %s", id, robot, resource)
			}
			if qty < 0 {
				return nil, fmt.Errorf("blueprint %d: %s robot cost cannot be negative, got %d %s", id, robot, qty, resource)
			}
			if qty > 0 && i > j {
				return nil, fmt.Errorf("blueprint %d: %s robot cannot cost %s, which is later in the chain", id, robot, resource)
			}
			bp.costs[j][i] = qty
		}
	}

	for j, ok := range present {
		if !ok {
			return nil, fmt.Errorf("blueprint %d: missing cost for %s robot", id, chain.At(j))
		}
	}

	for j := 0; j < chain.Len(); j++ {
		for i := 0; i < chain.Len(); i++ {
			if bp.costs[j][i] > bp.maxSpend[i] {
				bp.maxSpend[i] = bp.costs[j][i]
			}
		}
	}

	return bp, nil
}

// ID returns the blueprint number
func (b *Blueprint) ID() int {
	return b.id
}

// Chain returns the resource chain the blueprint governs
func (b *Blueprint) Chain() Chain {
	return b.chain
}

// Terminal returns the position of the terminal resource
func (b *Blueprint) Terminal() int {
	return b.chain.Terminal()
}

// Cost returns the cost vector of the robot at the given position
func (b *Blueprint) Cost(robot int) CostVector {
	return b.costs[robot]
}

// RobotTypes returns the robot types in dependency order
func (b *Blueprint) RobotTypes() []ResourceType {
	return b.chain.Types()
}

// MaxSpend returns, per resource, the largest amount any single robot costs
func (b *Blueprint) MaxSpend() Stock {
	return b.maxSpend
}

// Table returns the cost table as a fresh map, zero entries omitted
func (b *Blueprint) Table() CostTable {
	table := make(CostTable, b.chain.Len())
	for j := 0; j < b.chain.Len(); j++ {
		row := make(map[ResourceType]int)
		for i := 0; i < b.chain.Len(); i++ {
			if b.costs[j][i] > 0 {
				row[b.chain.At(i)] = b.costs[j][i]
			}
		}
		table[b.chain.At(j)] = row
	}
	return table
}
