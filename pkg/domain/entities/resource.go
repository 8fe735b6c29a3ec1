package entities

import (
	"fmt"
	"strings"
)

// MaxResources is the longest resource chain a blueprint may describe
const MaxResources = 5

// MinResources is the shortest chain that keeps the low tiers apart from the terminal resource
const MinResources = 3

// ResourceType names a resource and the robot that produces it
type ResourceType string

// Well-known resource names of the default chain
const (
	Ore      ResourceType = "ore"
	Clay     ResourceType = "clay"
	Obsidian ResourceType = "obsidian"
	Geode    ResourceType = "geode"
)

// Chain is the ordered production dependency chain of resource types.
// Position 0 is ore; the last position is the terminal resource.
type Chain struct {
	types []ResourceType
}

// NewChain creates a validated Chain
func NewChain(types ...ResourceType) (Chain, error) {
	if len(types) < MinResources || len(types) > MaxResources {
		return Chain{}, fmt.Errorf("chain must have between %d and %d resource types, got %d",
			MinResources, MaxResources, len(types))
	}

	seen := make(map[ResourceType]bool, len(types))
	normalized := make([]ResourceType, len(types))
	for i, t := range types {
		name := ResourceType(strings.ToLower(strings.TrimSpace(string(t))))
		if name == "" {
			return Chain{}, fmt.Errorf("resource type at position %d cannot be empty", i)
		}
		if seen[name] {
			return Chain{}, fmt.Errorf("duplicate resource type: %s", name)
		}
		seen[name] = true
		normalized[i] = name
	}

	return Chain{types: normalized}, nil
}

// ParseChain builds a Chain from plain resource names
func ParseChain(names []string) (Chain, error) {
	types := make([]ResourceType, len(names))
	for i, n := range names {
		types[i] = ResourceType(n)
	}
	return NewChain(types...)
}

// DefaultChain returns ore, clay, obsidian, geode
func DefaultChain() Chain {
	return Chain{types: []ResourceType{Ore, Clay, Obsidian, Geode}}
}

// Len returns the number of resource types in the chain
func (c Chain) Len() int {
	return len(c.types)
}

// At returns the resource type at position i
func (c Chain) At(i int) ResourceType {
	return c.types[i]
}

// Index returns the position of a resource type in the chain
func (c Chain) Index(t ResourceType) (int, bool) {
	name := ResourceType(strings.ToLower(strings.TrimSpace(string(t))))
	for i, ct := range c.types {
		if ct == name {
			return i, true
		}
	}
	return -1, false
}

// Terminal returns the position of the terminal resource
func (c Chain) Terminal() int {
	return len(c.types) - 1
}

// Types returns a copy of the ordered resource types
func (c Chain) Types() []ResourceType {
	out := make([]ResourceType, len(c.types))
	copy(out, c.types)
	return out
}

// String renders the chain as "ore -> clay -> ..."
func (c Chain) String() string {
	names := make([]string, len(c.types))
	for i, t := range c.types {
		names[i] = string(t)
	}
	return strings.Join(names, " -> ")
}

// Stock holds one non-negative count per chain position.
// Used for inventories and robot counts.
type Stock [MaxResources]int

// CostVector holds the resources consumed to build one robot, indexed by chain position
type CostVector [MaxResources]int

// IsZero reports whether the cost vector charges nothing
func (c CostVector) IsZero() bool {
	return c == CostVector{}
}
