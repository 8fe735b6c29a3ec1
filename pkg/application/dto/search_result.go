package dto

import (
	"time"
)

// SearchResult contains the outcome of one blueprint search
type SearchResult struct {
	BlueprintID     int            `json:"blueprint_id" yaml:"blueprint_id"`
	Horizon         int            `json:"horizon" yaml:"horizon"`
	Terminal        string         `json:"terminal" yaml:"terminal"`
	Yield           int            `json:"yield" yaml:"yield"`
	StatesExplored  int            `json:"states_explored" yaml:"states_explored"`
	DuplicateStates int            `json:"duplicate_states" yaml:"duplicate_states"`
	StatesPruned    map[string]int `json:"states_pruned,omitempty" yaml:"states_pruned,omitempty"`
	MaxFrontier     int            `json:"max_frontier" yaml:"max_frontier"`
	Truncated       bool           `json:"truncated" yaml:"truncated"`
	Duration        time.Duration  `json:"duration" yaml:"duration"`
}

// QualityLevel returns the blueprint number multiplied by its yield
func (r SearchResult) QualityLevel() int {
	return r.BlueprintID * r.Yield
}

// TotalPruned returns the number of candidates discarded by any rule
func (r SearchResult) TotalPruned() int {
	total := 0
	for _, n := range r.StatesPruned {
		total += n
	}
	return total
}

// BatchResult contains the results of searching several blueprints
type BatchResult struct {
	RunID        string         `json:"run_id" yaml:"run_id"`
	Results      []SearchResult `json:"results" yaml:"results"`
	QualitySum   int            `json:"quality_sum" yaml:"quality_sum"`
	YieldProduct int            `json:"yield_product" yaml:"yield_product"`
	Duration     time.Duration  `json:"duration" yaml:"duration"`
}

// Truncated reports whether any search in the batch stopped early
func (b BatchResult) Truncated() bool {
	for _, r := range b.Results {
		if r.Truncated {
			return true
		}
	}
	return false
}
