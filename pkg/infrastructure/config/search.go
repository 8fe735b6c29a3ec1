package config

import "time"

// SearchConfig holds the parameters of every blueprint search
type SearchConfig struct {
	// Number of time units available (24 for quality scoring, 32 for the extended run).
	// Zero and negative horizons are kept and yield nothing.
	Horizon *int `mapstructure:"horizon" validate:"omitempty,max=64"`

	// Resource chain in dependency order; the last entry is the terminal resource
	Resources []string `mapstructure:"resources" validate:"min=3,max=5,resourcechain"`

	// Cap on expanded states per blueprint (0 = unlimited)
	MaxStates int `mapstructure:"max_states" validate:"min=0"`

	// Deadline per blueprint search (0 = none)
	Timeout time.Duration `mapstructure:"timeout"`

	// Blueprints searched concurrently
	Workers int `mapstructure:"workers" validate:"min=1,max=256"`

	// Skip robots already produced at the maximum spend rate
	SpendCap *bool `mapstructure:"spend_cap"`
}

// HorizonValue returns the configured horizon, or DefaultHorizon when unset
func (s SearchConfig) HorizonValue() int {
	if s.Horizon == nil {
		return DefaultHorizon
	}
	return *s.Horizon
}

// SpendCapEnabled returns the spend cap setting, defaulting to enabled
func (s SearchConfig) SpendCapEnabled() bool {
	return s.SpendCap == nil || *s.SpendCap
}

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// File receives the Prometheus text exposition after a run
	File string `mapstructure:"file" validate:"required_if=Enabled true"`
}

// OutputConfig holds result presentation configuration
type OutputConfig struct {
	// Output format: text, json, csv, yaml, html
	Format string `mapstructure:"format" validate:"required,oneof=text json csv yaml html"`

	// Directory for result files (empty = stdout only)
	Dir string `mapstructure:"dir"`
}
