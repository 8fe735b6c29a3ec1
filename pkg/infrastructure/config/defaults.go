package config

// DefaultHorizon is the time budget used for quality scoring
const DefaultHorizon = 24

// DefaultResources is the four-resource chain
var DefaultResources = []string{"ore", "clay", "obsidian", "geode"}

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Search defaults
	if cfg.Search.Horizon == nil {
		horizon := DefaultHorizon
		cfg.Search.Horizon = &horizon
	}
	if len(cfg.Search.Resources) == 0 {
		cfg.Search.Resources = append([]string(nil), DefaultResources...)
	}
	if cfg.Search.Workers == 0 {
		cfg.Search.Workers = 4
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Enabled && cfg.Metrics.File == "" {
		cfg.Metrics.File = "botplan.prom"
	}

	// Output defaults
	if cfg.Output.Format == "" {
		cfg.Output.Format = "text"
	}
}
