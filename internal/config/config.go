// Package config provides configuration management for the kibitz tools.
package config

// EngineConfig holds configuration for the bidding engine.
type EngineConfig struct {
	System          string
	SolverBudget    int
	MaxExplainCalls int
}

// DefaultEngineConfig returns configuration with default values.
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		System:          "sayc",
		SolverBudget:    0,
		MaxExplainCalls: 16,
	}
}
