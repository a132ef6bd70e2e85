package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence.
func LoadConfig(configPath string) (*EngineConfig, error) {
	v := viper.New()

	// Set defaults matching DefaultEngineConfig
	v.SetDefault("engine.system", "sayc")
	v.SetDefault("engine.solver_budget", 0)
	v.SetDefault("engine.max_explain_calls", 16)

	// Bind environment variables with KIBITZ_ prefix
	v.SetEnvPrefix("KIBITZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Load config file if provided
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &EngineConfig{
		System:          v.GetString("engine.system"),
		SolverBudget:    v.GetInt("engine.solver_budget"),
		MaxExplainCalls: v.GetInt("engine.max_explain_calls"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig checks the system name is known and the budget is sane.
func validateConfig(cfg *EngineConfig) error {
	if cfg.System == "" {
		return fmt.Errorf("system must not be empty")
	}
	if cfg.SolverBudget < 0 {
		return fmt.Errorf("solver_budget must be zero (unlimited) or positive, got %d", cfg.SolverBudget)
	}
	if cfg.MaxExplainCalls <= 0 {
		return fmt.Errorf("max_explain_calls must be positive, got %d", cfg.MaxExplainCalls)
	}
	return nil
}
