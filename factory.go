package dailystats

import (
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/dailystats/internal/constants"
	"github.com/hyp3rd/dailystats/internal/sentinel"
)

// StrategyConstructor builds a strategy from a config.
type StrategyConstructor func(cfg *Config) (Strategy, error)

// StrategyRegistry is a factory for strategies. It maintains a registry of
// strategy constructors keyed by name.
type StrategyRegistry struct {
	constructors map[string]StrategyConstructor
}

// getDefaultStrategies returns the default set of strategy constructors.
func getDefaultStrategies() map[string]StrategyConstructor {
	return map[string]StrategyConstructor{
		constants.SerialStrategy: func(cfg *Config) (Strategy, error) {
			return NewSerial(cfg.InclusiveHorizon), nil
		},
		constants.PoolStrategy: func(cfg *Config) (Strategy, error) {
			if cfg.Value < 0 {
				return nil, ewrap.Wrapf(sentinel.ErrInvalidParameter, "workers %d", cfg.Value)
			}

			return NewThreadPool(cfg.Value, cfg.HardwareCap), nil
		},
		constants.DivideStrategy: func(cfg *Config) (Strategy, error) {
			return NewDivideAndConquer(cfg.Value, cfg.MaxDepth)
		},
	}
}

// NewStrategyRegistry creates a new StrategyRegistry with default strategies pre-registered.
func NewStrategyRegistry() *StrategyRegistry {
	registry := &StrategyRegistry{
		constructors: make(map[string]StrategyConstructor),
	}
	// Register the default strategies
	for name, constructor := range getDefaultStrategies() {
		registry.Register(name, constructor)
	}

	return registry
}

// NewEmptyStrategyRegistry creates a new StrategyRegistry without default strategies.
// This is useful for testing or when you want to register only specific strategies.
func NewEmptyStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		constructors: make(map[string]StrategyConstructor),
	}
}

// Register registers a new strategy constructor under name.
func (r *StrategyRegistry) Register(name string, constructor StrategyConstructor) {
	r.constructors[strings.ToLower(name)] = constructor
}

// Create builds the strategy named by cfg.Strategy.
func (r *StrategyRegistry) Create(cfg *Config) (Strategy, error) {
	if cfg.Strategy == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "strategy")
	}

	constructor, ok := r.constructors[strings.ToLower(cfg.Strategy)]
	if !ok {
		return nil, ewrap.Wrap(sentinel.ErrUnknownStrategy, cfg.Strategy)
	}

	return constructor(cfg)
}

// GetDefaultRegistry returns a new StrategyRegistry with default strategies pre-registered.
func GetDefaultRegistry() *StrategyRegistry { return NewStrategyRegistry() }
