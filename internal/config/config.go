// Package config loads runtime configuration for the simulator and the
// engine. Values come from defaults, an optional YAML file and COMMANDER_*
// environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// COMMANDER_RULES_STARTING_LIFE=30.
const EnvPrefix = "COMMANDER"

// Config is the root configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Rules      Rules            `mapstructure:"rules"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Simulation SimulationConfig `mapstructure:"simulation"`
}

// LoggingConfig controls the zap logger built by the CLI.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Rules holds the game constants handed to the engine at construction.
type Rules struct {
	StartingLife          int  `mapstructure:"starting_life"`
	OpeningHandSize       int  `mapstructure:"opening_hand_size"`
	MaxHandSize           int  `mapstructure:"max_hand_size"`
	CommanderDamageLimit  int  `mapstructure:"commander_damage_limit"`
	CommanderTaxIncrement int  `mapstructure:"commander_tax_increment"`
	SkipFirstDraw         bool `mapstructure:"skip_first_draw"`
}

// CatalogConfig selects where card templates are stored.
type CatalogConfig struct {
	// Driver is "builtin", "sqlite" or "postgres".
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// SimulationConfig bounds autopilot games.
type SimulationConfig struct {
	Games          int   `mapstructure:"games"`
	Players        int   `mapstructure:"players"`
	MaxTurns       int   `mapstructure:"max_turns"`
	MaxStepActions int   `mapstructure:"max_step_actions"`
	Workers        int   `mapstructure:"workers"`
	Seed           int64 `mapstructure:"seed"`
}

// DefaultRules returns the Commander defaults.
func DefaultRules() Rules {
	return Rules{
		StartingLife:          40,
		OpeningHandSize:       7,
		MaxHandSize:           7,
		CommanderDamageLimit:  21,
		CommanderTaxIncrement: 2,
	}
}

func setDefaults(v *viper.Viper) {
	rules := DefaultRules()
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("rules.starting_life", rules.StartingLife)
	v.SetDefault("rules.opening_hand_size", rules.OpeningHandSize)
	v.SetDefault("rules.max_hand_size", rules.MaxHandSize)
	v.SetDefault("rules.commander_damage_limit", rules.CommanderDamageLimit)
	v.SetDefault("rules.commander_tax_increment", rules.CommanderTaxIncrement)
	v.SetDefault("rules.skip_first_draw", rules.SkipFirstDraw)
	v.SetDefault("catalog.driver", "builtin")
	v.SetDefault("catalog.dsn", "")
	v.SetDefault("simulation.games", 1)
	v.SetDefault("simulation.players", 4)
	v.SetDefault("simulation.max_turns", 40)
	v.SetDefault("simulation.max_step_actions", 50)
	v.SetDefault("simulation.workers", 1)
	v.SetDefault("simulation.seed", 1)
}

// New returns a viper instance with defaults and env bindings but no file.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from path. An empty path uses defaults and the
// environment only; a missing file is an error.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return Decode(v)
}

// Decode unmarshals and validates a prepared viper instance.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Rules.StartingLife <= 0 {
		errs = append(errs, errors.New("rules.starting_life must be positive"))
	}
	if c.Rules.OpeningHandSize < 0 {
		errs = append(errs, errors.New("rules.opening_hand_size must not be negative"))
	}
	if c.Rules.MaxHandSize < 0 {
		errs = append(errs, errors.New("rules.max_hand_size must not be negative"))
	}
	if c.Rules.CommanderDamageLimit <= 0 {
		errs = append(errs, errors.New("rules.commander_damage_limit must be positive"))
	}
	if c.Rules.CommanderTaxIncrement < 0 {
		errs = append(errs, errors.New("rules.commander_tax_increment must not be negative"))
	}
	switch c.Catalog.Driver {
	case "builtin", "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("catalog.driver %q is not supported", c.Catalog.Driver))
	}
	if c.Simulation.Players < 2 {
		errs = append(errs, errors.New("simulation.players must be at least 2"))
	}
	if c.Simulation.Workers < 1 {
		errs = append(errs, errors.New("simulation.workers must be at least 1"))
	}
	return errors.Join(errs...)
}
