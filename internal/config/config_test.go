package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultRules(), cfg.Rules)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "builtin", cfg.Catalog.Driver)
	assert.Equal(t, 4, cfg.Simulation.Players)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
logging:
  level: debug
  format: json
rules:
  starting_life: 20
  skip_first_draw: true
simulation:
  players: 2
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("COMMANDER_RULES_MAX_HAND_SIZE", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 20, cfg.Rules.StartingLife)
	assert.True(t, cfg.Rules.SkipFirstDraw)
	assert.Equal(t, 5, cfg.Rules.MaxHandSize)
	assert.Equal(t, 21, cfg.Rules.CommanderDamageLimit)
	assert.Equal(t, 2, cfg.Simulation.Players)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero life", func(c *Config) { c.Rules.StartingLife = 0 }},
		{"negative tax", func(c *Config) { c.Rules.CommanderTaxIncrement = -1 }},
		{"unknown driver", func(c *Config) { c.Catalog.Driver = "mysql" }},
		{"single player", func(c *Config) { c.Simulation.Players = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
