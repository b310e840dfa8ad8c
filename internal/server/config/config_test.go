package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
seed: 1234
view_radius: 3
liquid_spread: 0
tick_rate: 10
greedy: false
log_level: debug
generation:
  height: 96
  sea_level: 40
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "world.yaml", sample))
	require.NoError(t, err)

	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, 3, cfg.ViewRadius)
	assert.Equal(t, 0, cfg.LiquidSpread)
	assert.False(t, cfg.Greedy)
	assert.Equal(t, 96, cfg.Generation.Height)
	assert.Equal(t, 40, cfg.Generation.SeaLevel)
	assert.Equal(t, 100*time.Millisecond, cfg.TickInterval())

	// Untouched keys keep their defaults, including nested ones.
	def := DefaultConfig()
	assert.Equal(t, def.ChunkBudget, cfg.ChunkBudget)
	assert.Equal(t, def.Generation.Terrain, cfg.Generation.Terrain)
	assert.Equal(t, int64(1234), cfg.GenerationParams().Seed)
	require.NoError(t, cfg.Validate())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeFile(t, "bad.yaml", "view_radus: 4\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetchLocalPreset(t *testing.T) {
	src := writeFile(t, "preset.yaml", sample)
	dst, err := Fetch(context.Background(), src, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "preset.yaml", filepath.Base(dst))

	cfg, err := Load(dst)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Seed)
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.ViewRadius = 10

	fromFile, err := Load(writeFile(t, "world.yaml", sample))
	require.NoError(t, err)

	Merge(cfg, fromFile, map[string]bool{"seed": true})
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 3, cfg.ViewRadius)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 96, cfg.Generation.Height)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"height not section aligned", func(c *Config) { c.Generation.Height = 100 }},
		{"height too small", func(c *Config) { c.Generation.Height = 16 }},
		{"height too large", func(c *Config) { c.Generation.Height = 272 }},
		{"sea level above height", func(c *Config) { c.Generation.SeaLevel = 128 }},
		{"zero chunk budget", func(c *Config) { c.ChunkBudget = 0 }},
		{"zero gravity budget", func(c *Config) { c.GravityBudget = 0 }},
		{"negative liquid budget", func(c *Config) { c.LiquidBudget = -1 }},
		{"unknown generator", func(c *Config) { c.GeneratorType = "islands" }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"zero tick rate", func(c *Config) { c.TickRate = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
