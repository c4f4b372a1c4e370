package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mdsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 20.0, cfg.BoxSize)
	assert.Equal(t, 1000, cfg.Particles)
	assert.Equal(t, 100, cfg.Steps)
	assert.Equal(t, 0.005, cfg.Dt)
	assert.Equal(t, "lj", cfg.ForceField)
	assert.Equal(t, 2.5, cfg.Cutoff)
	assert.NoError(t, cfg.Validate())
}

func TestLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Particles = 64
	cfg.Dt = 0.001
	cfg.Plugin = "./lj.so"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("particles: 27\nsteps: 10\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 27, cfg.Particles)
	assert.Equal(t, 10, cfg.Steps)
	assert.Equal(t, DefaultBoxSize, cfg.BoxSize)
	assert.Equal(t, DefaultDt, cfg.Dt)
}

func TestLoadOver_Preset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("steps: 5\n"), 0644))

	base := GetPreset("dimer")
	cfg, err := LoadOver(path, base)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Particles)
	assert.Equal(t, 5, cfg.Steps)
	assert.Equal(t, 200, base.Steps, "base must not be modified")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("particles: [1, 2\n"), 0644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero box", func(c *Config) { c.BoxSize = 0 }, dynamo.ErrInvalidConfig},
		{"zero particles", func(c *Config) { c.Particles = 0 }, dynamo.ErrInvalidConfig},
		{"negative steps", func(c *Config) { c.Steps = -1 }, dynamo.ErrInvalidConfig},
		{"zero dt", func(c *Config) { c.Dt = 0 }, dynamo.ErrInvalidConfig},
		{"no force law", func(c *Config) { c.ForceField = "" }, dynamo.ErrInvalidConfig},
		{"zero cutoff", func(c *Config) { c.Cutoff = 0 }, dynamo.ErrInvalidConfig},
		{"cutoff beyond half box", func(c *Config) { c.BoxSize = 4 }, dynamo.ErrCutoffTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}

	cfg := DefaultConfig()
	cfg.BoxSize = 4
	cfg.Plugin = "./lj.so"
	assert.NoError(t, cfg.Validate(), "plugins validate their own cutoff")
}

func TestSim(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ValidateState = true

	got := cfg.Sim()
	assert.Equal(t, dynamo.Config{BoxSize: 20, NParticles: 1000, ValidateState: true}, got)
	assert.Equal(t, 2.5, cfg.ForceFieldParams().Cutoff)
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Validate(), name)
	}

	ref := GetPreset("reference")
	require.NotNil(t, ref)
	assert.Equal(t, DefaultConfig(), ref)

	ref.Particles = 1
	assert.Equal(t, 1000, Presets["reference"].Particles, "GetPreset must return a copy")

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestPresets_SwitchToLennardJones(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		cfg.ForceField = "lj"
		assert.NoError(t, cfg.Validate(), name)
		assert.Equal(t, 2.5, cfg.Cutoff, name)
	}
}
