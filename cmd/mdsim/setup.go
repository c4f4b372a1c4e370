package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/san-kum/mdsim/internal/config"
	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/forcefield"
	"github.com/san-kum/mdsim/pkg/forceabi"
)

const envPrefix = "MDSIM"

// resolveConfig layers, lowest first: defaults, preset, config file,
// MDSIM_* environment, explicitly set flags.
func resolveConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.DefaultConfig()

	presetName, _ := flags.GetString("preset")
	if presetName != "" {
		p := config.GetPreset(presetName)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %s)",
				presetName, strings.Join(config.ListPresets(), ", "))
		}
		cfg = p
	}

	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.LoadOver(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, err
	}

	if v.IsSet("box") {
		cfg.BoxSize = v.GetFloat64("box")
	}
	if v.IsSet("particles") {
		cfg.Particles = v.GetInt("particles")
	}
	if v.IsSet("steps") {
		cfg.Steps = v.GetInt("steps")
	}
	if v.IsSet("dt") {
		cfg.Dt = v.GetFloat64("dt")
	}
	cutoffSet := v.IsSet("cutoff")
	if cutoffSet {
		cfg.Cutoff = v.GetFloat64("cutoff")
	}
	if v.IsSet("force-field") {
		cfg.ForceField = v.GetString("force-field")
	}
	if v.IsSet("plugin") {
		cfg.Plugin = v.GetString("plugin")
	}
	if v.IsSet("validate") {
		cfg.ValidateState = v.GetBool("validate")
	}

	// Plugins fix their own parameters.
	if cutoffSet && cfg.Plugin != "" {
		return nil, fmt.Errorf("%w: --cutoff applies to the built-in lj force field, not to --plugin",
			dynamo.ErrInvalidConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildForceField returns the force law for cfg and the name runs are
// saved under.
func buildForceField(cfg *config.Config) (forceabi.ForceField, string, error) {
	if cfg.Plugin != "" {
		ff, err := forcefield.Open(cfg.Plugin)
		if err != nil {
			return nil, "", err
		}
		return ff, strings.TrimSuffix(filepath.Base(cfg.Plugin), filepath.Ext(cfg.Plugin)), nil
	}
	ff, err := forcefield.NewRegistry().Get(cfg.ForceField, cfg.ForceFieldParams())
	if err != nil {
		return nil, "", err
	}
	return ff, cfg.ForceField, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}
	zc.DisableStacktrace = true
	return zc.Build()
}
