package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mdsim/internal/dynamo"
	"github.com/san-kum/mdsim/internal/forcefield"
)

const (
	DefaultBoxSize    = 20.0
	DefaultParticles  = 1000
	DefaultSteps      = 100
	DefaultDt         = 0.005
	DefaultForceField = "lj"
)

type Config struct {
	BoxSize       float64 `yaml:"box_size"`
	Particles     int     `yaml:"particles"`
	Steps         int     `yaml:"steps"`
	Dt            float64 `yaml:"dt"`
	ForceField    string  `yaml:"force_field"`
	Plugin        string  `yaml:"plugin,omitempty"`
	Cutoff        float64 `yaml:"cutoff"`
	ValidateState bool    `yaml:"validate_state"`
}

func DefaultConfig() *Config {
	return &Config{
		BoxSize:    DefaultBoxSize,
		Particles:  DefaultParticles,
		Steps:      DefaultSteps,
		Dt:         DefaultDt,
		ForceField: DefaultForceField,
		Cutoff:     forcefield.DefaultCutoff,
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base; keys missing from the file keep
// base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects configurations that cannot start a run. A cutoff above
// half the box is rejected up front for the built-in Lennard-Jones law;
// plugins check their own cutoff in Initialize.
func (c *Config) Validate() error {
	if !(c.BoxSize > 0) {
		return fmt.Errorf("%w: box_size must be positive, got %g", dynamo.ErrInvalidConfig, c.BoxSize)
	}
	if c.Particles <= 0 {
		return fmt.Errorf("%w: particles must be positive, got %d", dynamo.ErrInvalidConfig, c.Particles)
	}
	if c.Steps < 0 {
		return fmt.Errorf("%w: steps must not be negative, got %d", dynamo.ErrInvalidConfig, c.Steps)
	}
	if !(c.Dt > 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", dynamo.ErrInvalidConfig, c.Dt)
	}
	if c.Plugin == "" && c.ForceField == "" {
		return fmt.Errorf("%w: no force field or plugin given", dynamo.ErrInvalidConfig)
	}
	if c.Plugin == "" && c.ForceField == "lj" {
		if !(c.Cutoff > 0) {
			return fmt.Errorf("%w: cutoff must be positive, got %g", dynamo.ErrInvalidConfig, c.Cutoff)
		}
		if c.Cutoff > 0.5*c.BoxSize {
			return fmt.Errorf("%w: cutoff %g, box %g", dynamo.ErrCutoffTooLarge, c.Cutoff, c.BoxSize)
		}
	}
	return nil
}

// Sim returns the engine-level part of the configuration.
func (c *Config) Sim() dynamo.Config {
	return dynamo.Config{
		BoxSize:       c.BoxSize,
		NParticles:    c.Particles,
		ValidateState: c.ValidateState,
	}
}

// ForceFieldParams returns the parameters passed to registry force laws.
func (c *Config) ForceFieldParams() forcefield.Params {
	return forcefield.Params{Cutoff: c.Cutoff}
}
