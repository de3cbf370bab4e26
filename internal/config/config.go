package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/plife/internal/life"
)

const (
	DefaultWidth     = 900.0
	DefaultHeight    = 600.0
	DefaultDampening = 0.5
	DefaultDtScale   = 1.0
	DefaultCount     = 400
	DefaultRadius    = 2.0
	DefaultRange     = 120.0
)

// Config is the serializable description of a scenario: world, global
// integration parameters, and per-group populations with their force
// and range rows. Transient particle state is never part of it.
type Config struct {
	World     WorldConfig   `yaml:"world"`
	Dampening float64       `yaml:"dampening"`
	DtScale   float64       `yaml:"dt_scale"`
	Seed      int64         `yaml:"seed"`
	Groups    []GroupConfig `yaml:"groups"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GroupConfig mirrors one registry group. Force and Range are rows in
// group order, the self entry included.
type GroupConfig struct {
	Name    string    `yaml:"name"`
	Color   string    `yaml:"color"`
	Count   int       `yaml:"count"`
	Radius  float64   `yaml:"radius"`
	Running bool      `yaml:"running"`
	Force   []float64 `yaml:"force"`
	Range   []float64 `yaml:"range"`
}

// DefaultConfig returns the three-group "cells" scenario.
func DefaultConfig() *Config {
	return GetPreset("cells")
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		World:     WorldConfig{Width: DefaultWidth, Height: DefaultHeight},
		Dampening: DefaultDampening,
		DtScale:   DefaultDtScale,
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the config against the core invariants before any
// registry is touched, so errors can name groups instead of indices.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("world must have positive extent, got %gx%g", c.World.Width, c.World.Height)
	}
	if c.Dampening <= 0 || c.Dampening > 1 {
		return fmt.Errorf("dampening must be in (0, 1], got %g", c.Dampening)
	}
	n := len(c.Groups)
	for _, g := range c.Groups {
		if g.Radius <= 0 {
			return fmt.Errorf("group %q: radius must be positive, got %g", g.Name, g.Radius)
		}
		if g.Count < 0 {
			return fmt.Errorf("group %q: count must not be negative, got %d", g.Name, g.Count)
		}
		if len(g.Force) != n || len(g.Range) != n {
			return fmt.Errorf("group %q: force/range rows must have %d entries, got %d/%d",
				g.Name, n, len(g.Force), len(g.Range))
		}
		for j, rng := range g.Range {
			if rng < g.Radius {
				return fmt.Errorf("group %q toward %q: %w: range %g, radius %g",
					g.Name, c.Groups[j].Name, life.ErrRangeBelowRadius, rng, g.Radius)
			}
		}
	}
	return nil
}

// Build constructs a validated registry from the config. Nothing is
// returned on error; a half-built registry never escapes.
func (c *Config) Build() (*life.Registry, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	reg := life.NewRegistry(life.Bounds{Width: c.World.Width, Height: c.World.Height}, c.Seed)
	reg.Dampening = c.Dampening
	reg.DtScale = c.DtScale

	ids := make([]life.GroupID, len(c.Groups))
	for i, gc := range c.Groups {
		g := life.NewGroup(gc.Name, gc.Color, gc.Count, gc.Radius)
		g.Running = gc.Running
		id, err := reg.AddGroup(g, nil)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	for i, gc := range c.Groups {
		for j := range c.Groups {
			rule := life.Rule{Force: gc.Force[j], Range: gc.Range[j]}
			if err := reg.SetRule(ids[i], ids[j], rule); err != nil {
				return nil, err
			}
		}
	}
	return reg, nil
}

// FromRegistry snapshots a registry back into a config, dropping all
// transient particle state.
func FromRegistry(reg *life.Registry, seed int64) *Config {
	b := reg.Bounds()
	cfg := &Config{
		World:     WorldConfig{Width: b.Width, Height: b.Height},
		Dampening: reg.Dampening,
		DtScale:   reg.DtScale,
		Seed:      seed,
		Groups:    make([]GroupConfig, reg.Len()),
	}
	forces := reg.ForceTable()
	ranges := reg.RangeTable()
	for i := 0; i < reg.Len(); i++ {
		g := reg.At(i)
		cfg.Groups[i] = GroupConfig{
			Name:    g.Name,
			Color:   g.Color,
			Count:   g.Count,
			Radius:  g.Radius,
			Running: g.Running,
			Force:   forces[i],
			Range:   ranges[i],
		}
	}
	return cfg
}
