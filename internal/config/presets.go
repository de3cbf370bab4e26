package config

import "sort"

// Presets are hand-tuned scenarios. Rows are in group order with the
// self entry included.
var presets = map[string]*Config{
	"cells": {
		World:     WorldConfig{Width: DefaultWidth, Height: DefaultHeight},
		Dampening: DefaultDampening,
		DtScale:   DefaultDtScale,
		Groups: []GroupConfig{
			{
				Name: "green", Color: "#2dd55b", Count: 500, Radius: 2, Running: true,
				Force: []float64{-0.32, -0.17, 0.34},
				Range: []float64{180, 80, 180},
			},
			{
				Name: "red", Color: "#ff4053", Count: 500, Radius: 2, Running: true,
				Force: []float64{-0.34, -0.10, 0},
				Range: []float64{180, 100, 80},
			},
			{
				Name: "yellow", Color: "#ffd534", Count: 200, Radius: 2, Running: true,
				Force: []float64{-0.20, 0, 0.15},
				Range: []float64{120, 80, 100},
			},
		},
	},
	"chase": {
		World:     WorldConfig{Width: DefaultWidth, Height: DefaultHeight},
		Dampening: DefaultDampening,
		DtScale:   DefaultDtScale,
		Groups: []GroupConfig{
			{
				Name: "hunter", Color: "#ff4053", Count: 200, Radius: 2, Running: true,
				Force: []float64{-0.05, 0.55, 0},
				Range: []float64{60, 220, 2},
			},
			{
				Name: "prey", Color: "#2dd55b", Count: 400, Radius: 2, Running: true,
				Force: []float64{-0.45, -0.08, 0},
				Range: []float64{160, 50, 2},
			},
			{
				Name: "drift", Color: "#6a64ff", Count: 100, Radius: 3, Running: true,
				Force: []float64{0.12, -0.12, 0.05},
				Range: []float64{140, 140, 90},
			},
		},
	},
	"orbit": {
		World:     WorldConfig{Width: DefaultWidth, Height: DefaultHeight},
		Dampening: 0.6,
		DtScale:   DefaultDtScale,
		Groups: []GroupConfig{
			{
				Name: "core", Color: "#ffd534", Count: 60, Radius: 4, Running: true,
				Force: []float64{0.25, -0.05},
				Range: []float64{200, 120},
			},
			{
				Name: "shell", Color: "#4dc6ff", Count: 600, Radius: 2, Running: true,
				Force: []float64{0.65, -0.22},
				Range: []float64{260, 40},
			},
		},
	},
	"snakes": {
		World:     WorldConfig{Width: DefaultWidth, Height: DefaultHeight},
		Dampening: DefaultDampening,
		DtScale:   DefaultDtScale,
		Groups: []GroupConfig{
			{
				Name: "red", Color: "#ff4053", Count: 250, Radius: 2, Running: true,
				Force: []float64{0.12, 0.42, 0, 0},
				Range: []float64{90, 160, 2, 2},
			},
			{
				Name: "green", Color: "#2dd55b", Count: 250, Radius: 2, Running: true,
				Force: []float64{0, 0.12, 0.42, 0},
				Range: []float64{2, 90, 160, 2},
			},
			{
				Name: "blue", Color: "#4dc6ff", Count: 250, Radius: 2, Running: true,
				Force: []float64{0, 0, 0.12, 0.42},
				Range: []float64{2, 2, 90, 160},
			},
			{
				Name: "white", Color: "#f4f5f8", Count: 250, Radius: 2, Running: true,
				Force: []float64{0.42, 0, 0, 0.12},
				Range: []float64{160, 2, 2, 90},
			},
		},
	},
}

// GetPreset returns a deep copy of a named preset, or nil when unknown.
// Copies keep callers from mutating the shared table through the
// returned config.
func GetPreset(name string) *Config {
	cfg, ok := presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the config.
func (c *Config) Clone() *Config {
	out := *c
	out.Groups = make([]GroupConfig, len(c.Groups))
	for i, g := range c.Groups {
		cg := g
		cg.Force = append([]float64(nil), g.Force...)
		cg.Range = append([]float64(nil), g.Range...)
		out.Groups[i] = cg
	}
	return &out
}
