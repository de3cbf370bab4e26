package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/plife/internal/life"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if len(cfg.Groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(cfg.Groups))
	}
	if cfg.Dampening <= 0 || cfg.Dampening > 1 {
		t.Errorf("dampening out of range: %g", cfg.Dampening)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestGetPresetClones(t *testing.T) {
	a := GetPreset("cells")
	if a == nil {
		t.Fatal("expected preset, got nil")
	}
	a.Groups[0].Force[0] = 99

	b := GetPreset("cells")
	if b.Groups[0].Force[0] == 99 {
		t.Error("preset table must not be mutable through a returned config")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Errorf("expected nil for unknown preset, got %+v", cfg)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %v", names)
		}
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.World.Width = 0 }},
		{"zero dampening", func(c *Config) { c.Dampening = 0 }},
		{"dampening above one", func(c *Config) { c.Dampening = 1.5 }},
		{"negative count", func(c *Config) { c.Groups[0].Count = -1 }},
		{"zero radius", func(c *Config) { c.Groups[0].Radius = 0 }},
		{"short force row", func(c *Config) { c.Groups[1].Force = c.Groups[1].Force[:1] }},
		{"range below radius", func(c *Config) { c.Groups[2].Range[0] = 0.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateRangeError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Groups[0].Range[1] = 0.5

	err := cfg.Validate()
	if !errors.Is(err, life.ErrRangeBelowRadius) {
		t.Errorf("expected ErrRangeBelowRadius, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 9

	reg, err := cfg.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if reg.Len() != len(cfg.Groups) {
		t.Fatalf("expected %d groups, got %d", len(cfg.Groups), reg.Len())
	}
	if err := reg.CheckInvariants(); err != nil {
		t.Fatalf("invariants: %v", err)
	}

	forces := reg.ForceTable()
	for i, g := range cfg.Groups {
		for j, f := range g.Force {
			if forces[i][j] != f {
				t.Errorf("forces[%d][%d] = %g, want %g", i, j, forces[i][j], f)
			}
		}
		if got := reg.At(i); len(got.Particles) != g.Count {
			t.Errorf("group %q: %d particles, want %d", g.Name, len(got.Particles), g.Count)
		}
	}
}

func TestBuildRejectsInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Groups[0].Range[0] = 0.1

	if _, err := cfg.Build(); err == nil {
		t.Error("expected build failure")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 1234

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Seed != cfg.Seed || len(loaded.Groups) != len(cfg.Groups) {
		t.Fatalf("round trip changed shape: %+v", loaded)
	}
	for i := range cfg.Groups {
		if loaded.Groups[i].Name != cfg.Groups[i].Name {
			t.Errorf("group %d name: got %q, want %q", i, loaded.Groups[i].Name, cfg.Groups[i].Name)
		}
		for j := range cfg.Groups[i].Force {
			if loaded.Groups[i].Force[j] != cfg.Groups[i].Force[j] {
				t.Errorf("group %d force %d drifted", i, j)
			}
		}
	}
}

func TestFromRegistryRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	reg, err := cfg.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	back := FromRegistry(reg, cfg.Seed)
	if len(back.Groups) != len(cfg.Groups) {
		t.Fatalf("group count drifted: %d", len(back.Groups))
	}
	for i := range cfg.Groups {
		if back.Groups[i].Name != cfg.Groups[i].Name || back.Groups[i].Count != cfg.Groups[i].Count {
			t.Errorf("group %d metadata drifted: %+v", i, back.Groups[i])
		}
		for j := range cfg.Groups[i].Force {
			if back.Groups[i].Force[j] != cfg.Groups[i].Force[j] {
				t.Errorf("group %d force %d drifted", i, j)
			}
		}
	}
}
