// Package scenario generates and perturbs group configurations:
// independent uniform force matrices, perlin-correlated "smooth"
// matrices, and small mutations for evolving a running scenario.
package scenario

import (
	"fmt"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/san-kum/plife/internal/config"
)

var palette = []struct{ name, color string }{
	{"red", "#ff4053"},
	{"green", "#2dd55b"},
	{"blue", "#4dc6ff"},
	{"yellow", "#ffd534"},
	{"violet", "#6a64ff"},
	{"rose", "#ff8dd4"},
	{"cyan", "#2de0d0"},
	{"amber", "#ff9f2e"},
}

type Options struct {
	Groups   int
	Count    int // particles per group
	Radius   float64
	MaxForce float64
	MinRange float64
	MaxRange float64
	// Smooth correlates neighboring matrix entries through perlin noise
	// instead of drawing them independently.
	Smooth bool
}

func DefaultOptions() Options {
	return Options{
		Groups:   4,
		Count:    config.DefaultCount,
		Radius:   config.DefaultRadius,
		MaxForce: 1.0,
		MinRange: 40,
		MaxRange: 220,
	}
}

// Random draws a full scenario. Force entries are uniform in
// [-MaxForce, MaxForce], ranges uniform in [MinRange, MaxRange]; the
// range floor against the radius is enforced by construction.
func Random(rng *rand.Rand, opts Options) (*config.Config, error) {
	if opts.Groups < 1 {
		return nil, fmt.Errorf("scenario needs at least one group, got %d", opts.Groups)
	}
	if opts.MinRange < opts.Radius {
		opts.MinRange = opts.Radius
	}
	if opts.MaxRange < opts.MinRange {
		opts.MaxRange = opts.MinRange
	}

	var noise *perlin.Perlin
	if opts.Smooth {
		noise = perlin.NewPerlin(2, 2, 3, rng.Int63())
	}

	cfg := &config.Config{
		World:     config.WorldConfig{Width: config.DefaultWidth, Height: config.DefaultHeight},
		Dampening: config.DefaultDampening,
		DtScale:   config.DefaultDtScale,
		Seed:      rng.Int63(),
		Groups:    make([]config.GroupConfig, opts.Groups),
	}

	for i := 0; i < opts.Groups; i++ {
		name, color := groupIdentity(i)
		g := config.GroupConfig{
			Name:    name,
			Color:   color,
			Count:   opts.Count,
			Radius:  opts.Radius,
			Running: true,
			Force:   make([]float64, opts.Groups),
			Range:   make([]float64, opts.Groups),
		}
		for j := 0; j < opts.Groups; j++ {
			if noise != nil {
				// Noise2D stays roughly within ±0.7; stretch toward the
				// full force interval and clamp.
				g.Force[j] = clamp(noise.Noise2D(float64(i)*0.37+0.13, float64(j)*0.37+0.13)*1.5, -1, 1) * opts.MaxForce
			} else {
				g.Force[j] = (rng.Float64()*2 - 1) * opts.MaxForce
			}
			g.Range[j] = opts.MinRange + rng.Float64()*(opts.MaxRange-opts.MinRange)
		}
		cfg.Groups[i] = g
	}
	return cfg, nil
}

// Mutate perturbs every force entry by up to ±amount and every range by
// up to ±10%, keeping forces within [-1, 1] and ranges above each
// group's radius. The config is edited in place.
func Mutate(cfg *config.Config, rng *rand.Rand, amount float64) {
	for i := range cfg.Groups {
		g := &cfg.Groups[i]
		for j := range g.Force {
			g.Force[j] = clamp(g.Force[j]+(rng.Float64()*2-1)*amount, -1, 1)
			g.Range[j] *= 1 + (rng.Float64()*2-1)*0.1
			if g.Range[j] < g.Radius {
				g.Range[j] = g.Radius
			}
		}
	}
}

func groupIdentity(i int) (string, string) {
	p := palette[i%len(palette)]
	if i < len(palette) {
		return p.name, p.color
	}
	return fmt.Sprintf("%s-%d", p.name, i/len(palette)+1), p.color
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
