// Package metrics provides per-frame observations over a running
// registry: pairwise work done, kinetic energy, and group spread.
package metrics

import "github.com/san-kum/plife/internal/life"

// Computations tracks the particle-pair count per frame, the quantity a
// host would watch for adaptive quality.
type Computations struct {
	last    float64
	total   float64
	max     float64
	samples int
}

func NewComputations() *Computations { return &Computations{} }

func (c *Computations) Name() string { return "computations" }

func (c *Computations) Observe(reg *life.Registry, t float64) {
	c.last = float64(reg.ComputationsPerFrame())
	c.total += c.last
	if c.last > c.max {
		c.max = c.last
	}
	c.samples++
}

func (c *Computations) Last() float64 { return c.last }

// Value reports the mean pair count across observed frames.
func (c *Computations) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.total / float64(c.samples)
}

// Max reports the worst frame seen.
func (c *Computations) Max() float64 { return c.max }

func (c *Computations) Reset() {
	c.last = 0
	c.total = 0
	c.max = 0
	c.samples = 0
}
