package life

import "math"

// epsilon keeps the distance strictly positive when two particles
// coincide, including a particle paired against itself.
const epsilon = 1e-6

// hardCoreStrength scales the short-range repulsion applied below a
// group's particle radius, independent of the configured pair force.
const hardCoreStrength = 6.0

// Particle is a point mass. Acceleration is scratch state: it is zeroed
// at the start of every group-pair pass and accumulated within it.
type Particle struct {
	X, Y   float64
	VX, VY float64
	AX, AY float64
}

// Accumulate adds the acceleration contribution on a from b.
//
// Below the owning group's radius a fixed repulsion of magnitude
// hardCoreStrength/d applies regardless of the sign of f. Between radius
// and maxDistance the contribution is f/d along the separation vector,
// with positive f pulling a toward b. Beyond maxDistance there is no
// contribution. Allocation-free; callable with a == b.
func Accumulate(a, b *Particle, f, maxDistance, radius float64) {
	dx := a.X - b.X
	dy := a.Y - b.Y
	d := math.Sqrt(dx*dx+dy*dy+epsilon) + epsilon

	switch {
	case d < radius:
		k := hardCoreStrength / d
		a.AX += k * dx
		a.AY += k * dy
	case d < maxDistance:
		k := f / d
		a.AX -= k * dx
		a.AY -= k * dy
	}
}

// Reflect constrains p to [radius, width-radius] × [radius, height-radius],
// flipping the corresponding velocity component on contact. Speed is
// preserved; only direction changes.
func Reflect(p *Particle, radius, width, height float64) {
	if p.X < radius {
		p.X = radius
		p.VX = -p.VX
	} else if p.X > width-radius {
		p.X = width - radius
		p.VX = -p.VX
	}
	if p.Y < radius {
		p.Y = radius
		p.VY = -p.VY
	} else if p.Y > height-radius {
		p.Y = height - radius
		p.VY = -p.VY
	}
}
