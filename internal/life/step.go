package life

// Step advances the simulation by one frame. dt is the host's elapsed
// frame delta; it is capped at MaxFrameDelta before the global DtScale
// multiplier applies.
//
// For every running target group, each source group with a non-zero
// force is swept in registry order. A zero-force pair is skipped
// outright rather than paying for a null sweep.
func (r *Registry) Step(dt float64) {
	if dt > MaxFrameDelta {
		dt = MaxFrameDelta
	}
	dt *= r.DtScale

	r.computations = 0
	for _, ti := range r.order {
		target := r.get(ti)
		if !target.Running {
			continue
		}
		for _, si := range r.order {
			rule := target.rules[si]
			if rule.Force == 0 {
				continue
			}
			source := r.get(si)
			r.interact(target, source, rule, dt)
			r.computations += len(target.Particles) * len(source.Particles)
		}
	}
}

// interact applies one group-pair pass: accumulate forces from every
// source particle, then immediately integrate and constrain.
//
// The reset-accumulate-integrate sequence runs once per interacting
// source group, so a target interacting with several groups integrates
// several partial updates per frame. This ordering is deliberate; it
// measurably changes trajectories versus a single end-of-frame
// integration and must not be "fixed".
func (r *Registry) interact(target, source *Group, rule Rule, dt float64) {
	width, height := r.bounds.Width, r.bounds.Height
	for i := range target.Particles {
		a := &target.Particles[i]
		a.AX, a.AY = 0, 0
		for j := range source.Particles {
			Accumulate(a, &source.Particles[j], rule.Force, rule.Range, target.Radius)
		}
		a.VX += dt * a.AX
		a.VY += dt * a.AY
		a.VX *= r.Dampening
		a.VY *= r.Dampening
		a.X += a.VX
		a.Y += a.VY
		Reflect(a, target.Radius, width, height)
	}
}

// ComputationsPerFrame reports the particle-pair count of the most
// recent Step: the sum of n_target*n_source over all executed pairs.
// Hosts can use it for adaptive quality or telemetry.
func (r *Registry) ComputationsPerFrame() int { return r.computations }
