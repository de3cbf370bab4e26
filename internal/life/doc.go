// Package life provides the particle-life simulation core.
//
// The package defines the data model and the per-frame update step:
//
//   - [Particle]: position, velocity and accumulated acceleration
//   - [Group]: a population of particles plus its pairwise interaction rules
//   - [Registry]: arena of groups with index-aligned rule tables
//   - [Registry.Step]: the O(N²) pairwise force integration for one frame
//
// Forces between groups are directional: the rule a group holds toward a
// source group applies only to its own particles. A positive force pulls
// toward the source, a negative force pushes away, and inside a group's
// particle radius a fixed hard-core repulsion applies regardless of the
// configured sign.
//
// # Frame Model
//
// The core is frame-driven and single-threaded: the host calls
// [Registry.Step] once per frame with the elapsed delta. Structural edits
// (adding or removing groups, rule changes, count changes) must happen
// strictly between frames; the registry takes no locks.
package life
