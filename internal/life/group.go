package life

// GroupID is a stable generational handle for a registry slot. IDs stay
// valid across removals of other groups; a removed group's ID is never
// reused. The zero value never names a live group.
type GroupID uint64

func makeID(slot, gen uint32) GroupID {
	return GroupID(uint64(gen)<<32 | uint64(slot))
}

func (id GroupID) slot() uint32 { return uint32(id) }
func (id GroupID) gen() uint32  { return uint32(id >> 32) }

// Rule is the interaction one group applies against one source group:
// a signed strength and a cutoff distance.
type Rule struct {
	Force float64
	Range float64
}

// Group owns a population of particles and the rules its particles obey
// toward every group in the registry, itself included. Rules are keyed
// internally by GroupID; index-aligned views are exposed through the
// registry.
type Group struct {
	Name    string
	Color   string // hex color identity, consumed by presentation only
	Count   int    // desired population; reconciled lazily
	Radius  float64
	Running bool

	Particles []Particle

	rules map[GroupID]Rule
}

// NewGroup returns a running group with no particles and no rules.
// Particles materialize when the group is added to a registry.
func NewGroup(name, color string, count int, radius float64) *Group {
	return &Group{
		Name:    name,
		Color:   color,
		Count:   count,
		Radius:  radius,
		Running: true,
		rules:   make(map[GroupID]Rule),
	}
}

// RuleToward returns the rule this group applies toward the given group.
func (g *Group) RuleToward(id GroupID) (Rule, bool) {
	r, ok := g.rules[id]
	return r, ok
}
