package life

import "math/rand"

// Bounds is the world rectangle particles are confined to. The host
// updates it on resize, between frames.
type Bounds struct {
	Width  float64
	Height float64
}

const (
	// DefaultDampening is the per-pass velocity multiplier.
	DefaultDampening = 0.5

	// MaxFrameDelta caps the per-frame timestep. Long frame gaps would
	// otherwise let a single step carry particles through the walls.
	MaxFrameDelta = 20.0
)

type slot struct {
	gen   uint32
	group *Group
}

// Registry is an arena of groups with their pairwise rule tables. Rules
// are kept per group keyed by GroupID, so removals can never leave an
// index silently pointing at the wrong group; ordered index views are
// reconstructed at the boundary.
//
// Registry is not safe for concurrent use. All structural edits must
// happen between calls to Step.
type Registry struct {
	slots []slot
	free  []uint32
	order []GroupID

	bounds    Bounds
	Dampening float64
	DtScale   float64

	computations int
	rng          *rand.Rand
}

// NewRegistry returns an empty registry over the given bounds. The seed
// drives particle placement during reconciliation.
func NewRegistry(bounds Bounds, seed int64) *Registry {
	return &Registry{
		bounds:    bounds,
		Dampening: DefaultDampening,
		DtScale:   1.0,
		rng:       rand.New(rand.NewSource(seed)),
	}
}

func (r *Registry) Len() int { return len(r.order) }

// IDs returns the group identifiers in registry order.
func (r *Registry) IDs() []GroupID {
	ids := make([]GroupID, len(r.order))
	copy(ids, r.order)
	return ids
}

func (r *Registry) get(id GroupID) *Group {
	s := id.slot()
	if int(s) >= len(r.slots) {
		return nil
	}
	if r.slots[s].gen != id.gen() {
		return nil
	}
	return r.slots[s].group
}

// Group resolves an identifier, failing on stale or unknown IDs.
func (r *Registry) Group(id GroupID) (*Group, error) {
	g := r.get(id)
	if g == nil {
		return nil, ErrNoSuchGroup
	}
	return g, nil
}

// At returns the group at the given registry index, or nil when out of
// range.
func (r *Registry) At(i int) *Group {
	if i < 0 || i >= len(r.order) {
		return nil
	}
	return r.get(r.order[i])
}

// IndexOf returns the registry index of id, or -1 when not registered.
func (r *Registry) IndexOf(id GroupID) int {
	for i, o := range r.order {
		if o == id {
			return i
		}
	}
	return -1
}

func (r *Registry) Bounds() Bounds     { return r.bounds }
func (r *Registry) SetBounds(b Bounds) { r.bounds = b }

// AddGroup registers g. The rules slice is the group's row in registry
// order with the self entry last; nil means zero force with range equal
// to the group's own radius for every pair. Validation is all-or-nothing:
// no table is touched unless every range clears the group's radius.
//
// Every existing group gains a default rule toward the new group (zero
// force, range equal to its own radius), keeping all tables square.
func (r *Registry) AddGroup(g *Group, rules []Rule) (GroupID, error) {
	n := len(r.order)
	if rules == nil {
		rules = make([]Rule, n+1)
		for i := range rules {
			rules[i] = Rule{Force: 0, Range: g.Radius}
		}
	}
	if len(rules) != n+1 {
		return 0, &TableError{Group: n, Rules: len(rules), Groups: n + 1}
	}
	for i, rule := range rules {
		if rule.Range < g.Radius {
			return 0, &RuleError{Target: n, Source: i, Range: rule.Range, Radius: g.Radius}
		}
	}

	var s uint32
	if len(r.free) > 0 {
		s = r.free[len(r.free)-1]
		r.free = r.free[:len(r.free)-1]
	} else {
		s = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}
	id := makeID(s, r.slots[s].gen)
	r.slots[s].group = g

	g.rules = make(map[GroupID]Rule, n+1)
	for i, existing := range r.order {
		g.rules[existing] = rules[i]
	}
	g.rules[id] = rules[n]

	for _, existing := range r.order {
		eg := r.get(existing)
		eg.rules[id] = Rule{Force: 0, Range: eg.Radius}
	}

	r.order = append(r.order, id)
	r.Reconcile(id)
	return id, nil
}

// RemoveGroup deletes a group, clears its particles, and drops its entry
// from every remaining group's table. Index alignment holds before and
// after; there is no intermediate observable state.
func (r *Registry) RemoveGroup(id GroupID) error {
	g := r.get(id)
	if g == nil {
		return ErrNoSuchGroup
	}

	i := r.IndexOf(id)
	r.order = append(r.order[:i], r.order[i+1:]...)

	for _, remaining := range r.order {
		delete(r.get(remaining).rules, id)
	}

	g.Particles = nil
	g.rules = nil

	s := id.slot()
	r.slots[s].group = nil
	r.slots[s].gen++
	r.free = append(r.free, s)
	return nil
}

// SetRule replaces the rule target applies toward source.
func (r *Registry) SetRule(target, source GroupID, rule Rule) error {
	tg := r.get(target)
	if tg == nil || r.get(source) == nil {
		return ErrNoSuchGroup
	}
	if rule.Range < tg.Radius {
		return &RuleError{
			Target: r.IndexOf(target),
			Source: r.IndexOf(source),
			Range:  rule.Range,
			Radius: tg.Radius,
		}
	}
	tg.rules[source] = rule
	return nil
}

// Reconcile adjusts a group's particle collection to its desired Count:
// excess particles are truncated from the end, missing ones spawn at
// uniformly random positions inside the bounds with zero velocity.
func (r *Registry) Reconcile(id GroupID) error {
	g := r.get(id)
	if g == nil {
		return ErrNoSuchGroup
	}
	count := g.Count
	if count < 0 {
		count = 0
	}
	if len(g.Particles) > count {
		g.Particles = g.Particles[:count]
		return nil
	}
	for len(g.Particles) < count {
		g.Particles = append(g.Particles, Particle{
			X: r.spawn(g.Radius, r.bounds.Width),
			Y: r.spawn(g.Radius, r.bounds.Height),
		})
	}
	return nil
}

func (r *Registry) spawn(radius, extent float64) float64 {
	span := extent - 2*radius
	if span <= 0 {
		return extent / 2
	}
	return radius + r.rng.Float64()*span
}

// CheckInvariants verifies that every group's rule table has exactly one
// entry per registered group. A failure indicates a registry bug.
func (r *Registry) CheckInvariants() error {
	n := len(r.order)
	for i, id := range r.order {
		g := r.get(id)
		if g == nil || len(g.rules) != n {
			rules := 0
			if g != nil {
				rules = len(g.rules)
			}
			return &TableError{Group: i, Rules: rules, Groups: n}
		}
		for _, other := range r.order {
			if _, ok := g.rules[other]; !ok {
				return &TableError{Group: i, Rules: len(g.rules), Groups: n}
			}
		}
	}
	return nil
}

// ForceTable returns the force matrix as an index-ordered view,
// row per target group.
func (r *Registry) ForceTable() [][]float64 {
	return r.table(func(rule Rule) float64 { return rule.Force })
}

// RangeTable returns the range matrix as an index-ordered view.
func (r *Registry) RangeTable() [][]float64 {
	return r.table(func(rule Rule) float64 { return rule.Range })
}

func (r *Registry) table(pick func(Rule) float64) [][]float64 {
	t := make([][]float64, len(r.order))
	for i, id := range r.order {
		g := r.get(id)
		row := make([]float64, len(r.order))
		for j, other := range r.order {
			row[j] = pick(g.rules[other])
		}
		t[i] = row
	}
	return t
}
