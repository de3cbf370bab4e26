package life_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/plife/internal/life"
)

var _ = Describe("Registry", func() {
	var reg *life.Registry

	BeforeEach(func() {
		reg = life.NewRegistry(life.Bounds{Width: 200, Height: 150}, 42)
	})

	addGroup := func(name string, count int, radius float64) life.GroupID {
		id, err := reg.AddGroup(life.NewGroup(name, "#ffffff", count, radius), nil)
		Expect(err).NotTo(HaveOccurred())
		return id
	}

	Describe("adding groups", func() {
		It("keeps every rule table square", func() {
			addGroup("red", 10, 2)
			addGroup("green", 20, 3)
			addGroup("blue", 5, 1)

			Expect(reg.CheckInvariants()).To(Succeed())
			for _, row := range reg.ForceTable() {
				Expect(row).To(HaveLen(3))
			}
			for _, row := range reg.RangeTable() {
				Expect(row).To(HaveLen(3))
			}
		})

		It("materializes the particle population", func() {
			id := addGroup("red", 25, 2)
			g, err := reg.Group(id)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.Particles).To(HaveLen(25))
			for _, p := range g.Particles {
				Expect(p.X).To(And(BeNumerically(">=", 2), BeNumerically("<=", 198)))
				Expect(p.Y).To(And(BeNumerically(">=", 2), BeNumerically("<=", 148)))
				Expect(p.VX).To(BeZero())
				Expect(p.VY).To(BeZero())
			}
		})

		It("rejects a range below the group's radius without mutating state", func() {
			addGroup("red", 10, 2)

			bad := []life.Rule{{Force: 0.5, Range: 30}, {Force: 0.1, Range: 3}}
			_, err := reg.AddGroup(life.NewGroup("green", "#00ff00", 10, 5), bad)
			Expect(err).To(MatchError(life.ErrRangeBelowRadius))

			Expect(reg.Len()).To(Equal(1))
			Expect(reg.CheckInvariants()).To(Succeed())
		})
	})

	Describe("removing groups", func() {
		It("splices the pair entry out of every remaining table", func() {
			a := addGroup("red", 5, 1)
			b := addGroup("green", 5, 1)
			c := addGroup("blue", 5, 1)

			Expect(reg.SetRule(a, c, life.Rule{Force: 0.7, Range: 60})).To(Succeed())
			Expect(reg.RemoveGroup(b)).To(Succeed())

			Expect(reg.Len()).To(Equal(2))
			Expect(reg.CheckInvariants()).To(Succeed())

			// The former index-2 column slides to index 1.
			forces := reg.ForceTable()
			Expect(forces[0]).To(HaveLen(2))
			Expect(forces[0][1]).To(Equal(0.7))
		})

		It("clears the removed group's particles", func() {
			a := addGroup("red", 5, 1)
			g, _ := reg.Group(a)
			Expect(reg.RemoveGroup(a)).To(Succeed())
			Expect(g.Particles).To(BeEmpty())
		})

		It("invalidates the identifier even after the slot is reused", func() {
			a := addGroup("red", 5, 1)
			Expect(reg.RemoveGroup(a)).To(Succeed())

			b := addGroup("green", 5, 1)
			Expect(b).NotTo(Equal(a))

			_, err := reg.Group(a)
			Expect(err).To(MatchError(life.ErrNoSuchGroup))
		})
	})

	Describe("rule edits", func() {
		It("enforces the radius floor against the rule's owner", func() {
			a := addGroup("red", 5, 4)
			b := addGroup("green", 5, 1)

			err := reg.SetRule(a, b, life.Rule{Force: 1, Range: 3})
			Expect(err).To(MatchError(life.ErrRangeBelowRadius))

			var ruleErr *life.RuleError
			Expect(err).To(BeAssignableToTypeOf(ruleErr))

			// The owner's smaller radius makes the same range legal in
			// the opposite direction.
			Expect(reg.SetRule(b, a, life.Rule{Force: 1, Range: 3})).To(Succeed())
		})
	})

	Describe("count reconciliation", func() {
		It("truncates from the end and grows at rest", func() {
			a := addGroup("red", 6, 1)
			g, _ := reg.Group(a)
			head := g.Particles[:3]
			kept := make([]life.Particle, 3)
			copy(kept, head)

			g.Count = 3
			Expect(reg.Reconcile(a)).To(Succeed())
			Expect(g.Particles).To(HaveLen(3))
			Expect(g.Particles).To(Equal(kept))

			g.Count = 8
			Expect(reg.Reconcile(a)).To(Succeed())
			Expect(g.Particles).To(HaveLen(8))
			for _, p := range g.Particles[3:] {
				Expect(p.VX).To(BeZero())
				Expect(p.VY).To(BeZero())
			}
		})
	})
})
