package metrics

import "github.com/san-kum/plife/internal/life"

// KineticEnergy sums ½v² over every particle each frame. Unit mass is
// assumed; particles carry none.
type KineticEnergy struct {
	last    float64
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(reg *life.Registry, t float64) {
	e := 0.0
	for i := 0; i < reg.Len(); i++ {
		for _, p := range reg.At(i).Particles {
			e += 0.5 * (p.VX*p.VX + p.VY*p.VY)
		}
	}
	k.last = e
	k.total += e
	k.samples++
}

func (k *KineticEnergy) Last() float64 { return k.last }

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.last = 0
	k.total = 0
	k.samples = 0
}
