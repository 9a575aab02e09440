package api

import "math"

// Vec3 is a three component vector (x, y, z).
type Vec3 [3]float64

// Norm2 returns the squared length of v.
func (v Vec3) Norm2() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Multi-mask values of a particle slot.
const (
	// SlotEmpty marks a slot without a particle.
	SlotEmpty uint8 = 0
	// SlotActive marks a slot holding a particle owned by this domain.
	SlotActive uint8 = 1
	// Values above SlotActive mark particles leaving towards a neighbour.
)

// Particle is one macro-particle record as stored in a frame.
// Momentum is per real particle in normalized units (c = 1).
type Particle struct {
	Position  Vec3    `json:"position"`
	Momentum  Vec3    `json:"momentum"`
	Mass      float64 `json:"mass"`
	Charge    float64 `json:"charge"`
	Weighting float64 `json:"weighting"`
	Species   string  `json:"species"`
	MultiMask uint8   `json:"multi_mask"`
}

// Energy returns the kinetic energy sqrt(p^2 + m^2) - m.
func (p *Particle) Energy() float64 {
	return math.Sqrt(p.Momentum.Norm2()+p.Mass*p.Mass) - p.Mass
}
