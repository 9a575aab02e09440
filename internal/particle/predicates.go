package particle

import (
	"fmt"
	"strings"

	"github.com/tkingovr/pfilter/api"
)

// Always returns the same decision for every particle.
type Always bool

func (a Always) Keep(*api.Particle) bool { return bool(a) }
func (a Always) String() string          { return fmt.Sprintf("always(%t)", bool(a)) }

// EnergyAbove keeps particles with kinetic energy strictly above the threshold.
type EnergyAbove float64

func (e EnergyAbove) Keep(p *api.Particle) bool { return p.Energy() > float64(e) }
func (e EnergyAbove) String() string            { return fmt.Sprintf("energy>%g", float64(e)) }

// EnergyBelow keeps particles with kinetic energy strictly below the threshold.
type EnergyBelow float64

func (e EnergyBelow) Keep(p *api.Particle) bool { return p.Energy() < float64(e) }
func (e EnergyBelow) String() string            { return fmt.Sprintf("energy<%g", float64(e)) }

// WeightAbove keeps macro-particles representing more than the given number
// of real particles.
type WeightAbove float64

func (w WeightAbove) Keep(p *api.Particle) bool { return p.Weighting > float64(w) }
func (w WeightAbove) String() string            { return fmt.Sprintf("weighting>%g", float64(w)) }

// SpeciesIn keeps particles of any of the listed species.
type SpeciesIn struct {
	names []string
}

func NewSpeciesIn(names ...string) SpeciesIn {
	return SpeciesIn{names: append([]string(nil), names...)}
}

func (s SpeciesIn) Keep(p *api.Particle) bool {
	for _, n := range s.names {
		if p.Species == n {
			return true
		}
	}
	return false
}

func (s SpeciesIn) String() string { return "species(" + strings.Join(s.names, ",") + ")" }

// InBox keeps particles whose position lies inside [Min, Max] on every axis.
type InBox struct {
	Min, Max api.Vec3
}

func (b InBox) Keep(p *api.Particle) bool {
	for i := 0; i < 3; i++ {
		if p.Position[i] < b.Min[i] || p.Position[i] > b.Max[i] {
			return false
		}
	}
	return true
}

func (b InBox) String() string { return fmt.Sprintf("box(%v..%v)", b.Min, b.Max) }
