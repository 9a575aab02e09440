package particle

import (
	"github.com/tkingovr/pfilter/api"
	"github.com/tkingovr/pfilter/internal/filter"
)

// Filter is a predicate over particle records.
type Filter = filter.Filter[*api.Particle]

// Chain is a composed particle filter.
type Chain = filter.Chain[*api.Particle]

// Active keeps particles that occupy their slot and belong to the local
// domain. Every chain built by NewFactory starts with it.
type Active struct{}

func (Active) Keep(p *api.Particle) bool { return p.MultiMask == api.SlotActive }
func (Active) String() string            { return "active" }

// NewFactory returns the factory for particle chains: Active first, the
// caller's filters next and filter.True last.
func NewFactory() *filter.Factory[*api.Particle] {
	f, err := filter.NewFactory[*api.Particle](Active{})
	if err != nil {
		// Active{} is never nil
		panic(err)
	}
	return f
}

// Build is shorthand for NewFactory().Build(user...).
func Build(user ...Filter) (*Chain, error) {
	return NewFactory().Build(user...)
}
