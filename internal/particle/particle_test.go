package particle

import (
	"math"
	"sync/atomic"
	"testing"

	"github.com/tkingovr/pfilter/api"
)

type countingAlways struct {
	keep  bool
	calls atomic.Int64
}

func (c *countingAlways) Keep(*api.Particle) bool {
	c.calls.Add(1)
	return c.keep
}

func electron(energy float64) *api.Particle {
	// massless momentum along x gives energy == |p|
	return &api.Particle{
		Momentum:  api.Vec3{energy, 0, 0},
		Weighting: 1,
		Species:   "e",
		MultiMask: api.SlotActive,
	}
}

func TestEnergy(t *testing.T) {
	p := &api.Particle{Momentum: api.Vec3{3, 0, 4}, Mass: 0}
	if got := p.Energy(); math.Abs(got-5) > 1e-12 {
		t.Errorf("expected energy 5, got %v", got)
	}
	rest := &api.Particle{Mass: 2}
	if got := rest.Energy(); got != 0 {
		t.Errorf("expected zero energy at rest, got %v", got)
	}
}

func TestActive(t *testing.T) {
	for mask, want := range map[uint8]bool{api.SlotEmpty: false, api.SlotActive: true, 2: false, 27: false} {
		p := &api.Particle{MultiMask: mask}
		if got := (Active{}).Keep(p); got != want {
			t.Errorf("mask %d: expected %v, got %v", mask, want, got)
		}
	}
}

func TestBuild_EmptyUserListKeepsActive(t *testing.T) {
	chain, err := Build()
	if err != nil {
		t.Fatal(err)
	}
	if !chain.Keep(electron(0.5)) {
		t.Error("expected active particle to be kept")
	}
	empty := electron(0.5)
	empty.MultiMask = api.SlotEmpty
	if chain.Keep(empty) {
		t.Error("expected empty slot to be rejected")
	}
}

func TestBuild_EnergyAboveRejects(t *testing.T) {
	chain, err := Build(EnergyAbove(1.0))
	if err != nil {
		t.Fatal(err)
	}
	if chain.Keep(electron(0.5)) {
		t.Error("expected low energy particle to be rejected")
	}
	if !chain.Keep(electron(2)) {
		t.Error("expected high energy particle to be kept")
	}
}

func TestBuild_AlwaysFalseStopsChain(t *testing.T) {
	second := &countingAlways{keep: true}
	chain, err := Build(Always(false), second)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		if chain.Keep(electron(float64(i))) {
			t.Fatal("expected reject")
		}
	}
	if second.calls.Load() != 0 {
		t.Errorf("second filter evaluated %d times", second.calls.Load())
	}
}

func TestBuild_Layout(t *testing.T) {
	chain, err := Build(EnergyAbove(1), NewSpeciesIn("e"))
	if err != nil {
		t.Fatal(err)
	}
	want := "and(active, energy>1, species(e), true)"
	if got := chain.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPredicates(t *testing.T) {
	p := &api.Particle{
		Position:  api.Vec3{1, 2, 3},
		Momentum:  api.Vec3{0, 2, 0},
		Weighting: 10,
		Species:   "ion",
		MultiMask: api.SlotActive,
	}

	tests := []struct {
		name string
		f    Filter
		want bool
	}{
		{"energy above", EnergyAbove(1.5), true},
		{"energy above equal", EnergyAbove(2), false},
		{"energy below", EnergyBelow(3), true},
		{"weight above", WeightAbove(10), false},
		{"species match", NewSpeciesIn("e", "ion"), true},
		{"species miss", NewSpeciesIn("e"), false},
		{"species empty", NewSpeciesIn(), false},
		{"inside box", InBox{Min: api.Vec3{0, 0, 0}, Max: api.Vec3{4, 4, 4}}, true},
		{"on box edge", InBox{Min: api.Vec3{1, 2, 3}, Max: api.Vec3{1, 2, 3}}, true},
		{"outside box", InBox{Min: api.Vec3{0, 0, 0}, Max: api.Vec3{4, 4, 2}}, false},
		{"always", Always(true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Keep(p); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestChain_KeepDoesNotAllocate(t *testing.T) {
	chain, err := Build(
		EnergyAbove(0.1),
		NewSpeciesIn("e", "ion"),
		InBox{Min: api.Vec3{-1, -1, -1}, Max: api.Vec3{1, 1, 1}},
		WeightAbove(0),
	)
	if err != nil {
		t.Fatal(err)
	}
	p := electron(2)
	allocs := testing.AllocsPerRun(1000, func() {
		if !chain.Keep(p) {
			t.Fatal("expected keep")
		}
	})
	if allocs != 0 {
		t.Errorf("expected zero allocations, got %v", allocs)
	}
}

func BenchmarkParticleChain(b *testing.B) {
	chain, err := Build(EnergyAbove(1), NewSpeciesIn("e"), WeightAbove(0))
	if err != nil {
		b.Fatal(err)
	}
	particles := []*api.Particle{electron(0.5), electron(2), electron(5)}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chain.Keep(particles[i%len(particles)])
	}
}
