package particle

import (
	"errors"
	"testing"

	"github.com/tkingovr/pfilter/api"
	"github.com/tkingovr/pfilter/internal/filter"
)

func TestExpr_Keep(t *testing.T) {
	e, err := NewExpr(`energy > 1 && species == "e"`)
	if err != nil {
		t.Fatal(err)
	}
	if !e.Keep(electron(2)) {
		t.Error("expected keep for energetic electron")
	}
	if e.Keep(electron(0.5)) {
		t.Error("expected reject for slow electron")
	}
	ion := electron(2)
	ion.Species = "ion"
	if e.Keep(ion) {
		t.Error("expected reject for ion")
	}
}

func TestExpr_Position(t *testing.T) {
	e, err := NewExpr(`x < 0 || z >= 10`)
	if err != nil {
		t.Fatal(err)
	}
	p := &api.Particle{Position: api.Vec3{1, 0, 10}}
	if !e.Keep(p) {
		t.Error("expected keep")
	}
	p.Position[2] = 9
	if e.Keep(p) {
		t.Error("expected reject")
	}
}

func TestExpr_CompileErrors(t *testing.T) {
	for _, src := range []string{
		`energy +`,
		`temperature > 5`,
		`energy * 2`,
	} {
		if _, err := NewExpr(src); err == nil {
			t.Errorf("expected compile error for %q", src)
		}
	}
}

func TestExpr_InChain(t *testing.T) {
	e, err := NewExpr(`weighting >= 1`)
	if err != nil {
		t.Fatal(err)
	}
	chain, err := Build(EnergyAbove(1), e)
	if err != nil {
		t.Fatal(err)
	}
	if !chain.Keep(electron(3)) {
		t.Error("expected keep")
	}
	if got := chain.String(); got != "and(active, energy>1, expr(weighting >= 1), true)" {
		t.Errorf("unexpected description %q", got)
	}
}

func TestBuild_RejectsNilExpr(t *testing.T) {
	for _, f := range []Filter{(*Expr)(nil), filter.Not[*api.Particle]{}} {
		_, err := Build(f)
		var nilErr *filter.NilFilterError
		if !errors.As(err, &nilErr) {
			t.Fatalf("expected NilFilterError for %T, got %v", f, err)
		}
		if nilErr.Index != 0 {
			t.Errorf("expected index 0, got %d", nilErr.Index)
		}
	}
}
