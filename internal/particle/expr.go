package particle

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/tkingovr/pfilter/api"
)

// exprEnv is the set of variables visible to particle expressions.
type exprEnv struct {
	X         float64 `expr:"x"`
	Y         float64 `expr:"y"`
	Z         float64 `expr:"z"`
	Px        float64 `expr:"px"`
	Py        float64 `expr:"py"`
	Pz        float64 `expr:"pz"`
	Energy    float64 `expr:"energy"`
	Mass      float64 `expr:"mass"`
	Charge    float64 `expr:"charge"`
	Weighting float64 `expr:"weighting"`
	Species   string  `expr:"species"`
}

func envOf(p *api.Particle) exprEnv {
	return exprEnv{
		X: p.Position[0], Y: p.Position[1], Z: p.Position[2],
		Px: p.Momentum[0], Py: p.Momentum[1], Pz: p.Momentum[2],
		Energy:    p.Energy(),
		Mass:      p.Mass,
		Charge:    p.Charge,
		Weighting: p.Weighting,
		Species:   p.Species,
	}
}

// Expr keeps particles for which a boolean expression holds, e.g.
// `energy > 2 && species == "e"`. Unlike the other predicates it allocates
// on every evaluation.
type Expr struct {
	source  string
	program *vm.Program
}

// NewExpr compiles source against the particle variables. Unknown variables
// and non-boolean results are compile errors.
func NewExpr(source string) (*Expr, error) {
	program, err := expr.Compile(source, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compiling expression %q: %w", source, err)
	}
	return &Expr{source: source, program: program}, nil
}

// Keep rejects the particle if the expression fails at run time.
func (e *Expr) Keep(p *api.Particle) bool {
	out, err := vm.Run(e.program, envOf(p))
	if err != nil {
		return false
	}
	keep, ok := out.(bool)
	return ok && keep
}

func (e *Expr) String() string { return "expr(" + e.source + ")" }
