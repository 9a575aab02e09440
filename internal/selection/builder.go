package selection

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tkingovr/pfilter/api"
	"github.com/tkingovr/pfilter/internal/config"
	"github.com/tkingovr/pfilter/internal/filter"
	"github.com/tkingovr/pfilter/internal/particle"
	"github.com/tkingovr/pfilter/internal/policy"
)

// ChainConfig holds what is needed to build a particle chain.
type ChainConfig struct {
	Filters []config.FilterSpec
	// Admission, when set, must allow every spec before it is built.
	Admission policy.Engine
	Logger    *slog.Logger
}

// BuildChain turns the configured specs into filters and composes them
// behind the default Active filter.
func BuildChain(ctx context.Context, cfg ChainConfig) (*particle.Chain, error) {
	b := &builder{
		factory:   particle.NewFactory(),
		admission: cfg.Admission,
	}
	for i := range cfg.Filters {
		if err := config.ValidateSpec(&cfg.Filters[i]); err != nil {
			return nil, fmt.Errorf("filter %d: %w", i, err)
		}
	}
	user, err := b.buildAll(ctx, cfg.Filters, 0)
	if err != nil {
		return nil, err
	}
	chain, err := b.factory.Build(user...)
	if err != nil {
		return nil, fmt.Errorf("composing chain: %w", err)
	}

	if cfg.Logger != nil {
		cfg.Logger.Debug("filter chain composed",
			"chain", chain.String(),
			"user_filters", len(user),
			"length", chain.Len(),
		)
	}
	return chain, nil
}

type builder struct {
	factory   *filter.Factory[*api.Particle]
	admission policy.Engine
}

func (b *builder) buildAll(ctx context.Context, specs []config.FilterSpec, depth int) ([]particle.Filter, error) {
	out := make([]particle.Filter, 0, len(specs))
	for i := range specs {
		f, err := b.build(ctx, &specs[i], depth)
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s): %w", i, specs[i].Type, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func (b *builder) build(ctx context.Context, spec *config.FilterSpec, depth int) (particle.Filter, error) {
	if err := b.admit(ctx, spec, depth); err != nil {
		return nil, err
	}

	switch spec.Type {
	case config.TypeAlways:
		return particle.Always(*spec.Keep), nil
	case config.TypeEnergyAbove:
		return particle.EnergyAbove(*spec.Value), nil
	case config.TypeEnergyBelow:
		return particle.EnergyBelow(*spec.Value), nil
	case config.TypeWeightAbove:
		return particle.WeightAbove(*spec.Value), nil
	case config.TypeSpecies:
		return particle.NewSpeciesIn(spec.Species...), nil
	case config.TypeBox:
		return particle.InBox{
			Min: api.Vec3{spec.Min[0], spec.Min[1], spec.Min[2]},
			Max: api.Vec3{spec.Max[0], spec.Max[1], spec.Max[2]},
		}, nil
	case config.TypeExpr:
		e, err := particle.NewExpr(spec.Expr)
		if err != nil {
			return nil, err
		}
		return e, nil
	case config.TypeAll:
		children, err := b.buildAll(ctx, spec.Filters, depth+1)
		if err != nil {
			return nil, err
		}
		nested, err := b.factory.Build(children...)
		if err != nil {
			return nil, err
		}
		return nested, nil
	case config.TypeNot:
		children, err := b.buildAll(ctx, spec.Filters, depth+1)
		if err != nil {
			return nil, err
		}
		if len(children) != 1 {
			return nil, fmt.Errorf("not filter requires exactly one nested filter, got %d", len(children))
		}
		return filter.Not[*api.Particle]{F: children[0]}, nil
	default:
		return nil, fmt.Errorf("unknown filter type %q", spec.Type)
	}
}

func (b *builder) admit(ctx context.Context, spec *config.FilterSpec, depth int) error {
	if b.admission == nil {
		return nil
	}
	result, err := b.admission.Evaluate(ctx, &policy.EvalInput{
		Type:   spec.Type,
		Name:   spec.Name,
		Depth:  depth,
		Params: spec.Params(),
	})
	if err != nil {
		return fmt.Errorf("admission: %w", err)
	}
	if result.Verdict != api.VerdictAllow {
		return &policy.AdmissionError{Type: spec.Type, Rule: result.Rule, Message: result.Message}
	}
	return nil
}

// AdmissionFromConfig returns the admission engine configured in cfg, or nil
// when none is configured. An OPA policy file takes precedence over a rules
// file, which takes precedence over inline rules.
func AdmissionFromConfig(cfg *config.Config) (policy.Engine, error) {
	if cfg.AdmissionPolicy != "" {
		e, err := policy.NewOPAEngine(cfg.AdmissionPolicy)
		if err != nil {
			return nil, fmt.Errorf("creating OPA admission engine: %w", err)
		}
		return e, nil
	}
	if cfg.AdmissionRules != "" {
		e, err := policy.NewYAMLEngine(cfg.AdmissionRules)
		if err != nil {
			return nil, fmt.Errorf("creating admission engine: %w", err)
		}
		return e, nil
	}
	if cfg.File != nil && cfg.File.Settings.Admission != nil {
		e, err := policy.NewYAMLEngineFromRules(cfg.File.Settings.Admission)
		if err != nil {
			return nil, fmt.Errorf("creating admission engine: %w", err)
		}
		return e, nil
	}
	return nil, nil
}
