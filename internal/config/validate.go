package config

import (
	"fmt"
	"math"

	"github.com/tkingovr/pfilter/internal/policy"
)

func validate(f *File) error {
	if f.Version != FileVersion {
		return fmt.Errorf("unsupported config version: %d (expected %d)", f.Version, FileVersion)
	}
	if f.Settings.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", f.Settings.Workers)
	}
	if f.Settings.BatchSize < 0 {
		return fmt.Errorf("batch_size must not be negative, got %d", f.Settings.BatchSize)
	}
	switch f.Settings.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", f.Settings.LogLevel)
	}
	if f.Settings.Admission != nil && f.Settings.AdmissionRules != "" {
		return fmt.Errorf("admission and admission_rules are mutually exclusive")
	}
	if f.Settings.Admission != nil {
		if err := policy.Validate(f.Settings.Admission); err != nil {
			return fmt.Errorf("admission: %w", err)
		}
	}
	for i := range f.Filters {
		if err := validateSpec(&f.Filters[i], fmt.Sprintf("filters[%d]", i)); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSpec checks a single filter spec and its nested filters.
func ValidateSpec(s *FilterSpec) error {
	return validateSpec(s, s.Type)
}

func validateSpec(s *FilterSpec, path string) error {
	switch s.Type {
	case TypeAlways:
		if s.Keep == nil {
			return fmt.Errorf("%s: %s filter requires keep", path, s.Type)
		}
	case TypeEnergyAbove, TypeEnergyBelow, TypeWeightAbove:
		if s.Value == nil {
			return fmt.Errorf("%s: %s filter requires value", path, s.Type)
		}
		if math.IsNaN(*s.Value) {
			return fmt.Errorf("%s: value is NaN", path)
		}
	case TypeSpecies:
		if len(s.Species) == 0 {
			return fmt.Errorf("%s: species filter requires at least one species", path)
		}
	case TypeBox:
		if len(s.Min) != 3 || len(s.Max) != 3 {
			return fmt.Errorf("%s: box filter requires min and max with 3 components", path)
		}
		for i := 0; i < 3; i++ {
			if math.IsNaN(s.Min[i]) || math.IsNaN(s.Max[i]) {
				return fmt.Errorf("%s: box bound %d is NaN", path, i)
			}
			if s.Min[i] > s.Max[i] {
				return fmt.Errorf("%s: box min[%d] > max[%d]", path, i, i)
			}
		}
	case TypeExpr:
		if s.Expr == "" {
			return fmt.Errorf("%s: expr filter requires expr", path)
		}
	case TypeAll:
		// an empty nested list is the default filter alone
	case TypeNot:
		if len(s.Filters) != 1 {
			return fmt.Errorf("%s: not filter requires exactly one nested filter, got %d", path, len(s.Filters))
		}
	case "":
		return fmt.Errorf("%s: type is required", path)
	default:
		return fmt.Errorf("%s: unknown filter type %q", path, s.Type)
	}

	if len(s.Filters) > 0 && s.Type != TypeAll && s.Type != TypeNot {
		return fmt.Errorf("%s: %s filter does not take nested filters", path, s.Type)
	}
	for i := range s.Filters {
		if err := validateSpec(&s.Filters[i], fmt.Sprintf("%s.filters[%d]", path, i)); err != nil {
			return err
		}
	}
	return nil
}
