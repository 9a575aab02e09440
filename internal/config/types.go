package config

import "github.com/tkingovr/pfilter/internal/policy"

// Filter types understood by the chain builder.
const (
	TypeAlways      = "always"
	TypeEnergyAbove = "energy_above"
	TypeEnergyBelow = "energy_below"
	TypeWeightAbove = "weight_above"
	TypeSpecies     = "species"
	TypeBox         = "box"
	TypeExpr        = "expr"
	TypeAll         = "all"
	TypeNot         = "not"
)

// File is the top-level YAML chain configuration.
type File struct {
	Version  int          `yaml:"version" json:"version"`
	Settings Settings     `yaml:"settings" json:"settings"`
	Filters  []FilterSpec `yaml:"filters" json:"filters"`
}

// Settings contains global settings for a selection pass.
type Settings struct {
	LogDir          string          `yaml:"log_dir" json:"log_dir"`
	LogLevel        string          `yaml:"log_level" json:"log_level"`
	Workers         int             `yaml:"workers" json:"workers"`
	BatchSize       int             `yaml:"batch_size" json:"batch_size"`
	Admission       *policy.RuleSet `yaml:"admission,omitempty" json:"admission,omitempty"`
	AdmissionRules  string          `yaml:"admission_rules,omitempty" json:"admission_rules,omitempty"`
	AdmissionPolicy string          `yaml:"admission_policy,omitempty" json:"admission_policy,omitempty"`
}

// FilterSpec describes one user filter. Which fields are read depends on Type.
type FilterSpec struct {
	Name    string       `yaml:"name,omitempty" json:"name,omitempty"`
	Type    string       `yaml:"type" json:"type"`
	Value   *float64     `yaml:"value,omitempty" json:"value,omitempty"`
	Keep    *bool        `yaml:"keep,omitempty" json:"keep,omitempty"`
	Species []string     `yaml:"species,omitempty" json:"species,omitempty"`
	Min     []float64    `yaml:"min,omitempty" json:"min,omitempty"`
	Max     []float64    `yaml:"max,omitempty" json:"max,omitempty"`
	Expr    string       `yaml:"expr,omitempty" json:"expr,omitempty"`
	Filters []FilterSpec `yaml:"filters,omitempty" json:"filters,omitempty"`
}

// Params returns the type specific parameters of s, as seen by admission
// policies.
func (s *FilterSpec) Params() map[string]any {
	p := make(map[string]any)
	if s.Value != nil {
		p["value"] = *s.Value
	}
	if s.Keep != nil {
		p["keep"] = *s.Keep
	}
	if len(s.Species) > 0 {
		p["species"] = s.Species
	}
	if len(s.Min) > 0 {
		p["min"] = s.Min
	}
	if len(s.Max) > 0 {
		p["max"] = s.Max
	}
	if s.Expr != "" {
		p["expr"] = s.Expr
	}
	if len(s.Filters) > 0 {
		p["filters"] = len(s.Filters)
	}
	return p
}
