package policy

import (
	"fmt"

	"github.com/tkingovr/pfilter/api"
)

// RuleSet is a first-match-wins list of admission rules.
type RuleSet struct {
	DefaultAction api.Verdict `yaml:"default_action" json:"default_action"`
	Rules         []Rule      `yaml:"rules" json:"rules"`
}

// Rule represents a single admission rule.
type Rule struct {
	Name    string    `yaml:"name" json:"name"`
	Match   RuleMatch `yaml:"match" json:"match"`
	Action  string    `yaml:"action" json:"action"`
	Message string    `yaml:"message,omitempty" json:"message,omitempty"`
}

// RuleMatch specifies conditions for matching a filter spec. Empty fields
// match anything.
type RuleMatch struct {
	Type     string                `yaml:"type,omitempty" json:"type,omitempty"`
	Name     string                `yaml:"name,omitempty" json:"name,omitempty"`
	MinDepth int                   `yaml:"min_depth,omitempty" json:"min_depth,omitempty"`
	Params   map[string]ParamMatch `yaml:"params,omitempty" json:"params,omitempty"`
}

// ParamMatch specifies a matching condition for a single filter parameter.
type ParamMatch struct {
	Exact string `yaml:"exact,omitempty" json:"exact,omitempty"`
	Regex string `yaml:"regex,omitempty" json:"regex,omitempty"`
}

// EvalInput describes one filter about to be added to a chain.
type EvalInput struct {
	Type   string         `json:"type"`
	Name   string         `json:"name,omitempty"`
	Depth  int            `json:"depth"`
	Params map[string]any `json:"params,omitempty"`
}

// EvalResult is the output of a policy engine evaluation.
type EvalResult struct {
	Verdict api.Verdict `json:"verdict"`
	Rule    string      `json:"rule,omitempty"`
	Message string      `json:"message,omitempty"`
}

// AdmissionError is returned when a policy denies a filter.
type AdmissionError struct {
	Type    string
	Rule    string
	Message string
}

func (e *AdmissionError) Error() string {
	msg := fmt.Sprintf("filter %q denied by rule %q", e.Type, e.Rule)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}
