package policy

import (
	"fmt"
	"os"
	"regexp"

	"github.com/tkingovr/pfilter/api"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates a YAML rule set.
func LoadFile(path string) (*RuleSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading admission rules: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates YAML rule data.
func LoadBytes(data []byte) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parsing admission rules YAML: %w", err)
	}
	if err := Validate(&rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Validate checks a rule set and fills in the default action.
func Validate(rs *RuleSet) error {
	switch rs.DefaultAction {
	case "":
		rs.DefaultAction = api.VerdictAllow
	case api.VerdictAllow, api.VerdictDeny:
	default:
		return fmt.Errorf("invalid default_action %q", rs.DefaultAction)
	}

	for i, rule := range rs.Rules {
		if rule.Name == "" {
			return fmt.Errorf("rule %d: name is required", i)
		}
		if api.Verdict(rule.Action) != api.VerdictAllow && api.Verdict(rule.Action) != api.VerdictDeny {
			return fmt.Errorf("rule %q: invalid action %q", rule.Name, rule.Action)
		}
		for key, pm := range rule.Match.Params {
			if pm.Regex != "" {
				if _, err := regexp.Compile(pm.Regex); err != nil {
					return fmt.Errorf("rule %q: param %q regex invalid: %w", rule.Name, key, err)
				}
			}
		}
	}

	return nil
}
