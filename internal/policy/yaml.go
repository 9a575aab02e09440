package policy

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"github.com/tkingovr/pfilter/api"
)

// YAMLEngine implements first-match-wins admission using YAML rules.
type YAMLEngine struct {
	mu    sync.RWMutex
	rules *RuleSet
	path  string

	// compiled regex cache
	regexCache map[string]*regexp.Regexp
}

// NewYAMLEngine creates a new engine from a rules file.
func NewYAMLEngine(path string) (*YAMLEngine, error) {
	e := &YAMLEngine{path: path}
	if err := e.Reload(context.Background()); err != nil {
		return nil, err
	}
	return e, nil
}

// NewYAMLEngineFromRules creates a new engine from an already-loaded rule set.
func NewYAMLEngineFromRules(rs *RuleSet) (*YAMLEngine, error) {
	if err := Validate(rs); err != nil {
		return nil, err
	}
	e := &YAMLEngine{rules: rs}
	cache, err := compileRegexes(rs)
	if err != nil {
		return nil, err
	}
	e.regexCache = cache
	return e, nil
}

// Evaluate checks the input against rules in order, returning the first match.
func (e *YAMLEngine) Evaluate(_ context.Context, input *EvalInput) (*EvalResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for i := range e.rules.Rules {
		rule := &e.rules.Rules[i]
		if e.matches(rule, input) {
			return &EvalResult{
				Verdict: api.Verdict(rule.Action),
				Rule:    rule.Name,
				Message: rule.Message,
			}, nil
		}
	}

	return &EvalResult{
		Verdict: e.rules.DefaultAction,
		Rule:    "_default",
		Message: "no matching rule; default action applied",
	}, nil
}

// Reload re-reads the rules file from disk.
func (e *YAMLEngine) Reload(_ context.Context) error {
	if e.path == "" {
		return nil
	}
	rs, err := LoadFile(e.path)
	if err != nil {
		return err
	}
	cache, err := compileRegexes(rs)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.rules = rs
	e.regexCache = cache
	return nil
}

// Rules returns the current rule set.
func (e *YAMLEngine) Rules() *RuleSet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rules
}

func compileRegexes(rs *RuleSet) (map[string]*regexp.Regexp, error) {
	cache := make(map[string]*regexp.Regexp)
	for _, rule := range rs.Rules {
		for key, pm := range rule.Match.Params {
			if pm.Regex == "" {
				continue
			}
			re, err := regexp.Compile(pm.Regex)
			if err != nil {
				return nil, fmt.Errorf("rule %q param %q: %w", rule.Name, key, err)
			}
			cache[rule.Name+":"+key] = re
		}
	}
	return cache, nil
}

func (e *YAMLEngine) matches(rule *Rule, input *EvalInput) bool {
	if rule.Match.Type != "" && rule.Match.Type != input.Type {
		return false
	}
	if rule.Match.Name != "" && rule.Match.Name != input.Name {
		return false
	}
	if input.Depth < rule.Match.MinDepth {
		return false
	}

	for key, pm := range rule.Match.Params {
		val, ok := input.Params[key]
		if !ok {
			return false
		}
		if !e.matchParam(rule.Name, key, pm, val) {
			return false
		}
	}

	return true
}

func (e *YAMLEngine) matchParam(ruleName, key string, pm ParamMatch, val any) bool {
	str := fmt.Sprintf("%v", val)

	if pm.Exact != "" {
		return str == pm.Exact
	}

	if pm.Regex != "" {
		re, ok := e.regexCache[ruleName+":"+key]
		if !ok {
			return false
		}
		return re.MatchString(str)
	}

	return true
}
