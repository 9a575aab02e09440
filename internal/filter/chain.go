package filter

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyChain is returned when composing a chain without any filters.
var ErrEmptyChain = errors.New("filter chain is empty")

// NilFilterError reports a nil element in a filter list. Typed nil values and
// wrappers such as Not around a nil filter count as nil.
type NilFilterError struct {
	Index int
}

func (e *NilFilterError) Error() string {
	return fmt.Sprintf("filter at position %d is nil", e.Index)
}

// Chain is the AND of an ordered list of filters. It is immutable once
// composed and may be shared by any number of goroutines.
type Chain[R any] struct {
	filters []Filter[R]
}

// Compose builds a chain from list. The list is copied, so later changes to
// the caller's slice do not affect the chain.
func Compose[R any](list []Filter[R]) (*Chain[R], error) {
	if len(list) == 0 {
		return nil, ErrEmptyChain
	}
	for i, f := range list {
		if !usable(f) {
			return nil, &NilFilterError{Index: i}
		}
	}
	filters := make([]Filter[R], len(list))
	copy(filters, list)
	return &Chain[R]{filters: filters}, nil
}

// Keep evaluates the filters left to right and stops at the first one that
// rejects r.
func (c *Chain[R]) Keep(r R) bool {
	for _, f := range c.filters {
		if !f.Keep(r) {
			return false
		}
	}
	return true
}

// FirstReject returns the index of the first filter rejecting r, or -1 and
// true when every filter keeps it.
func (c *Chain[R]) FirstReject(r R) (int, bool) {
	for i, f := range c.filters {
		if !f.Keep(r) {
			return i, false
		}
	}
	return -1, true
}

// Len returns the number of filters in the chain.
func (c *Chain[R]) Len() int { return len(c.filters) }

// Filters returns a copy of the chain's filters in evaluation order.
func (c *Chain[R]) Filters() []Filter[R] {
	out := make([]Filter[R], len(c.filters))
	copy(out, c.filters)
	return out
}

func (c *Chain[R]) String() string {
	names := make([]string, len(c.filters))
	for i, f := range c.filters {
		names[i] = Describe(f)
	}
	return "and(" + strings.Join(names, ", ") + ")"
}
