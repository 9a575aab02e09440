package filter

import "errors"

// Factory builds chains of the form [default] ++ user ++ [True].
type Factory[R any] struct {
	def Filter[R]
}

// NewFactory returns a factory whose chains always start with def.
func NewFactory[R any](def Filter[R]) (*Factory[R], error) {
	if !usable(def) {
		return nil, errors.New("default filter is nil")
	}
	return &Factory[R]{def: def}, nil
}

// Default returns the filter every chain starts with.
func (f *Factory[R]) Default() Filter[R] { return f.def }

// Build composes the default filter, the user filters in order and the
// terminal True filter into one chain. Each call returns an independent
// chain.
func (f *Factory[R]) Build(user ...Filter[R]) (*Chain[R], error) {
	prefix := []Filter[R]{f.def}
	chain, err := Compose(Join(prefix, user, []Filter[R]{True[R]{}}))
	var nilErr *NilFilterError
	if errors.As(err, &nilErr) {
		// report the position within the user list, not the joined one
		return nil, &NilFilterError{Index: nilErr.Index - len(prefix)}
	}
	return chain, err
}
