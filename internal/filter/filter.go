package filter

import (
	"fmt"
	"reflect"
)

// Filter decides whether a single record is kept.
//
// Keep must be pure: it may not modify r, and it must return the same answer
// for the same record state. Chains call Keep from many goroutines at once.
type Filter[R any] interface {
	Keep(r R) bool
}

// Func adapts an ordinary function to a Filter.
type Func[R any] func(R) bool

func (f Func[R]) Keep(r R) bool { return f(r) }

// True keeps every record. It terminates every chain built by a Factory.
type True[R any] struct{}

func (True[R]) Keep(R) bool    { return true }
func (True[R]) String() string { return "true" }

// Not inverts the decision of the wrapped filter. Compose rejects a Not whose
// F is nil.
type Not[R any] struct {
	F Filter[R]
}

func (n Not[R]) Keep(r R) bool  { return !n.F.Keep(r) }
func (n Not[R]) String() string { return "not(" + Describe(n.F) + ")" }
func (n Not[R]) usable() bool   { return usable(n.F) }

// usable reports whether f can be evaluated without dereferencing nil. Nil
// interfaces, typed nil pointers and funcs, and wrappers around any of those
// are unusable.
func usable[R any](f Filter[R]) bool {
	if f == nil {
		return false
	}
	switch v := reflect.ValueOf(f); v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			return false
		}
	}
	if w, ok := f.(interface{ usable() bool }); ok {
		return w.usable()
	}
	return true
}

// Describe returns a short human readable name for f.
func Describe(f any) string {
	if s, ok := f.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", f)
}
