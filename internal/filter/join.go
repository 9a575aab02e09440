package filter

// Join concatenates prefix, user and suffix into a new slice. Order is
// preserved and nothing is removed; a nil or empty user list yields
// prefix followed directly by suffix.
func Join[R any](prefix, user, suffix []Filter[R]) []Filter[R] {
	out := make([]Filter[R], 0, len(prefix)+len(user)+len(suffix))
	out = append(out, prefix...)
	out = append(out, user...)
	return append(out, suffix...)
}
