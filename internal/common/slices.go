package common

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Every reports whether pred holds for all elements. It is true for an empty slice.
func Every[S ~[]E, E any](s S, pred func(E) bool) bool {
	for _, e := range s {
		if !pred(e) {
			return false
		}
	}

	return true
}

// Map applies fn to every element.
func Map[S ~[]E, E, R any](s S, fn func(E) R) []R {
	if s == nil {
		return nil
	}

	out := make([]R, len(s))
	for i, e := range s {
		out[i] = fn(e)
	}

	return out
}

// Filter returns the elements for which keep holds, in order.
func Filter[S ~[]E, E any](s S, keep func(E) bool) S {
	var out S

	for _, e := range s {
		if keep(e) {
			out = append(out, e)
		}
	}

	return out
}
