package common

// FilterFunc returns the elements of s for which keep returns true, preserving order.
// The result is nil when nothing is kept.
func FilterFunc[S ~[]E, E any](s S, keep func(E) bool) S {
	var out S

	for _, e := range s {
		if keep(e) {
			out = append(out, e)
		}
	}

	return out
}
