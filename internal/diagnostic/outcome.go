package diagnostic

// Outcome is either a successfully built value or the Info describing why
// building failed. A failure may carry a nil Info, in which case it is
// dropped without being reported.
type Outcome[T any] struct {
	value T
	info  *Info
	ok    bool
}

// Success wraps a built value.
func Success[T any](v T) Outcome[T] {
	return Outcome[T]{value: v, ok: true}
}

// Failure wraps a rejection. info may be nil.
func Failure[T any](info *Info) Outcome[T] {
	return Outcome[T]{info: info}
}

// IsSuccess reports whether the outcome holds a value.
func (o Outcome[T]) IsSuccess() bool {
	return o.ok
}

// Value returns the built value and true on success.
func (o Outcome[T]) Value() (T, bool) {
	return o.value, o.ok
}

// Info returns the failure info; nil on success or for silent failures.
func (o Outcome[T]) Info() *Info {
	if o.ok {
		return nil
	}

	return o.info
}

// Values returns the successful values in order.
func Values[T any](outcomes []Outcome[T]) []T {
	var out []T

	for _, o := range outcomes {
		if v, ok := o.Value(); ok {
			out = append(out, v)
		}
	}

	return out
}

// Infos returns the non-nil failure infos in order.
func Infos[T any](outcomes []Outcome[T]) []*Info {
	var out []*Info

	for _, o := range outcomes {
		if info := o.Info(); info != nil {
			out = append(out, info)
		}
	}

	return out
}
