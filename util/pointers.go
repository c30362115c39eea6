package util

// Ptr returns a pointer to a copy of v. It is the usual way to fill the
// optional fields of an options struct.
func Ptr[T any](v T) *T { return &v }

// Deref returns *p, or the zero value when p is nil.
func Deref[T any](p *T) (v T) {
	if p != nil {
		v = *p
	}
	return v
}
