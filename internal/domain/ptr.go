package domain

// Ptr returns a pointer to v. Handy for building a Patch.
func Ptr[T any](v T) *T {
	return &v
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
