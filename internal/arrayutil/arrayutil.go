// Package arrayutil holds the small slice helpers shared by the variadic
// packer and the providers.
package arrayutil

// NullToEmpty returns args unchanged unless it is nil, in which case a
// shared empty slice is returned. Keeps nil argument lists from leaking
// into the engine.
func NullToEmpty(args []any) []any {
	if args == nil {
		return []any{}
	}
	return args
}

// CopyRange copies length elements of src starting at offset into a fresh
// slice. length may be zero; the result is then a non-nil empty slice.
func CopyRange(src []any, offset, length int) []any {
	out := make([]any, length)
	copy(out, src[offset:offset+length])
	return out
}
