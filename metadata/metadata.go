// Package metadata defines the capability interface between the hostcall
// resolution engine and whatever type system hosts it. The engine never
// inspects a host type directly; it only reads the descriptors a Provider
// hands out. A Provider can be backed by Go reflection, by a hand-rolled
// registry of synthetic types, or by anything else that can answer the
// queries below.
package metadata

import "errors"

// Invocation errors providers wrap so the engine can classify failures.
// Everything not matching one of these is treated as a failure of the
// invoked member itself.
var (
	// ErrInaccessible marks an invocation rejected by visibility rules.
	ErrInaccessible = errors.New("member is not accessible")
	// ErrArgument marks an invocation rejected by the call target because
	// of argument arity or types.
	ErrArgument = errors.New("arguments rejected")
)

// Type is an immutable, provider-owned descriptor of a host type.
//
// Descriptors are compared by Name; a Provider must keep names unique
// within itself. A nil Type in an argument-type list stands for an
// unknown value (a nil argument) and matches any non-value type.
type Type interface {
	// Name returns the unique textual name of the type.
	Name() string

	// IsPublic reports whether the type is visible to outside callers.
	IsPublic() bool

	// Super returns the direct supertype, or nil when there is none.
	Super() Type

	// Interfaces returns the directly implemented interfaces, in
	// declaration order.
	Interfaces() []Type

	// AssignableTo reports whether a value of this type can be used where
	// to is expected. With relaxed set, boxing/unboxing and widening
	// conversions are also permitted.
	AssignableTo(to Type, relaxed bool) bool

	// IsValue reports whether this is an unboxed value (primitive) type.
	// Value types never accept nil.
	IsValue() bool

	// Boxed returns the boxed counterpart of a value type, or the type
	// itself when no boxing applies.
	Boxed() Type

	// Elem returns the component type of an array type, or nil for
	// non-array types. The trailing parameter of a variadic member is
	// always an array type.
	Elem() Type
}

// Member is an immutable, provider-owned descriptor of a named invokable
// member of a type.
type Member interface {
	// Name returns the member name.
	Name() string

	// Params returns the declared parameter types in order. For a
	// variadic member the last entry is the trailing array type.
	Params() []Type

	// IsVariadic reports whether the last parameter absorbs a variable
	// number of trailing arguments.
	IsVariadic() bool

	// IsPublic reports whether the member itself is visible.
	IsPublic() bool

	// Owner returns the declaring type.
	Owner() Type

	// HasAnnotation reports whether the member carries the given
	// annotation kind.
	HasAnnotation(kind string) bool

	// Invoke performs the raw call. receiver is nil for static members.
	// Argument lists for variadic members must already be in canonical
	// form (trailing array in the last position) unless the caller
	// deliberately bypasses packing.
	Invoke(receiver any, args []any) (any, error)
}

// Provider answers the metadata queries the engine needs. Implementations
// must be safe for concurrent readers; the engine itself never mutates
// anything it is handed.
type Provider interface {
	// Members returns the members of t. With includeNonPublic false the
	// result is the public member set including inherited members,
	// ordered from t itself upward through its ancestors. With
	// includeNonPublic true the result is the members declared on t
	// itself, including non-public ones.
	Members(t Type, includeNonPublic bool) []Member

	// TypeOf maps a runtime value to its descriptor. Returns nil for nil
	// values or values unknown to the provider.
	TypeOf(v any) Type

	// NewArray materializes the trailing array of a variadic call from
	// collected (boxed) elements. When component is a value type the
	// provider converts the elements to their unboxed form.
	NewArray(component Type, elems []any) (any, error)
}

// Typed lets runtime values carry their own descriptor. Providers that
// cannot derive a descriptor from the value's Go type alone (notably the
// registry provider) rely on it.
type Typed interface {
	MetaType() Type
}
