// Package registry implements a hand-rolled metadata provider: a
// declarative registry of synthetic types with explicit supertype and
// interface edges, visibility, value/boxed pairs, widening chains, and
// overloaded or variadic members backed by plain Go functions.
//
// It exists for hosts without a usable introspection facility (and for
// exercising the resolution engine against hierarchies Go reflection
// cannot express). Registration is not safe for concurrent use; a fully
// built registry is read-only and safe to share.
package registry

import (
	"reflect"

	"github.com/funvibe/hostcall/metadata"
)

// Registry is a metadata.Provider over declared types.
type Registry struct {
	types   map[string]*Type
	arrays  map[string]*Type
	natives map[reflect.Type]*Type
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		types:   make(map[string]*Type),
		arrays:  make(map[string]*Type),
		natives: make(map[reflect.Type]*Type),
	}
}

// Define registers a new reference type. Duplicate names panic: type
// names are identity for the whole engine.
func (r *Registry) Define(name string, opts ...TypeOption) *Type {
	if _, exists := r.types[name]; exists {
		panic("registry: duplicate type " + name)
	}
	t := &Type{name: name, public: true, reg: r}
	for _, opt := range opts {
		opt(t)
	}
	r.types[name] = t
	return t
}

// DefineValue registers an unboxed value type paired with its boxed
// counterpart, which must already be defined.
func (r *Registry) DefineValue(name string, boxed *Type, opts ...TypeOption) *Type {
	t := r.Define(name, opts...)
	t.value = true
	t.boxed = boxed
	if boxed != nil {
		boxed.unboxed = t
	}
	return t
}

// Lookup returns a defined type by name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// ArrayOf returns the array type with the given component, creating it
// on first use. Array types share their component's visibility and have
// no supertype.
func (r *Registry) ArrayOf(component *Type) *Type {
	name := component.name + "[]"
	if t, ok := r.arrays[name]; ok {
		return t
	}
	t := &Type{name: name, public: component.public, elem: component, reg: r}
	r.arrays[name] = t
	return t
}

// MapNative associates the Go type of sample with a registered type, so
// plain Go values can participate as receivers and arguments without an
// Instance wrapper.
func (r *Registry) MapNative(sample any, t *Type) {
	r.natives[reflect.TypeOf(sample)] = t
}

// TypeOf implements metadata.Provider. Values implementing
// metadata.Typed carry their own descriptor; everything else goes
// through the native mapping.
func (r *Registry) TypeOf(v any) metadata.Type {
	if v == nil {
		return nil
	}
	if tv, ok := v.(metadata.Typed); ok {
		return tv.MetaType()
	}
	if t, ok := r.natives[reflect.TypeOf(v)]; ok {
		return t
	}
	return nil
}

// Members implements metadata.Provider. With includeNonPublic the
// declared members of t itself are returned; otherwise the public
// member set, ordered from t upward through its superclass chain and
// then its transitive interfaces, with overridden signatures appearing
// once (most derived wins).
func (r *Registry) Members(t metadata.Type, includeNonPublic bool) []metadata.Member {
	rt, ok := t.(*Type)
	if !ok || rt == nil {
		return nil
	}
	if includeNonPublic {
		out := make([]metadata.Member, len(rt.members))
		for i, m := range rt.members {
			out[i] = m
		}
		return out
	}

	var out []metadata.Member
	seen := make(map[string]bool)
	appendPublic := func(owner *Type) {
		for _, m := range owner.members {
			if !m.public {
				continue
			}
			key := m.key()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, m)
		}
	}
	for c := rt; c != nil; c = c.super {
		appendPublic(c)
	}
	for _, iface := range transitiveInterfaces(rt) {
		appendPublic(iface)
	}
	return out
}

// NewArray implements metadata.Provider. Registry values are untyped Go
// values, so the trailing array keeps its elements as supplied; the
// array descriptor carries the declared component, boxed or not.
func (r *Registry) NewArray(component metadata.Type, elems []any) (any, error) {
	rt, ok := component.(*Type)
	if !ok || rt == nil {
		return nil, metadata.ErrArgument
	}
	return &Array{Type: r.ArrayOf(rt), Elems: elems}, nil
}

// transitiveInterfaces walks the interface nest over the whole
// superclass chain, declaration order, deduplicated.
func transitiveInterfaces(t *Type) []*Type {
	seen := make(map[string]bool)
	var out []*Type
	var collect func(*Type)
	collect = func(cls *Type) {
		for c := cls; c != nil; c = c.super {
			for _, iface := range c.ifaces {
				if seen[iface.name] {
					continue
				}
				seen[iface.name] = true
				out = append(out, iface)
				collect(iface)
			}
		}
	}
	collect(t)
	return out
}

// TypeOption configures a type at definition time.
type TypeOption func(*Type)

// Hidden marks the type as not publicly visible.
func Hidden() TypeOption {
	return func(t *Type) { t.public = false }
}

// Extends sets the direct supertype.
func Extends(super *Type) TypeOption {
	return func(t *Type) { t.super = super }
}

// Implements appends directly implemented interfaces.
func Implements(ifaces ...*Type) TypeOption {
	return func(t *Type) { t.ifaces = append(t.ifaces, ifaces...) }
}
