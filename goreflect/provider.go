// Package goreflect implements the metadata provider over native Go
// values using the reflect package. Method sets come straight from
// reflect; strict assignability is reflect's AssignableTo, and relaxed
// mode additionally allows conversions between numeric kinds, which
// plays the role boxing and widening play in class-based hosts.
//
// Go flattens inheritance at compile time, so descriptors report no
// supertype and no interface edges, every exported method set is both
// the declared and the public one, and there are no static members or
// member annotations.
package goreflect

import (
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/funvibe/hostcall/metadata"
)

// Provider is a stateless metadata.Provider over reflect.
type Provider struct{}

// New creates the provider.
func New() *Provider { return &Provider{} }

// TypeOf implements metadata.Provider.
func (p *Provider) TypeOf(v any) metadata.Type {
	if v == nil {
		return nil
	}
	return &Type{rt: reflect.TypeOf(v)}
}

// FromReflect wraps a reflect.Type in a descriptor, for callers that
// want to address a type without a value at hand (static-style entry
// points of the facade).
func (p *Provider) FromReflect(rt reflect.Type) metadata.Type {
	if rt == nil {
		return nil
	}
	return &Type{rt: rt}
}

// Members implements metadata.Provider. reflect exposes only exported
// methods and Go has no declared-versus-inherited distinction, so both
// modes return the full exported method set of the type.
func (p *Provider) Members(t metadata.Type, includeNonPublic bool) []metadata.Member {
	gt, ok := t.(*Type)
	if !ok || gt == nil {
		return nil
	}
	rt := gt.rt
	out := make([]metadata.Member, 0, rt.NumMethod())
	for i := 0; i < rt.NumMethod(); i++ {
		mt := rt.Method(i)
		out = append(out, &member{name: mt.Name, owner: gt, sig: mt.Type, hasReceiver: rt.Kind() != reflect.Interface})
	}
	return out
}

// NewArray implements metadata.Provider: a fresh slice of the component
// type with each element converted to it.
func (p *Provider) NewArray(component metadata.Type, elems []any) (any, error) {
	gt, ok := component.(*Type)
	if !ok || gt == nil {
		return nil, errors.Wrap(metadata.ErrArgument, "unknown component type")
	}
	ct := gt.rt
	slice := reflect.MakeSlice(reflect.SliceOf(ct), len(elems), len(elems))
	for i, el := range elems {
		if el == nil {
			if !nilable(ct.Kind()) {
				return nil, errors.Wrapf(metadata.ErrArgument, "element %d: nil for %s", i, ct)
			}
			continue
		}
		ev := reflect.ValueOf(el)
		switch {
		case ev.Type().AssignableTo(ct):
			slice.Index(i).Set(ev)
		case ev.Type().ConvertibleTo(ct):
			slice.Index(i).Set(ev.Convert(ct))
		default:
			return nil, errors.Wrapf(metadata.ErrArgument, "element %d: cannot use %s as %s", i, ev.Type(), ct)
		}
	}
	return slice.Interface(), nil
}

// Type wraps a reflect.Type. Implements metadata.Type.
type Type struct {
	rt reflect.Type
}

// Reflect returns the wrapped reflect.Type.
func (t *Type) Reflect() reflect.Type { return t.rt }

func (t *Type) Name() string { return t.rt.String() }

// IsPublic follows the named type under pointers and slices: builtin
// types are public, named types are public when exported.
func (t *Type) IsPublic() bool {
	rt := t.rt
	for rt.Kind() == reflect.Ptr || rt.Kind() == reflect.Slice || rt.Kind() == reflect.Array {
		rt = rt.Elem()
	}
	if rt.PkgPath() == "" {
		return true
	}
	r, _ := utf8.DecodeRuneInString(rt.Name())
	return unicode.IsUpper(r)
}

func (t *Type) Super() metadata.Type        { return nil }
func (t *Type) Interfaces() []metadata.Type { return nil }

// IsValue reports whether the type cannot hold nil.
func (t *Type) IsValue() bool { return !nilable(t.rt.Kind()) }

func (t *Type) Boxed() metadata.Type { return t }

func (t *Type) Elem() metadata.Type {
	switch t.rt.Kind() {
	case reflect.Slice, reflect.Array:
		return &Type{rt: t.rt.Elem()}
	default:
		return nil
	}
}

// AssignableTo implements metadata.Type over reflect's rules.
func (t *Type) AssignableTo(to metadata.Type, relaxed bool) bool {
	target, ok := to.(*Type)
	if !ok || target == nil {
		return false
	}
	if t.rt.AssignableTo(target.rt) {
		return true
	}
	if relaxed && numeric(t.rt.Kind()) && numeric(target.rt.Kind()) {
		return t.rt.ConvertibleTo(target.rt)
	}
	return false
}

func nilable(k reflect.Kind) bool {
	switch k {
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

func numeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
