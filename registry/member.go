package registry

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/funvibe/hostcall/metadata"
)

// Func is the invocation handle backing a registry member. receiver is
// nil for static calls; for variadic members args arrive in canonical
// form with the trailing *Array in the last position.
type Func func(receiver any, args []any) (any, error)

// MemberSpec declares a member on a type.
type MemberSpec struct {
	Name        string
	Params      []*Type
	Variadic    bool // last Params entry must be an array type
	NonPublic   bool
	Static      bool
	Annotations []string
	Fn          Func
}

// AddMember declares a member. Declaration order is preserved and is
// the enumeration order seen by the engine.
func (t *Type) AddMember(spec MemberSpec) *Type {
	if spec.Name == "" {
		panic("registry: member with empty name on " + t.name)
	}
	if spec.Variadic && (len(spec.Params) == 0 || spec.Params[len(spec.Params)-1].elem == nil) {
		panic("registry: variadic member " + t.name + "." + spec.Name + " needs a trailing array parameter")
	}
	annotations := make(map[string]bool, len(spec.Annotations))
	for _, a := range spec.Annotations {
		annotations[a] = true
	}
	t.members = append(t.members, &member{
		name:        spec.Name,
		owner:       t,
		params:      spec.Params,
		variadic:    spec.Variadic,
		public:      !spec.NonPublic,
		static:      spec.Static,
		annotations: annotations,
		fn:          spec.Fn,
	})
	return t
}

// Instance tags a runtime value with its registry type.
type Instance struct {
	Type  *Type
	Value any
}

func (i *Instance) MetaType() metadata.Type { return i.Type }

// Array is the canonical trailing-argument array of a variadic call.
type Array struct {
	Type  *Type
	Elems []any
}

func (a *Array) MetaType() metadata.Type { return a.Type }

type member struct {
	name        string
	owner       *Type
	params      []*Type
	variadic    bool
	public      bool
	static      bool
	annotations map[string]bool
	fn          Func
}

func (m *member) Name() string     { return m.name }
func (m *member) IsVariadic() bool { return m.variadic }
func (m *member) IsPublic() bool   { return m.public }

func (m *member) Owner() metadata.Type { return m.owner }

func (m *member) Params() []metadata.Type {
	if len(m.params) == 0 {
		return nil
	}
	out := make([]metadata.Type, len(m.params))
	for i, p := range m.params {
		out[i] = p
	}
	return out
}

func (m *member) HasAnnotation(kind string) bool { return m.annotations[kind] }

// key is the overriding identity of a member: name plus parameter list.
func (m *member) key() string {
	names := make([]string, len(m.params))
	for i, p := range m.params {
		names[i] = p.name
	}
	return m.name + "(" + strings.Join(names, ",") + ")"
}

// Invoke enforces visibility and argument shape the way a reflective
// host would, then delegates to the registered handle. Visibility and
// argument rejections are wrapped in the metadata markers so the facade
// can classify them; everything returned by the handle itself passes
// through verbatim.
func (m *member) Invoke(receiver any, args []any) (any, error) {
	if !m.public {
		return nil, errors.Wrapf(metadata.ErrInaccessible, "%s.%s is not public", m.owner.name, m.name)
	}
	if !m.owner.public {
		return nil, errors.Wrapf(metadata.ErrInaccessible, "declaring type %s is not public", m.owner.name)
	}
	if !m.static && receiver == nil {
		return nil, errors.Wrapf(metadata.ErrArgument, "%s.%s needs a receiver", m.owner.name, m.name)
	}
	if len(args) != len(m.params) {
		return nil, errors.Wrapf(metadata.ErrArgument, "%s.%s wants %d argument(s), got %d",
			m.owner.name, m.name, len(m.params), len(args))
	}
	for i, arg := range args {
		if arg == nil {
			if m.params[i].value {
				return nil, errors.Wrapf(metadata.ErrArgument, "argument %d of %s.%s: nil for value type %s",
					i, m.owner.name, m.name, m.params[i].name)
			}
			continue
		}
		at, ok := m.owner.reg.TypeOf(arg).(*Type)
		if !ok || at == nil {
			// Unmapped native value; leave it to the handle.
			continue
		}
		if !at.AssignableTo(m.params[i], true) {
			return nil, errors.Wrapf(metadata.ErrArgument, "argument %d of %s.%s: %s is not assignable to %s",
				i, m.owner.name, m.name, at.Name(), m.params[i].name)
		}
	}
	if m.fn == nil {
		return nil, errors.Errorf("%s.%s has no invocation handle", m.owner.name, m.name)
	}
	return m.fn(receiver, args)
}
