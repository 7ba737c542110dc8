package registry

import "github.com/funvibe/hostcall/metadata"

// Type is a declared registry type. It implements metadata.Type.
type Type struct {
	name    string
	public  bool
	super   *Type
	ifaces  []*Type
	value   bool
	boxed   *Type
	unboxed *Type
	elem    *Type
	widens  []*Type
	members []*member
	reg     *Registry
}

func (t *Type) Name() string   { return t.name }
func (t *Type) IsPublic() bool { return t.public }
func (t *Type) IsValue() bool  { return t.value }

func (t *Type) Super() metadata.Type {
	if t.super == nil {
		return nil
	}
	return t.super
}

func (t *Type) Interfaces() []metadata.Type {
	if len(t.ifaces) == 0 {
		return nil
	}
	out := make([]metadata.Type, len(t.ifaces))
	for i, iface := range t.ifaces {
		out[i] = iface
	}
	return out
}

func (t *Type) Boxed() metadata.Type {
	if t.boxed != nil {
		return t.boxed
	}
	return t
}

func (t *Type) Elem() metadata.Type {
	if t.elem == nil {
		return nil
	}
	return t.elem
}

// WidensTo declares widening conversions from this value type, e.g.
// int widening into long. Widening applies transitively.
func (t *Type) WidensTo(targets ...*Type) *Type {
	t.widens = append(t.widens, targets...)
	return t
}

// AssignableTo implements metadata.Type. Strict mode permits subtype
// hops for reference types and declared widenings between value types.
// Relaxed mode first aligns the two sides across the value/boxed divide.
func (t *Type) AssignableTo(to metadata.Type, relaxed bool) bool {
	target, ok := to.(*Type)
	if !ok || target == nil {
		return false
	}
	from := t
	if from == target {
		return true
	}
	if relaxed {
		if from.value && !target.value && from.boxed != nil {
			from = from.boxed
		} else if !from.value && target.value && from.unboxed != nil {
			from = from.unboxed
		}
		if from == target {
			return true
		}
	}
	if from.value || target.value {
		return from.value && target.value && from.widensInto(target)
	}
	return from.isSubtypeOf(target)
}

// widensInto walks the declared widening chain transitively.
func (t *Type) widensInto(target *Type) bool {
	visited := make(map[string]bool)
	stack := append([]*Type(nil), t.widens...)
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if w == nil || visited[w.name] {
			continue
		}
		visited[w.name] = true
		if w == target {
			return true
		}
		stack = append(stack, w.widens...)
	}
	return false
}

// isSubtypeOf walks the supertype chain and the interface graph.
func (t *Type) isSubtypeOf(target *Type) bool {
	visited := make(map[string]bool)
	stack := []*Type{t}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c == nil || visited[c.name] {
			continue
		}
		visited[c.name] = true
		if c == target {
			return true
		}
		if c.super != nil {
			stack = append(stack, c.super)
		}
		stack = append(stack, c.ifaces...)
	}
	return false
}
