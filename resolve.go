package hostcall

import (
	"sort"
	"strings"

	"github.com/funvibe/hostcall/metadata"
)

// signature renders a member as a stable textual key:
// Owner.name(Param1,Param2). Candidate ordering sorts on it so
// resolution stays deterministic regardless of provider enumeration
// order.
func signature(m metadata.Member) string {
	var b strings.Builder
	if owner := m.Owner(); owner != nil {
		b.WriteString(owner.Name())
		b.WriteByte('.')
	}
	b.WriteString(m.Name())
	b.WriteByte('(')
	for i, p := range m.Params() {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.Name())
	}
	b.WriteByte(')')
	return b.String()
}

// paramsEqual reports exact positional equality of a declared parameter
// list against a requested one. A nil (unknown) requested type never
// matches exactly.
func paramsEqual(declared, requested []metadata.Type) bool {
	if len(declared) != len(requested) {
		return false
	}
	for i := range declared {
		if !typesEqual(declared[i], requested[i]) {
			return false
		}
	}
	return true
}

// MemberByName returns the public member of t (including inherited
// members) whose name and parameter types match exactly, or nil. Never
// an error: absence is a normal outcome.
func (d *Dispatcher) MemberByName(t metadata.Type, name string, paramTypes []metadata.Type) metadata.Member {
	if t == nil || name == "" {
		return nil
	}
	// Members are ordered from the type itself upward, so the first hit
	// is the most derived declaration.
	for _, m := range d.provider.Members(t, false) {
		if m.Name() == name && paramsEqual(m.Params(), paramTypes) {
			return m
		}
	}
	return nil
}

// declaredMember looks up an exact-signature member declared on t itself.
func (d *Dispatcher) declaredMember(t metadata.Type, name string, paramTypes []metadata.Type) metadata.Member {
	for _, m := range d.provider.Members(t, true) {
		if m.Name() == name && paramsEqual(m.Params(), paramTypes) {
			return m
		}
	}
	return nil
}

// FindAccessibleMember returns an invokable form of member for calls
// dispatched through type t, or nil when none exists.
//
// A member is directly usable when its member-level visibility is public
// and t is public. When t is hidden, the search walks t's interface
// graph (each hierarchy level's directly implemented interfaces and
// their superinterfaces, depth-first) for a public interface declaring
// the same signature, and failing that re-resolves the signature on the
// first public ancestor in the superclass chain.
func (d *Dispatcher) FindAccessibleMember(t metadata.Type, member metadata.Member) metadata.Member {
	if member == nil || !member.IsPublic() {
		return nil
	}
	if t == nil {
		t = member.Owner()
	}
	if t == nil {
		return nil
	}
	if t.IsPublic() {
		return member
	}
	if found := d.accessibleFromInterfaces(t, member.Name(), member.Params()); found != nil {
		return found
	}
	return d.accessibleFromSuperclass(t, member.Name(), member.Params())
}

// FindAccessibleMemberByName resolves name+paramTypes exactly on t and
// returns its accessible form, or nil.
func (d *Dispatcher) FindAccessibleMemberByName(t metadata.Type, name string, paramTypes []metadata.Type) metadata.Member {
	m := d.MemberByName(t, name, paramTypes)
	if m == nil {
		return nil
	}
	return d.FindAccessibleMember(m.Owner(), m)
}

// accessibleFromInterfaces searches the interface nest reachable from t
// for a public interface declaring the given signature. The walk uses an
// explicit stack with a visited set, so deep or (in a permissive
// provider) cyclic interface graphs cannot blow the call stack.
func (d *Dispatcher) accessibleFromInterfaces(t metadata.Type, name string, paramTypes []metadata.Type) metadata.Member {
	visited := make(map[string]bool)
	for cls := t; cls != nil; cls = cls.Super() {
		// Push in reverse so the stack pops interfaces in declaration
		// order, and each interface's own nest before its next sibling.
		stack := pushReversed(nil, cls.Interfaces())
		for len(stack) > 0 {
			iface := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if iface == nil || visited[iface.Name()] {
				continue
			}
			visited[iface.Name()] = true
			if !iface.IsPublic() {
				// A hidden interface hides its whole nest.
				continue
			}
			if m := d.declaredMember(iface, name, paramTypes); m != nil {
				return m
			}
			stack = pushReversed(stack, iface.Interfaces())
		}
	}
	return nil
}

// accessibleFromSuperclass re-resolves the signature on the first public
// ancestor of t.
func (d *Dispatcher) accessibleFromSuperclass(t metadata.Type, name string, paramTypes []metadata.Type) metadata.Member {
	for parent := t.Super(); parent != nil; parent = parent.Super() {
		if parent.IsPublic() {
			return d.MemberByName(parent, name, paramTypes)
		}
	}
	return nil
}

func pushReversed(stack []metadata.Type, ifaces []metadata.Type) []metadata.Type {
	for i := len(ifaces) - 1; i >= 0; i-- {
		stack = append(stack, ifaces[i])
	}
	return stack
}

// FindBestMatch selects the accessible member of t named name whose
// parameters fit argTypes best, or nil when nothing fits.
//
// Exact signature matches win outright. Otherwise every name-matching
// public member whose parameters are relaxed-assignable from argTypes
// (variadic members absorb any number of trailing arguments of their
// component type) competes on hierarchy distance; ties keep the first
// candidate in textual signature order.
//
// Sharp edge, kept for compatibility with the reference behavior: a
// winning variadic candidate is vetoed when the last supplied argument's
// type name matches neither the expected component type's boxed name nor
// the name of the argument type's immediate supertype. An argument two
// or more levels below the component type is therefore rejected even
// though it would be assignable.
func (d *Dispatcher) FindBestMatch(t metadata.Type, name string, argTypes []metadata.Type) metadata.Member {
	if t == nil || name == "" {
		return nil
	}
	if exact := d.MemberByName(t, name, argTypes); exact != nil {
		return d.FindAccessibleMember(exact.Owner(), exact)
	}

	var matching []metadata.Member
	for _, m := range d.provider.Members(t, false) {
		if m.Name() == name && matchesArgs(m, argTypes) {
			matching = append(matching, m)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		return signature(matching[i]) < signature(matching[j])
	})

	var best metadata.Member
	bestScore := -1
	for _, m := range matching {
		accessible := d.FindAccessibleMember(m.Owner(), m)
		if accessible == nil {
			continue
		}
		score := fit(accessible, argTypes)
		if score < 0 {
			continue
		}
		// Strict less-than keeps the first candidate on ties.
		if best == nil || score < bestScore {
			best = accessible
			bestScore = score
		}
	}

	if best != nil && vetoVariadicMatch(best, argTypes) {
		return nil
	}
	return best
}

// matchesArgs reports whether argTypes can be passed to m under relaxed
// assignability, either positionally or through variadic absorption.
func matchesArgs(m metadata.Member, argTypes []metadata.Type) bool {
	params := m.Params()
	if assignableLists(argTypes, params, true) {
		return true
	}
	if m.IsVariadic() && len(params) > 0 && len(argTypes) >= len(params)-1 {
		return assignableLists(argTypes, effectiveParams(m, len(argTypes)), true)
	}
	return false
}

// fit scores m against argTypes, expanding variadic parameters when the
// declared list does not fit directly.
func fit(m metadata.Member, argTypes []metadata.Type) int {
	if score := distance(argTypes, m.Params()); score >= 0 {
		return score
	}
	if m.IsVariadic() && len(m.Params()) > 0 {
		return distance(argTypes, effectiveParams(m, len(argTypes)))
	}
	return -1
}

// effectiveParams expands a variadic parameter list to nargs positions:
// the fixed prefix followed by the trailing component type repeated.
func effectiveParams(m metadata.Member, nargs int) []metadata.Type {
	params := m.Params()
	if !m.IsVariadic() || len(params) == 0 {
		return params
	}
	component := params[len(params)-1].Elem()
	if component == nil {
		return params
	}
	out := make([]metadata.Type, 0, nargs)
	out = append(out, params[:len(params)-1]...)
	for len(out) < nargs {
		out = append(out, component)
	}
	return out
}

// vetoVariadicMatch applies the trailing-argument compatibility veto to
// a chosen variadic best match. The comparison is textual and looks only
// one level up from the argument's type.
func vetoVariadicMatch(m metadata.Member, argTypes []metadata.Type) bool {
	if !m.IsVariadic() || len(m.Params()) == 0 || len(argTypes) == 0 {
		return false
	}
	component := m.Params()[len(m.Params())-1].Elem()
	if component == nil {
		return false
	}
	componentName := component.Boxed().Name()
	last := argTypes[len(argTypes)-1]
	if last == nil || last.Super() == nil {
		return false
	}
	return componentName != last.Name() && componentName != last.Super().Name()
}
