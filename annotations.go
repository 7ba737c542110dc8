package hostcall

import "github.com/funvibe/hostcall/metadata"

// ListMembersWithAnnotation returns the members of t carrying the given
// annotation kind. With searchAncestors set, the search extends over t's
// superclasses and transitive interfaces, interleaved one from each list
// going up from t. With includeNonPublic set, declared non-public
// members are considered instead of the public member set.
func (d *Dispatcher) ListMembersWithAnnotation(t metadata.Type, kind string, searchAncestors, includeNonPublic bool) []metadata.Member {
	if t == nil || kind == "" {
		return nil
	}
	classes := []metadata.Type{t}
	if searchAncestors {
		classes = append(classes, superclassesAndInterfaces(t)...)
	}
	var annotated []metadata.Member
	for _, cls := range classes {
		for _, m := range d.provider.Members(cls, includeNonPublic) {
			if m.HasAnnotation(kind) {
				annotated = append(annotated, m)
			}
		}
	}
	return annotated
}

// allSuperclasses collects t's supertype chain, nearest first.
func allSuperclasses(t metadata.Type) []metadata.Type {
	var out []metadata.Type
	for s := t.Super(); s != nil; s = s.Super() {
		out = append(out, s)
	}
	return out
}

// allInterfaces collects the transitive interfaces reachable from t's
// hierarchy: for each level of the superclass chain, each directly
// implemented interface followed by its own nest, deduplicated.
func allInterfaces(t metadata.Type) []metadata.Type {
	seen := make(map[string]bool)
	var out []metadata.Type
	var collect func(metadata.Type)
	collect = func(cls metadata.Type) {
		for c := cls; c != nil; c = c.Super() {
			for _, iface := range c.Interfaces() {
				if iface == nil || seen[iface.Name()] {
					continue
				}
				seen[iface.Name()] = true
				out = append(out, iface)
				collect(iface)
			}
		}
	}
	collect(t)
	return out
}

// superclassesAndInterfaces merges the superclass chain and the
// transitive interface list, alternating between the two going up from
// t so neither dominates the search order.
func superclassesAndInterfaces(t metadata.Type) []metadata.Type {
	supers := allSuperclasses(t)
	ifaces := allInterfaces(t)
	out := make([]metadata.Type, 0, len(supers)+len(ifaces))
	superIdx, ifaceIdx := 0, 0
	for superIdx < len(supers) || ifaceIdx < len(ifaces) {
		if ifaceIdx >= len(ifaces) || (superIdx < len(supers) && superIdx < ifaceIdx) {
			out = append(out, supers[superIdx])
			superIdx++
		} else {
			out = append(out, ifaces[ifaceIdx])
			ifaceIdx++
		}
	}
	return out
}
