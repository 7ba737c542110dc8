package hostcall

import "github.com/funvibe/hostcall/metadata"

// typesEqual compares two descriptors. Providers keep names unique, so
// name equality is identity. A nil on either side is never equal.
func typesEqual(a, b metadata.Type) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Name() == b.Name()
}

// assignable reports whether a value of type from can be used where to is
// expected. A nil from stands for an unknown value (a nil argument) and
// matches any non-value type.
func assignable(from, to metadata.Type, relaxed bool) bool {
	if to == nil {
		return false
	}
	if from == nil {
		return !to.IsValue()
	}
	if typesEqual(from, to) {
		return true
	}
	return from.AssignableTo(to, relaxed)
}

// assignableLists reports whether every positional pair of the two lists
// is compatible. Lists of different lengths are never compatible.
func assignableLists(from, to []metadata.Type, relaxed bool) bool {
	if len(from) != len(to) {
		return false
	}
	for i := range from {
		if !assignable(from[i], to[i], relaxed) {
			return false
		}
	}
	return true
}

// distance computes the aggregate hierarchy distance between two
// assignable type lists. Returns -1 when the lists are not compatible
// even under relaxed rules. Per pair: 0 for an exact match or an unknown
// source, +1 for a pair that needs boxing relaxation to be assignable,
// +2 for everything else (including plain subtype hops). Lower is a
// tighter fit.
func distance(from, to []metadata.Type) int {
	if !assignableLists(from, to, true) {
		return -1
	}
	score := 0
	for i, f := range from {
		t := to[i]
		switch {
		case f == nil || typesEqual(f, t):
			// exact fit, no cost
		case assignable(f, t, true) && !assignable(f, t, false):
			score++
		default:
			score += 2
		}
	}
	return score
}
