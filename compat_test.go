package hostcall

import (
	"testing"

	"github.com/funvibe/hostcall/metadata"
	"github.com/funvibe/hostcall/registry"
)

// numericFixture builds a small Java-like slice of a type system:
// Object <- Number <- Integer/Long, Object <- String, plus the unboxed
// int/long value types with int widening into long.
func numericFixture() (reg *registry.Registry, types map[string]*registry.Type) {
	reg = registry.New()
	object := reg.Define("Object")
	number := reg.Define("Number", registry.Extends(object))
	integer := reg.Define("Integer", registry.Extends(number))
	long := reg.Define("Long", registry.Extends(number))
	str := reg.Define("String", registry.Extends(object))
	intT := reg.DefineValue("int", integer)
	longT := reg.DefineValue("long", long)
	intT.WidensTo(longT)
	return reg, map[string]*registry.Type{
		"Object": object, "Number": number, "Integer": integer,
		"Long": long, "String": str, "int": intT, "long": longT,
	}
}

func typeList(types map[string]*registry.Type, names ...string) []metadata.Type {
	out := make([]metadata.Type, len(names))
	for i, n := range names {
		if n == "_" {
			continue // nil entry, unknown argument
		}
		out[i] = types[n]
	}
	return out
}

func TestDistanceIdentity(t *testing.T) {
	_, types := numericFixture()
	lists := [][]string{
		{},
		{"String"},
		{"Object", "String"},
		{"int", "Integer", "Number"},
	}
	for _, names := range lists {
		l := typeList(types, names...)
		if got := distance(l, l); got != 0 {
			t.Errorf("distance of %v against itself = %d, want 0", names, got)
		}
	}
}

func TestDistanceScoring(t *testing.T) {
	_, types := numericFixture()
	tests := []struct {
		name string
		from []string
		to   []string
		want int
	}{
		{"boxing costs one", []string{"int"}, []string{"Integer"}, 1},
		{"unboxing costs one", []string{"Integer"}, []string{"int"}, 1},
		{"subtype hop costs two", []string{"String"}, []string{"Object"}, 2},
		{"strict widening costs two", []string{"int"}, []string{"long"}, 2},
		{"boxed to supertype costs two", []string{"Integer"}, []string{"Number"}, 2},
		{"unknown argument is free", []string{"_"}, []string{"String"}, 0},
		{"costs accumulate", []string{"int", "String"}, []string{"Integer", "Object"}, 3},
		{"incompatible pair", []string{"String"}, []string{"Integer"}, -1},
		{"unknown never fits a value type", []string{"_"}, []string{"int"}, -1},
		{"length mismatch", []string{"String"}, []string{"String", "String"}, -1},
	}
	for _, tt := range tests {
		from := typeList(types, tt.from...)
		to := typeList(types, tt.to...)
		if got := distance(from, to); got != tt.want {
			t.Errorf("%s: distance(%v, %v) = %d, want %d", tt.name, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestAssignableLists(t *testing.T) {
	_, types := numericFixture()
	tests := []struct {
		name    string
		from    []string
		to      []string
		relaxed bool
		want    bool
	}{
		{"identity", []string{"String"}, []string{"String"}, false, true},
		{"subtype strict", []string{"Integer"}, []string{"Number"}, false, true},
		{"boxing needs relaxed", []string{"int"}, []string{"Integer"}, false, false},
		{"boxing relaxed", []string{"int"}, []string{"Integer"}, true, true},
		{"widening strict", []string{"int"}, []string{"long"}, false, true},
		{"boxed then subtype relaxed", []string{"int"}, []string{"Number"}, true, true},
		{"downcast rejected", []string{"Object"}, []string{"String"}, true, false},
		{"nil matches reference", []string{"_"}, []string{"Object"}, false, true},
		{"nil rejected by value type", []string{"_"}, []string{"long"}, true, false},
		{"length mismatch", []string{}, []string{"Object"}, true, false},
	}
	for _, tt := range tests {
		from := typeList(types, tt.from...)
		to := typeList(types, tt.to...)
		if got := assignableLists(from, to, tt.relaxed); got != tt.want {
			t.Errorf("%s: assignableLists(%v, %v, relaxed=%v) = %v, want %v",
				tt.name, tt.from, tt.to, tt.relaxed, got, tt.want)
		}
	}
}
