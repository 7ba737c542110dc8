package hostcall

import (
	"testing"

	"github.com/funvibe/hostcall/metadata"
	"github.com/funvibe/hostcall/registry"
)

func noopFn(receiver any, args []any) (any, error) { return nil, nil }

func TestBestMatchPrefersCloserOverload(t *testing.T) {
	reg, types := numericFixture()
	widget := reg.Define("Widget")
	widget.AddMember(registry.MemberSpec{Name: "f", Params: []*registry.Type{types["Object"]}, Fn: noopFn})
	widget.AddMember(registry.MemberSpec{Name: "f", Params: []*registry.Type{types["String"]}, Fn: noopFn})

	d := New(reg)
	args := typeList(types, "String")
	for i := 0; i < 10; i++ {
		m := d.FindBestMatch(widget, "f", args)
		if m == nil {
			t.Fatal("expected a match for f(String)")
		}
		if got := m.Params()[0].Name(); got != "String" {
			t.Fatalf("run %d: resolved f(%s), want f(String)", i, got)
		}
	}
}

func TestBestMatchTieBreaksOnSignature(t *testing.T) {
	reg, _ := numericFixture()
	alpha := reg.Define("Alpha")
	beta := reg.Define("Beta")
	// Both overloads sit at the same distance from the argument type.
	thing := reg.Define("Thing", registry.Implements(alpha, beta))
	widget := reg.Define("Widget")
	widget.AddMember(registry.MemberSpec{Name: "g", Params: []*registry.Type{beta}, Fn: noopFn})
	widget.AddMember(registry.MemberSpec{Name: "g", Params: []*registry.Type{alpha}, Fn: noopFn})

	d := New(reg)
	for i := 0; i < 10; i++ {
		m := d.FindBestMatch(widget, "g", []metadata.Type{thing})
		if m == nil {
			t.Fatal("expected a match for g(Thing)")
		}
		// "Widget.g(Alpha)" sorts before "Widget.g(Beta)" regardless of
		// declaration order.
		if got := m.Params()[0].Name(); got != "Alpha" {
			t.Fatalf("run %d: tie broke to g(%s), want g(Alpha)", i, got)
		}
	}
}

func TestAccessibleThroughInterface(t *testing.T) {
	reg, types := numericFixture()
	greeter := reg.Define("Greeter")
	greeter.AddMember(registry.MemberSpec{Name: "greet", Params: []*registry.Type{types["String"]}, Fn: noopFn})
	hidden := reg.Define("greeterImpl", registry.Hidden(), registry.Implements(greeter))
	hidden.AddMember(registry.MemberSpec{Name: "greet", Params: []*registry.Type{types["String"]}, Fn: noopFn})

	d := New(reg)
	declared := reg.Members(hidden, true)[0]
	m := d.FindAccessibleMember(hidden, declared)
	if m == nil {
		t.Fatal("expected the interface declaration to be found")
	}
	if m.Owner().Name() != "Greeter" {
		t.Fatalf("accessible member owned by %s, want Greeter", m.Owner().Name())
	}
}

func TestAccessibleThroughSuperinterface(t *testing.T) {
	reg, types := numericFixture()
	root := reg.Define("Closer")
	root.AddMember(registry.MemberSpec{Name: "close", Fn: noopFn})
	mid := reg.Define("channel", registry.Hidden(), registry.Implements(root))
	hidden := reg.Define("closerImpl", registry.Hidden(), registry.Implements(mid))
	hidden.AddMember(registry.MemberSpec{Name: "close", Fn: noopFn})
	_ = types

	d := New(reg)
	declared := reg.Members(hidden, true)[0]
	// The direct interface is hidden too; only its superinterface is
	// public. The hidden interface hides its whole nest, so the walk
	// must not find Closer through channel.
	if m := d.FindAccessibleMember(hidden, declared); m != nil {
		t.Fatalf("hidden interface nest leaked %s", m.Owner().Name())
	}

	// With a public direct interface the nest is searched.
	open := reg.Define("openChannel", registry.Implements(root))
	hidden2 := reg.Define("closerImpl2", registry.Hidden(), registry.Implements(open))
	hidden2.AddMember(registry.MemberSpec{Name: "close", Fn: noopFn})
	declared2 := reg.Members(hidden2, true)[0]
	m := d.FindAccessibleMember(hidden2, declared2)
	if m == nil {
		t.Fatal("expected close() via the public superinterface")
	}
	if m.Owner().Name() != "Closer" {
		t.Fatalf("accessible member owned by %s, want Closer", m.Owner().Name())
	}
}

func TestAccessibleThroughSuperclass(t *testing.T) {
	reg, types := numericFixture()
	base := reg.Define("Base")
	base.AddMember(registry.MemberSpec{Name: "id", Params: []*registry.Type{types["String"]}, Fn: noopFn})
	hidden := reg.Define("baseImpl", registry.Hidden(), registry.Extends(base))
	hidden.AddMember(registry.MemberSpec{Name: "id", Params: []*registry.Type{types["String"]}, Fn: noopFn})

	d := New(reg)
	declared := reg.Members(hidden, true)[0]
	m := d.FindAccessibleMember(hidden, declared)
	if m == nil {
		t.Fatal("expected id(String) on the public ancestor")
	}
	if m.Owner().Name() != "Base" {
		t.Fatalf("accessible member owned by %s, want Base", m.Owner().Name())
	}
}

func TestNonPublicMemberNeverAccessible(t *testing.T) {
	reg, types := numericFixture()
	widget := reg.Define("Widget")
	widget.AddMember(registry.MemberSpec{Name: "secret", NonPublic: true, Fn: noopFn})
	_ = types

	d := New(reg)
	declared := reg.Members(widget, true)[0]
	if m := d.FindAccessibleMember(widget, declared); m != nil {
		t.Fatal("non-public member must be rejected outright")
	}
}

func TestFindAccessibleMemberByNameAbsent(t *testing.T) {
	reg, _ := numericFixture()
	widget := reg.Define("Widget")

	d := New(reg)
	if m := d.FindAccessibleMemberByName(widget, "missing", nil); m != nil {
		t.Fatal("absent member must resolve to nil, not an error")
	}
}

func TestVariadicResolutionAndVeto(t *testing.T) {
	reg, types := numericFixture()
	str := types["String"]
	sub := reg.Define("SubString", registry.Extends(str))
	fancy := reg.Define("FancyString", registry.Extends(sub))
	widget := reg.Define("Widget")
	widget.AddMember(registry.MemberSpec{
		Name:     "h",
		Params:   []*registry.Type{types["int"], reg.ArrayOf(str)},
		Variadic: true,
		Fn:       noopFn,
	})

	d := New(reg)

	if m := d.FindBestMatch(widget, "h", typeList(types, "int", "String", "String")); m == nil {
		t.Fatal("variadic member should absorb trailing Strings")
	}
	if m := d.FindBestMatch(widget, "h", typeList(types, "int")); m == nil {
		t.Fatal("variadic member should accept zero trailing arguments")
	}

	// One level below the component type survives the veto.
	if m := d.FindBestMatch(widget, "h", []metadata.Type{types["int"], sub}); m == nil {
		t.Fatal("immediate subtype of the component must match")
	}

	// Two levels below is rejected: the veto only looks one level up
	// from the argument's type. Kept for compatibility.
	if m := d.FindBestMatch(widget, "h", []metadata.Type{types["int"], fancy}); m != nil {
		t.Fatal("argument two levels below the component type must be vetoed")
	}
}

func TestExactSignatureWinsOverCloserFit(t *testing.T) {
	reg, types := numericFixture()
	widget := reg.Define("Widget")
	widget.AddMember(registry.MemberSpec{Name: "f", Params: []*registry.Type{types["Number"]}, Fn: noopFn})

	d := New(reg)
	m := d.FindBestMatch(widget, "f", typeList(types, "Number"))
	if m == nil {
		t.Fatal("expected the exact signature")
	}
	if got := m.Params()[0].Name(); got != "Number" {
		t.Fatalf("resolved f(%s), want f(Number)", got)
	}
}
