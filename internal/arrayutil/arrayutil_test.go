package arrayutil

import "testing"

func TestNullToEmpty(t *testing.T) {
	if got := NullToEmpty(nil); got == nil || len(got) != 0 {
		t.Fatalf("NullToEmpty(nil) = %v", got)
	}
	in := []any{1, 2}
	if got := NullToEmpty(in); len(got) != 2 {
		t.Fatalf("NullToEmpty(%v) = %v", in, got)
	}
}

func TestCopyRange(t *testing.T) {
	src := []any{"a", "b", "c"}
	got := CopyRange(src, 1, 2)
	if len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("CopyRange = %v", got)
	}
	got[0] = "x"
	if src[1] != "b" {
		t.Fatal("CopyRange must not alias the source")
	}
	if got := CopyRange(src, 3, 0); len(got) != 0 {
		t.Fatalf("empty range = %v", got)
	}
}
