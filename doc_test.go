package efmt

import "testing"

func Test_Doc_Cons_CollapsesNil(t *testing.T) {
	if got := Cons(Nil(), Text("x")); got != Text("x") {
		t.Fatalf("cons(nil, x) = %#v, want x", got)
	}
	if got := Cons(Text("x"), Nil()); got != Text("x") {
		t.Fatalf("cons(x, nil) = %#v, want x", got)
	}
}

func Test_Doc_Text_EmptyIsNil(t *testing.T) {
	if !isNilDoc(Text("")) {
		t.Fatalf("text(\"\") should collapse to nil")
	}
}

func Test_Doc_ForceBreak_FalseIsIdentity(t *testing.T) {
	d := Text("x")
	if got := ForceBreak(false, d); got != d {
		t.Fatalf("force_break(false, x) = %#v, want x unchanged", got)
	}
}

func Test_Doc_ForceBreak_DoesNotDoubleWrap(t *testing.T) {
	d := ForceBreak(true, Text("x"))
	again := ForceBreak(true, d)
	if again != d {
		t.Fatalf("force_break(true, force_break(true, x)) should not re-wrap")
	}
}

func Test_Doc_Nest_NilIsIdentity(t *testing.T) {
	if got := Nest(4, Nil()); !isNilDoc(got) {
		t.Fatalf("nest(n, nil) should stay nil, got %#v", got)
	}
}

func Test_Doc_ConsAll_FoldsRightToLeft(t *testing.T) {
	got := ConsAll(Text("a"), Text("b"), Text("c"))
	want := Cons(Text("a"), Cons(Text("b"), Text("c")))
	if Pretty(got, 100) != Pretty(want, 100) {
		t.Fatalf("ConsAll mismatch: got %q want %q", Pretty(got, 100), Pretty(want, 100))
	}
}
