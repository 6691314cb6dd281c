package efmt

import (
	"strings"
	"testing"
)

// ifThenElseDoc builds the textbook if/then/else layout used by S1-S3: each
// clause is its own group (kw, nest(INDENT, break+expr)), joined by bare
// breaks so the outer auto-wrap group can collapse the whole thing to one
// line when it fits, while still letting each clause commit to flat/break
// independently of its neighbours once the outer group has broken.
func ifThenElseDoc() Doc {
	clause := func(kw, expr string) Doc {
		return Group(Cons(Text(kw), Nest(4, Cons(Break(" "), Text(expr)))))
	}
	return ConsAll(
		clause("if", "a == b"), Break(" "),
		clause("then", "a << 2"), Break(" "),
		clause("else", "a + b"),
	)
}

func Test_Layout_IfThenElse_FitsOnOneLine(t *testing.T) {
	out := Pretty(ifThenElseDoc(), 32)
	want := "if a == b then a << 2 else a + b\n"
	if out != want {
		t.Fatalf("S1: got %q, want %q", out, want)
	}
}

func Test_Layout_IfThenElse_BreaksBetweenClauses(t *testing.T) {
	out := Pretty(ifThenElseDoc(), 15)
	want := "if a == b\nthen a << 2\nelse a + b\n"
	if out != want {
		t.Fatalf("S2: got %q, want %q", out, want)
	}
}

func Test_Layout_IfThenElse_NarrowWidthStaysMultiLine(t *testing.T) {
	// At a width too narrow even for "else a + b" (10 chars), every clause
	// must be on its own line; we don't assert the exact per-clause
	// wrapping (kept independently breakable by its own group), only that
	// the overall shape spans at least three lines.
	out := Pretty(ifThenElseDoc(), 9)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected at least 3 lines at width 9, got %d: %q", len(lines), out)
	}
}

func Test_Layout_ForceBreak_PropagatesToEnclosingGroup(t *testing.T) {
	// force_break must wrap the group's entire content (the §4.7 bracket
	// idiom: group(force_break?(stick(...)))), not sit beside a sibling
	// break it has no power to override — a bare break outside its scope
	// still renders under whatever mode the enclosing group decided.
	d := Group(ForceBreak(true, Cons(Text("a"), Nest(4, Cons(Break(" "), Text("b"))))))
	out := Pretty(d, 100)
	want := "a\n    b\n"
	if out != want {
		t.Fatalf("force_break should compel its content broken even though it fits flat: got %q want %q", out, want)
	}
}

func Test_Layout_GroupInherit_AdoptsEnclosingMode(t *testing.T) {
	outer := ForceBreak(true, Cons(Text("a"), Nest(4, Cons(Break(" "), GroupInherit(Cons(Text("b"), Cons(Break(" "), Text("c"))))))))
	out := Pretty(outer, 100)
	want := "a\n    b\n    c\n"
	if out != want {
		t.Fatalf("group_inherit should break when the enclosing mode is break even though it fits: got %q want %q", out, want)
	}
}

func Test_Layout_BlankSentinel_EmitsBlankLineWhenBroken(t *testing.T) {
	d := ForceBreak(true, Cons(Text("a"), Cons(Break(blankSentinel), Text("b"))))
	out := Pretty(d, 100)
	want := "a\n\nb\n"
	if out != want {
		t.Fatalf("blank sentinel should render a blank separator line: got %q want %q", out, want)
	}
}
