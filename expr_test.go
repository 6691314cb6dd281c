package efmt

import "testing"

func lexMust(t *testing.T, src string) []Token {
	toks, err := Lex([]byte(src))
	if err != nil {
		t.Fatalf("Lex(%q) failed: %v", src, err)
	}
	return toks
}

func Test_Expr_Call_WrapsArgsInBracketGroup(t *testing.T) {
	toks := lexMust(t, "foo(a, b)")
	tag, _, fb, doc, rest, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if tag != tagEmpty || fb {
		t.Fatalf("got tag=%q fb=%v, want tagEmpty/false", tag, fb)
	}
	if len(rest) != 0 {
		t.Fatalf("expected all tokens consumed, %d left", len(rest))
	}
	if got := Pretty(doc, 100); got != "foo(a, b)\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Expr_ArityReference(t *testing.T) {
	toks := lexMust(t, "foo/2")
	_, _, _, doc, rest, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected all tokens consumed")
	}
	if got := Pretty(doc, 100); got != "foo/2\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Expr_BitStringTag(t *testing.T) {
	toks := lexMust(t, "X/binary")
	_, _, _, doc, _, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if got := Pretty(doc, 100); got != "X/binary\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Expr_SizedBitStringTag(t *testing.T) {
	toks := lexMust(t, "X:8/integer")
	_, _, _, doc, rest, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected all tokens consumed, got %d left", len(rest))
	}
	if got := Pretty(doc, 100); got != "X:8/integer\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Expr_BinaryOperator(t *testing.T) {
	// Rule 8 only matches a var or integer operand, so the left side must
	// be uppercase (a var); a lowercase atom wouldn't trigger this rule.
	toks := lexMust(t, "X + Y")
	_, _, _, doc, rest, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if len(rest) != 1 || rest[0].Kind != TokVar {
		t.Fatalf("expected the rhs var left over, got %#v", rest)
	}
	if got := Pretty(doc, 100); got != "X +\n" {
		t.Fatalf("got %q", got)
	}
}

// Test_Expr_PipeAlternative exercises rule 9: a leading '|' recurses into
// the rest of the form and wraps it so a later union member can land on
// its own indented line under width pressure, without forcing a break
// when the whole alternative already fits flat.
func Test_Expr_PipeAlternative(t *testing.T) {
	toks := lexMust(t, "| error")
	tag, isTerm, fb, doc, rest, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if tag != tagEmpty || isTerm || fb {
		t.Fatalf("got tag=%q isTerm=%v fb=%v, want tagEmpty/false/false", tag, isTerm, fb)
	}
	if len(rest) != 0 {
		t.Fatalf("expected all tokens consumed, %d left", len(rest))
	}
	if got := Pretty(doc, 100); got != "| error\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Expr_Equation(t *testing.T) {
	toks := lexMust(t, "X = foo(a)")
	_, _, fb, doc, rest, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if fb {
		t.Fatalf("short equation should not force-break")
	}
	if len(rest) != 0 {
		t.Fatalf("expected all tokens consumed, got %d left", len(rest))
	}
	if got := Pretty(doc, 100); got != "X = foo(a)\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Expr_SoleComment_ForcesBreak(t *testing.T) {
	toks := lexMust(t, "% a trailing remark")
	tag, isTerm, fb, _, _, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if tag != tagComment || isTerm || !fb {
		t.Fatalf("got tag=%q isTerm=%v fb=%v", tag, isTerm, fb)
	}
}

func Test_Expr_LoneTerminator(t *testing.T) {
	toks := lexMust(t, ".")
	tag, isTerm, _, doc, rest, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if tag != "." || !isTerm {
		t.Fatalf("got tag=%q isTerm=%v", tag, isTerm)
	}
	if len(rest) != 0 {
		t.Fatalf("expected all tokens consumed")
	}
	if got := Pretty(doc, 100); got != ".\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_Expr_MacroInvocation(t *testing.T) {
	toks := lexMust(t, "?MODULE")
	_, _, _, doc, rest, err := expr(toks, false)
	if err != nil {
		t.Fatalf("expr: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected all tokens consumed")
	}
	if got := Pretty(doc, 100); got != "?MODULE\n" {
		t.Fatalf("got %q", got)
	}
}

// Test_Exprs_SingleStatementBody_DoesNotForceMultiLine guards the comma-
// based element count: a clause body of exactly one expression plus its
// terminator is two accumulated units but only one element (no comma), so
// it must stay foldable onto one line.
func Test_Exprs_SingleStatementBody_DoesNotForceMultiLine(t *testing.T) {
	toks := lexMust(t, "0.")
	doc, fb, tag, rest, err := Exprs(toks, false)
	if err != nil {
		t.Fatalf("Exprs: %v", err)
	}
	if fb {
		t.Fatalf("single-statement body must not force-break")
	}
	if tag != tagDot {
		t.Fatalf("got lastTag=%q, want tagDot", tag)
	}
	if len(rest) != 0 {
		t.Fatalf("expected all tokens consumed")
	}
	if got := Pretty(doc, 100); got != "0.\n" {
		t.Fatalf("got %q", got)
	}
}

// Test_Exprs_TwoStatementBody_ForcesMultiLine exercises the commas>0 rule:
// two comma-joined expressions (here just literal atoms to keep the trace
// simple) before the terminator must force one element per line even
// though the whole thing would fit flat.
func Test_Exprs_TwoStatementBody_ForcesMultiLine(t *testing.T) {
	toks := lexMust(t, "a, b.")
	doc, fb, tag, _, err := Exprs(toks, false)
	if err != nil {
		t.Fatalf("Exprs: %v", err)
	}
	if !fb {
		t.Fatalf("two-statement body must force-break")
	}
	if tag != tagDot {
		t.Fatalf("got lastTag=%q, want tagDot", tag)
	}
	got := Pretty(doc, 100)
	want := "a,\nb.\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_BracketGroupDoc_FlatList(t *testing.T) {
	toks := lexMust(t, "a, b, c")
	doc, fb, err := bracketGroupDoc("[", "]", toks)
	if err != nil {
		t.Fatalf("bracketGroupDoc: %v", err)
	}
	if fb {
		t.Fatalf("short list should not force-break")
	}
	if got := Pretty(doc, 100); got != "[a, b, c]\n" {
		t.Fatalf("got %q", got)
	}
}

func Test_BracketGroupDoc_BreaksOnePerLineAtNarrowWidth(t *testing.T) {
	toks := lexMust(t, "alpha, beta, gamma")
	doc, _, err := bracketGroupDoc("[", "]", toks)
	if err != nil {
		t.Fatalf("bracketGroupDoc: %v", err)
	}
	got := Pretty(doc, 5)
	want := "[\n    alpha,\n    beta,\n    gamma\n]\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func Test_BracketGroupDoc_Empty(t *testing.T) {
	doc, fb, err := bracketGroupDoc("(", ")", nil)
	if err != nil {
		t.Fatalf("bracketGroupDoc: %v", err)
	}
	if fb {
		t.Fatalf("empty brackets must not force-break")
	}
	if got := Pretty(doc, 100); got != "()\n" {
		t.Fatalf("got %q", got)
	}
}
