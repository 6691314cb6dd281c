// structural.go — the structural compiler (C7), per §4.8.
//
// Drives the whole token stream: dispatches on the shape of each top-
// level form (a `-spec(...)`, a `-Attribute(...)`, a `Name(Args) -> ...`
// function, a bare top-level bracket configuration term, or a line
// comment), threading the previous-term tag (§3.5) to decide blank-line
// versus single-newline separation between forms.
package efmt

// prevTag is the §3.5 previous-term tag.
type prevTag string

const (
	tagNewFile    prevTag = "new_file"
	tagAttrPrev   prevTag = "attribute"
	tagSpecPrev   prevTag = "spec"
	tagListPrev   prevTag = "list"
	tagFuncPrev   prevTag = "function"
	tagCommentPrv prevTag = "comment"
)

// Compile drives the structural compiler over the whole token stream,
// producing one Doc for the file and the merged force-break flag.
func Compile(toks []Token) (Doc, bool, error) {
	result := Nil()
	fbAll := false
	prev := tagNewFile
	cur := toks
	first := true

	for len(cur) > 0 {
		d, fb, tag, next, err := compileTopForm(cur)
		if err != nil {
			return Nil(), false, err
		}
		fbAll = fbAll || fb
		if first {
			result = d
			first = false
		} else {
			switch separatorFor(prev, tag) {
			case sepBlank:
				result = Newlines(result, d)
			case sepSingle:
				result = Newline(result, d)
			default:
				result = Cons(result, d)
			}
		}
		prev = tag
		cur = next
	}
	return result, fbAll, nil
}

type separator int

const (
	sepNone separator = iota
	sepSingle
	sepBlank
)

// separatorFor implements §4.8's blank-line policy as the small state
// machine its design notes call for, keyed on the previous-term tag and
// the tag of the form about to be emitted.
func separatorFor(prev, tag prevTag) separator {
	switch tag {
	case tagSpecPrev, tagAttrPrev:
		return sepBlank
	case tagFuncPrev:
		if prev == tagSpecPrev || prev == tagCommentPrv {
			return sepSingle
		}
		return sepBlank
	case tagCommentPrv:
		if prev == tagCommentPrv {
			return sepSingle
		}
		return sepBlank
	case tagListPrev:
		return sepBlank
	}
	return sepBlank
}

// compileTopForm recognises and compiles exactly one top-level form,
// returning its tag (for separatorFor) and the unconsumed remainder.
func compileTopForm(toks []Token) (doc Doc, fb bool, tag prevTag, rest []Token, err error) {
	t := toks[0]

	if t.Kind == TokComment {
		return Group(ForceBreak(true, Text(t.StrValue))), true, tagCommentPrv, toks[1:], nil
	}

	if isPunct(t, "-") && len(toks) > 2 && toks[1].Kind == TokAtom && toks[1].Name == "spec" && isPunct(toks[2], "(") {
		return compileSpecForm(toks)
	}

	if isPunct(t, "-") && len(toks) > 1 && toks[1].Kind == TokAtom {
		return compileAttributeForm(toks)
	}

	if t.Kind == TokAtom && len(toks) > 1 && isPunct(toks[1], "(") {
		return compileFunctionForm(toks)
	}

	if t.Kind == TokPunct {
		if closer, isOpen := openers[t.Punct]; isOpen {
			inside, after, _, ok := getUntil(t.Punct, closer, toks[1:])
			if !ok {
				return Nil(), false, tagListPrev, nil, &InternalError{Line: t.Line, Msg: "unterminated top-level bracket " + t.Punct}
			}
			d, fb, err := bracketGroupDoc(t.Punct, closer, inside)
			if err != nil {
				return Nil(), false, tagListPrev, nil, err
			}
			return d, fb, tagListPrev, after, nil
		}
	}

	return Nil(), false, tagListPrev, nil, &InternalError{Line: t.Line, Msg: "unrecognized top-level form starting with " + t.Kind.String()}
}

// compileSpecForm handles `-spec(...).`: the parenthesised body is
// unwrapped via getUntil, compiled as a head/arrow/body pair, and
// re-prefixed with the literal "-spec " text.
func compileSpecForm(toks []Token) (Doc, bool, prevTag, []Token, error) {
	inside, after, _, ok := getUntil("(", ")", toks[3:])
	if !ok {
		return Nil(), false, tagSpecPrev, nil, &InternalError{Line: toks[0].Line, Msg: "unterminated -spec(...)"}
	}
	body, fb, err := compileHeadArrowBody(inside)
	if err != nil {
		return Nil(), false, tagSpecPrev, nil, err
	}
	if len(after) == 0 || !isPunct(after[0], ".") {
		return Nil(), false, tagSpecPrev, nil, &InternalError{Line: toks[0].Line, Msg: "-spec(...) not terminated by '.'"}
	}
	// Cons, not Stick: "-spec " and the trailing "." must stay glued to
	// the head/body regardless of whether the body itself ends up broken.
	doc := Group(ForceBreak(fb, Cons(Text("-spec "), Cons(body, Text(".")))))
	return doc, fb, tagSpecPrev, after[1:], nil
}

// compileAttributeForm handles `-Att Rest.`: Rest is compiled as an
// ordinary expression list (runExprs, via the public Exprs entry) and the
// attribute name is stuck directly onto it with no intervening space, so
// `-module(x).` round-trips exactly.
func compileAttributeForm(toks []Token) (Doc, bool, prevTag, []Token, error) {
	att := toks[1].Name
	body, fb, _, rest, err := Exprs(toks[2:], false)
	if err != nil {
		return Nil(), false, tagAttrPrev, nil, err
	}
	doc := Group(ForceBreak(fb, Cons(Text("-"+att), body)))
	return doc, fb, tagAttrPrev, rest, nil
}

// compileFunctionForm compiles one or more semicolon-separated clauses of
// the same function, stopping at the clause whose terminator is '.'.
func compileFunctionForm(toks []Token) (Doc, bool, prevTag, []Token, error) {
	result := Nil()
	fbAll := false
	cur := toks
	first := true
	for {
		clause, fb, lastTag, next, err := compileFunctionClause(cur)
		if err != nil {
			return Nil(), false, tagFuncPrev, nil, err
		}
		fbAll = fbAll || fb
		if first {
			result = clause
			first = false
		} else {
			result = Newline(result, clause)
		}
		cur = next
		if lastTag == tagSemi {
			continue
		}
		break
	}
	// Each clause is already its own group, force-broken when its content
	// demands it (compileFunctionClause), and clauses are joined by a literal newline regardless of width, so
	// there is nothing left for an outer group to decide here — wrapping
	// result in another group would just restate (or, for a single clause,
	// inertly re-wrap) a decision already made.
	return result, fbAll, tagFuncPrev, cur, nil
}

// compileFunctionClause compiles one `Name(Args) -> Body` clause, up to
// and including its terminator (';' continues the function, '.' ends
// it), reusing expr's own call-recognition rule for the head.
func compileFunctionClause(toks []Token) (doc Doc, fb bool, lastTag string, rest []Token, err error) {
	_, _, headFb, headDoc, afterHead, err := expr(toks, false)
	if err != nil {
		return Nil(), false, tagEmpty, nil, err
	}
	if len(afterHead) == 0 || !isPunct(afterHead[0], "->") {
		return Nil(), false, tagEmpty, nil, &InternalError{Line: toks[0].Line, Msg: "function clause head not followed by '->'"}
	}
	bodyDoc, bodyFb, tag, next, err := Exprs(afterHead[1:], false)
	if err != nil {
		return Nil(), false, tagEmpty, nil, err
	}
	fb = headFb || bodyFb
	// force_break must wrap the clause's actual content, not a pre-built
	// group around it: group(self) always re-decides flat/break on its
	// own and would ignore an inherited break pushed from outside it.
	clause := Cons(Group(headDoc), Cons(Text(" ->"), Nest(Indent, Cons(Break(" "), Group(bodyDoc)))))
	return Group(ForceBreak(fb, clause)), fb, tag, next, nil
}

// compileHeadArrowBody compiles a bare `Head -> Body` pair with no
// trailing terminator (used inside `-spec(...)`, where the wrapping
// parenthesis already bounds the tokens).
func compileHeadArrowBody(toks []Token) (Doc, bool, error) {
	idx := findTopLevelArrow(toks)
	if idx < 0 {
		return Nil(), false, &InternalError{Line: toks[0].Line, Msg: "spec body has no top-level '->'"}
	}
	_, _, headFb, headDoc, headRest, err := expr(toks[:idx], false)
	if err != nil {
		return Nil(), false, err
	}
	if len(headRest) != 0 {
		return Nil(), false, &InternalError{Line: toks[0].Line, Msg: "spec head is not a single call expression"}
	}
	bodyDoc, bodyFb, _, _, _, err := runExprs(toks[idx+1:], false)
	if err != nil {
		return Nil(), false, err
	}
	fb := headFb || bodyFb
	doc := Cons(Group(headDoc), Cons(Text(" ->"), Nest(Indent, Cons(Break(" "), Group(bodyDoc)))))
	return doc, fb, nil
}

// findTopLevelArrow returns the index of the first "->" punct token not
// nested inside a bracket, or -1 if none exists.
func findTopLevelArrow(toks []Token) int {
	depth := 0
	for i, t := range toks {
		if t.Kind != TokPunct {
			continue
		}
		if _, isOpen := openers[t.Punct]; isOpen {
			depth++
			continue
		}
		if _, isClose := closers[t.Punct]; isClose {
			depth--
			continue
		}
		if depth == 0 && t.Punct == "->" {
			return i
		}
	}
	return -1
}
