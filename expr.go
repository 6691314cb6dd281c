// expr.go — the expression compiler (C6), per §4.6/§4.7.
//
// expr recognises one grammatical form per call — a macro invocation, a
// call, a bracketed literal, an equation, an arity/bit-string tag, a
// binary-operator fragment, a pipe alternative, a bare terminal, a lone
// terminator, or a lone comment — and returns how far it consumed. exprs
// (by way of the shared runExprs core) repeatedly calls expr, threading its
// own "running" doc through a space break for ordinary elements (§4.6 item
// 10) and a plain, unbreakable concatenation for a terminator (item 12:
// a terminator is glued to what precedes it, never pushed to its own
// line), so list elements (§4.7) and clause bodies share one accumulation
// loop; only the ">1 element ⇒ force multi-line" rule is specific to
// clause bodies and is applied by Exprs, not by the shared core.
package efmt

import "strconv"

// end-tag constants, per §4.6's end_tag domain.
const (
	tagDot     = "."
	tagSemi    = ";"
	tagComma   = ","
	tagComment = "comment"
	tagEmpty   = "empty"
)

// InternalError marks a token shape the expression compiler does not
// recognise — per §7, a malformed token stream is treated as a bug in the
// lexer or the expression matcher, not a user-facing error class.
type InternalError struct {
	Line int
	Msg  string
}

func (e *InternalError) Error() string {
	return "efmt: malformed token stream near line " + strconv.Itoa(e.Line) + ": " + e.Msg
}

// expr matches exactly one of the forms below against the head of toks
// and returns: the end tag reached (or tagEmpty if none), whether the
// returned doc is itself a lone terminator token (so the caller should
// concatenate it directly rather than Space it onto a running doc), the merged force-break
// flag, the doc for this form, and the remaining tokens.
func expr(toks []Token, forceBreak bool) (tag string, isTerm bool, fb bool, doc Doc, rest []Token, err error) {
	if len(toks) == 0 {
		return tagEmpty, false, forceBreak, Nil(), nil, nil
	}
	t := toks[0]

	// 11. Sole comment.
	if t.Kind == TokComment {
		return tagComment, false, true, Group(ForceBreak(true, Text(t.StrValue))), toks[1:], nil
	}

	// 1. Macro invocation: '?' then sub-expression. Cons, not Stick: '?'
	// must stay glued to what follows even when an ancestor group breaks.
	if isPunct(t, "?") {
		subTag, subTerm, subFb, subDoc, subRest, err := expr(toks[1:], forceBreak)
		if err != nil {
			return "", false, forceBreak, Nil(), nil, err
		}
		return subTag, subTerm, subFb, Cons(Text("?"), subDoc), subRest, nil
	}

	// 2. Function call: atom '(' on the same line. Cons, not Stick: the
	// call name must never be separated from its own argument list by a
	// break, regardless of the mode an enclosing group ends up choosing.
	if t.Kind == TokAtom && len(toks) > 1 && isPunct(toks[1], "(") && toks[1].Line == t.Line {
		inside, after, _, ok := getUntil("(", ")", toks[2:])
		if !ok {
			return "", false, forceBreak, Nil(), nil, &InternalError{Line: t.Line, Msg: "unterminated call arguments for " + t.Name}
		}
		argsDoc, argsFb, err := bracketGroupDoc("(", ")", inside)
		if err != nil {
			return "", false, forceBreak, Nil(), nil, err
		}
		return tagEmpty, false, forceBreak || argsFb, Cons(Text(t.Name), argsDoc), after, nil
	}

	// 3. Any opening bracket on its own.
	if t.Kind == TokPunct {
		if closer, isOpen := openers[t.Punct]; isOpen {
			inside, after, _, ok := getUntil(t.Punct, closer, toks[1:])
			if !ok {
				return "", false, forceBreak, Nil(), nil, &InternalError{Line: t.Line, Msg: "unterminated bracket " + t.Punct}
			}
			bdoc, bfb, err := bracketGroupDoc(t.Punct, closer, inside)
			if err != nil {
				return "", false, forceBreak, Nil(), nil, err
			}
			return tagEmpty, false, forceBreak || bfb, bdoc, after, nil
		}
	}

	// 4. Equation: var '='.
	if t.Kind == TokVar && len(toks) > 1 && isPunct(toks[1], "=") {
		rhsTag, rhsTerm, rhsFb, rhsDoc, rhsRest, err := expr(toks[2:], forceBreak)
		if err != nil {
			return "", false, forceBreak, Nil(), nil, err
		}
		left := Group(Text(t.Name + " ="))
		eq := Group(Cons(left, Nest(Indent, Cons(Break(" "), Group(rhsDoc)))))
		return rhsTag, rhsTerm, forceBreak || rhsFb, eq, rhsRest, nil
	}

	// 5. Arity reference: atom '/' integer.
	if t.Kind == TokAtom && len(toks) > 2 && isPunct(toks[1], "/") && toks[2].Kind == TokInteger {
		return tagEmpty, false, forceBreak, Text(t.Name + "/" + toks[2].Name), toks[3:], nil
	}

	// 6. Bit-string type tag: var '/' atom.
	if t.Kind == TokVar && len(toks) > 2 && isPunct(toks[1], "/") && toks[2].Kind == TokAtom {
		return tagEmpty, false, forceBreak, Text(t.Name + "/" + toks[2].Name), toks[3:], nil
	}

	// 7. Sized bit-string tag: var ':' integer '/' atom.
	if t.Kind == TokVar && len(toks) > 3 && isPunct(toks[1], ":") && toks[2].Kind == TokInteger &&
		isPunct(toks[3], "/") && len(toks) > 4 && toks[4].Kind == TokAtom {
		text := t.Name + ":" + toks[2].Name + "/" + toks[4].Name
		return tagEmpty, false, forceBreak, Text(text), toks[5:], nil
	}

	// 8. Binary operator: (var|integer) op.
	if (t.Kind == TokVar || t.Kind == TokInteger) && len(toks) > 1 && isBinOp(toks[1]) {
		lhs := terminalText(t)
		op := toks[1].Punct
		return tagEmpty, false, forceBreak, Space(Text(lhs), Text(op)), toks[2:], nil
	}

	// 9. Alternative separator: '|' Rest.
	if isPunct(t, "|") {
		subTag, subTerm, subFb, subDoc, subRest, err := expr(toks[1:], forceBreak)
		if err != nil {
			return "", false, forceBreak, Nil(), nil, err
		}
		pipe := Group(Cons(Text("|"), Nest(Indent, Cons(Break(" "), subDoc))))
		return subTag, subTerm, subFb, pipe, subRest, nil
	}

	// 10. Terminal tokens.
	if t.Kind == TokVar || t.Kind == TokAtom || t.Kind == TokInteger || t.Kind == TokString {
		return tagEmpty, false, forceBreak, Text(terminalText(t)), toks[1:], nil
	}

	// 12. Lone terminator.
	if t.Kind == TokPunct && (t.Punct == "," || t.Punct == ";" || t.Punct == ".") {
		return t.Punct, true, forceBreak, Text(t.Punct), toks[1:], nil
	}

	return "", false, forceBreak, Nil(), nil, &InternalError{Line: t.Line, Msg: "unrecognized token shape " + t.Kind.String()}
}

func isBinOp(t Token) bool {
	if t.Kind != TokPunct {
		return false
	}
	switch t.Punct {
	case "+", "-", "*", "/", "div":
		return true
	}
	return false
}

func terminalText(t Token) string {
	switch t.Kind {
	case TokVar, TokAtom:
		return t.Name
	case TokInteger:
		return t.Name
	case TokString:
		return quoteString(t.StrValue)
	}
	return ""
}

// runExprs is the shared accumulation core behind both Exprs (clause
// bodies) and bracket-group element lists (§4.7): repeatedly call expr,
// folding successive results into a running doc with Space, or with plain
// concatenation when the just-returned unit is itself a lone terminator
// (a terminator is always glued directly to what precedes it — it must
// never land on its own line, unlike a genuine Stick break point).
//
// expr consumes exactly one grammatical unit per call, so an ordinary
// expression (end tag empty) never itself signals "more to come" — it's
// simply the common case. Accumulation only truly ends at '.' or ';' (the
// terminators that close a clause); a comma or an
// inline comment is itself consumed as its own unit on the next
// iteration, which is what actually realizes the "more elements follow"
// continuation, and running out of tokens ends a bracket's element list
// with no terminator at all.
//
// commas counts top-level comma units consumed, which is what "more than
// one element" actually means (§4.6's closing paragraph): a single
// expression can still cost several expr calls on its own — a binary
// operator (rule 8) consumes its operand and operator in one call and its
// right-hand side in a second, with no comma between them — so counting
// every non-terminator call, rather than comma boundaries, would wrongly
// force something like "X + 1" onto two lines.
func runExprs(toks []Token, forceBreak bool) (doc Doc, fb bool, commas int, lastTag string, rest []Token, err error) {
	running := Nil()
	fb = forceBreak
	cur := toks
	lastTag = tagEmpty
	total := 0
	for len(cur) > 0 {
		tag, isTerm, fb2, d, next, e := expr(cur, fb)
		if e != nil {
			return Nil(), fb, commas, lastTag, cur, e
		}
		fb = fb || fb2
		if total == 0 {
			running = d
		} else if isTerm {
			running = Cons(running, d)
		} else {
			running = Space(running, d)
		}
		total++
		if tag == tagComma {
			commas++
		}
		cur = next
		lastTag = tag
		if tag == tagDot || tag == tagSemi {
			break
		}
	}
	return running, fb, commas, lastTag, cur, nil
}

// Exprs composes a clause body: any top-level comma (i.e. more than one
// element) wraps the accumulation in a force-broken group so multi-
// expression clause bodies never collapse to one line, per §4.6's closing
// paragraph. lastTag reports the terminator the accumulation actually
// stopped on (tagDot or tagSemi; if the tokens ran out first, the tag of
// the last unit consumed, or tagEmpty when there was none), so callers driving clause loops know whether another clause follows.
func Exprs(toks []Token, forceBreak bool) (doc Doc, fb bool, lastTag string, rest []Token, err error) {
	d, fb2, commas, tag, r, err := runExprs(toks, forceBreak)
	if err != nil {
		return Nil(), forceBreak, tagEmpty, nil, err
	}
	if commas > 0 {
		// force_break must be the group's sole content (§4.7's idiom),
		// not wrap the group from outside: group(self) always re-decides
		// its own flat/break independently of an inherited mode, so
		// force_break(group(d)) would be inert whenever d happens to fit.
		d = Group(ForceBreak(true, d))
		fb2 = true
	}
	return d, fb2, tag, r, nil
}

// bracketGroupDoc builds the §4.7 document for the contents of a balanced
// bracket pair (caller has already located inside via getUntil): empty
// brackets render with no interior whitespace; otherwise the elements
// (joined by runExprs, which lets a nested bracket or a whole expression
// recurse naturally through expr's own dispatch) are wrapped in
//
//	group( force_break?( stick( nest(INDENT, stick( text(open), elements )), text(close) ) ) )
func bracketGroupDoc(open, close string, inside []Token) (Doc, bool, error) {
	if len(inside) == 0 {
		return Text(open + close), false, nil
	}
	elems, fb, _, _, rest, err := runExprs(inside, false)
	if err != nil {
		return Nil(), false, err
	}
	// runExprs stops after a ';' or '.'; whatever follows it is still
	// inside this bracket, so keep accumulating until inside is used up.
	for len(rest) > 0 {
		more, moreFb, _, _, next, err := runExprs(rest, fb)
		if err != nil {
			return Nil(), false, err
		}
		elems = Space(elems, more)
		fb = fb || moreFb
		rest = next
	}
	full := Stick(Nest(Indent, Stick(Text(open), elems)), Text(close))
	return Group(ForceBreak(fb, full)), fb, nil
}
