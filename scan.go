// scan.go — bracket-balanced token scanner helpers (C5), per §4.5.
//
// Grounded on the teacher's parser.go token-slice-walking idiom (a plain
// []Token cursor advanced by hand rather than a generated lexer/parser
// pair), generalised here into standalone functions usable by both the
// expression compiler (C6) and the minimal AST builder (parse.go).
package efmt

// skipBracket assumes toks[i] is an opening bracket and returns the index
// just past its matching closer, tracking nested brackets of any of the
// four families generically via an explicit stack of expected closers —
// this is what lets get_end_of_expr treat `[a, {b, c}]` as one atomic span
// without caring which bracket kind is innermost.
func skipBracket(toks []Token, i int) int {
	stack := []string{openers[toks[i].Punct]}
	i++
	for i < len(toks) && len(stack) > 0 {
		t := toks[i]
		if t.Kind == TokPunct {
			if closer, isOpen := openers[t.Punct]; isOpen {
				stack = append(stack, closer)
			} else if t.Punct == stack[len(stack)-1] {
				stack = stack[:len(stack)-1]
			}
		}
		i++
	}
	return i
}

// getUntil scans toks (which begins right after the opening Start token)
// for the matching End, incrementing a counter on nested Start and
// decrementing on non-zero End, stopping at the zero-counter End. It
// returns the tokens strictly inside the pair, the tokens after the
// closer, the closing token itself, and whether a match was found at all.
func getUntil(start, end string, toks []Token) (inside, after []Token, endTok Token, ok bool) {
	depth := 0
	for i, t := range toks {
		if isPunct(t, start) {
			depth++
			continue
		}
		if isPunct(t, end) {
			if depth == 0 {
				return toks[:i], toks[i+1:], t, true
			}
			depth--
		}
	}
	return nil, nil, Token{}, false
}

// getEndOfExpr cuts toks at the first top-level ',', ';', or '.', skipping
// any bracketed span as one atomic unit. Comments are hoisted per §4.5:
// a bare leading comment, or one sharing its line with the immediately
// preceding accumulated token, is peeled off and returned alone, with the
// rest of the accumulated expression pushed back onto the remainder so
// the caller re-emits it after the comment. A comment on a later line
// terminates the expression without being consumed. A terminator followed
// on the same line by a comment carries both back together.
func getEndOfExpr(toks []Token) (expr, rest []Token) {
	var acc []Token
	prevLine := -1
	i := 0
	for i < len(toks) {
		t := toks[i]

		if t.Kind == TokComment {
			if len(acc) == 0 {
				return []Token{t}, toks[i+1:]
			}
			if t.Line == prevLine {
				merged := make([]Token, 0, len(acc)+len(toks)-i-1)
				merged = append(merged, acc...)
				merged = append(merged, toks[i+1:]...)
				return []Token{t}, merged
			}
			return acc, toks[i:]
		}

		if t.Kind == TokPunct && (t.Punct == "," || t.Punct == ";" || t.Punct == ".") {
			if i+1 < len(toks) && toks[i+1].Kind == TokComment && toks[i+1].Line == t.Line {
				acc = append(acc, t, toks[i+1])
				return acc, toks[i+2:]
			}
			acc = append(acc, t)
			return acc, toks[i+1:]
		}

		if t.Kind == TokPunct {
			if _, isOpen := openers[t.Punct]; isOpen {
				j := skipBracket(toks, i)
				acc = append(acc, toks[i:j]...)
				prevLine = toks[j-1].Line
				i = j
				continue
			}
		}

		acc = append(acc, t)
		prevLine = t.Line
		i++
	}
	return acc, nil
}
