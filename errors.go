// errors.go — diagnostics (C11), per §4.12.
//
// Turns a *LexError, *ParseError, or *SafetyError into a caret-annotated,
// multi-line snippet against the offending source, in the teacher's
// errors.go style (WrapErrorWithSource recognising known error shapes by
// type switch and falling through unchanged otherwise).
package efmt

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource augments err with a caret snippet against src when
// err is one of the diagnostic shapes this module produces; any other
// error is returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name shown in the
// header ("PARSE ERROR in foo.erl at 3:12: ...").
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "LEXICAL ERROR", srcName, e.Line, 1, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "PARSE ERROR", srcName, e.Line, e.Col, e.Msg))
	case *SafetyError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "SAFETY GATE ERROR", srcName, e.Line, 1, e.Msg))
	case *InternalError:
		return fmt.Errorf("%s", prettyErrorStringLabeled(src, "INTERNAL ERROR", srcName, e.Line, 1, e.Msg))
	default:
		return err
	}
}

// prettyErrorStringLabeled renders a header line naming the error kind and
// position, then a three-line context window (the offending line plus one
// line of context on either side, when they exist) with a caret under the
// reported column. Line/col are 1-based; out-of-range values are pulled
// back inside the source's bounds rather than indexing past it.
func prettyErrorStringLabeled(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if len(lines) == 0 {
		lines = []string{""}
	}
	line = clampToRange(line, 1, len(lines))
	col = clampToRange(col, 1, len(lines[line-1])+1)

	var b strings.Builder
	writeSnippetHeader(&b, header, name, line, col, msg)
	for n := line - 1; n <= line+1; n++ {
		if n < 1 || n > len(lines) {
			continue
		}
		fmt.Fprintf(&b, "%4d | %s\n", n, lines[n-1])
		if n == line {
			b.WriteString("     | ")
			b.WriteString(caretUnderColumn(col))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// writeSnippetHeader writes the one-line "KIND [in NAME] at L:C: msg"
// banner, followed by the blank line separating it from the source window.
func writeSnippetHeader(b *strings.Builder, header, name string, line, col int, msg string) {
	if name == "" {
		fmt.Fprintf(b, "%s at %d:%d: %s\n\n", header, line, col, msg)
		return
	}
	fmt.Fprintf(b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
}

// caretUnderColumn builds a run of spaces wide enough to land a "^" under
// the 1-based column col.
func caretUnderColumn(col int) string {
	pad := make([]byte, col)
	for i := range pad {
		pad[i] = ' '
	}
	pad[col-1] = '^'
	return string(pad)
}

// clampToRange pulls v back inside [lo, hi].
func clampToRange(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
