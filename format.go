// format.go — the public library surface (§6.1).
package efmt

import (
	"strings"

	"github.com/pkg/errors"
)

// DefaultWidth and Indent are the §6.2 defaults: the target column width
// and the per-level indentation the structural and expression compilers
// nest by.
const (
	DefaultWidth = 100
	Indent       = 4
)

// Pretty lays doc out at width (or DefaultWidth, if width <= 0) and
// serialises it to bytes. The layout-engine entry point used directly by
// tests that build Docs by hand.
func Pretty(doc Doc, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}
	return render(doc, width)
}

// FormatTokens pretty-prints an already-lexed token stream, bypassing the
// safety gate entirely — the pure entry point §6.1 reserves for tests
// that want to exercise C5-C7 without re-parsing the result.
func FormatTokens(toks []Token, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	doc, _, err := Compile(toks)
	if err != nil {
		return "", err
	}
	return render(doc, width), nil
}

// FormatCode is FormatCodeNamed with no path label.
func FormatCode(src []byte) ([]byte, error) {
	return FormatCodeWidth(src, "", DefaultWidth)
}

// FormatCodeNamed is FormatCode annotating any error with pathTag.
func FormatCodeNamed(src []byte, pathTag string) ([]byte, error) {
	return FormatCodeWidth(src, pathTag, DefaultWidth)
}

// FormatCodeWidth runs the full safety-gated pipeline (§4.9) at an
// explicit width: lex, parse to AST_in, compile+render to candidate
// output, re-lex and re-parse the candidate to AST_out, and refuse the
// result unless AST_in and AST_out are equivalent.
func FormatCodeWidth(src []byte, pathTag string, width int) ([]byte, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	toks, err := Lex(src)
	if err != nil {
		return nil, WrapErrorWithName(err, pathTag, string(src))
	}
	astIn, err := Parse(toks)
	if err != nil {
		return nil, WrapErrorWithName(err, pathTag, string(src))
	}

	doc, _, err := Compile(toks)
	if err != nil {
		return nil, WrapErrorWithName(err, pathTag, string(src))
	}
	out := render(doc, width)

	outToks, err := Lex([]byte(out))
	if err != nil {
		return nil, &SafetyError{Path: pathTag, Original: src, Produced: []byte(out), Msg: errors.Wrap(err, "re-lexing the formatted output failed").Error()}
	}
	astOut, err := Parse(outToks)
	if err != nil {
		return nil, &SafetyError{Path: pathTag, Original: src, Produced: []byte(out), Msg: errors.Wrap(err, "re-parsing the formatted output failed").Error()}
	}
	if !Equal(astIn, astOut) {
		return nil, &SafetyError{Path: pathTag, Original: src, Produced: []byte(out), Msg: "formatting changed the parsed structure"}
	}
	return []byte(out), nil
}

// quoteString re-quotes a decoded string literal's contents for emission,
// the inverse of lexer.go's scanString escaping.
func quoteString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
