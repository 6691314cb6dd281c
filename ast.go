// ast.go — the minimal AST (part of C10, ambient), per §4.11.
//
// A deliberately generic tree: each bracket pair becomes a node tagged by
// its opening punctuation, and every other token becomes a leaf. This is
// enough to decide structural equivalence (§4.9's safety gate only needs
// "did reformatting change anything besides whitespace, comments, and
// comment placement") without building a full semantic grammar — grounded
// on the same bracket-nesting idiom as skipBracket/getUntil in scan.go,
// generalised from token-skipping into tree-building.
package efmt

import "strconv"

// ParseError marks a token stream the minimal parser could not make sense
// of — an unbalanced or misordered bracket, most often.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return "parse error at line " + strconv.Itoa(e.Line) + ": " + e.Msg
}

// ASTNode is either a leaf wrapping one non-comment token, or an interior
// node standing for a bracketed or top-level sequence, named by Kind
// ("(" "[" "{" "<<" or "seq" for the unbracketed top level).
type ASTNode struct {
	Leaf     bool
	Tok      Token
	Kind     string
	Children []*ASTNode
}
