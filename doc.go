// doc.go — the layout primitive tree (C1), per §3.2/§4.1.
//
// A sealed variant set, not an inheritance hierarchy: Doc is an interface
// implemented only by the concrete shapes below, and every consumer
// (fit.go, layout.go) exhaustively switches on the concrete type. Smart
// constructors normalise the identities from §3.2 so that equivalent trees
// share a canonical shape — load-bearing per §9: a break immediately
// preceded by an implicit nil must never survive construction.
package efmt

// Doc is the layout-primitive tree. The zero value of any concrete
// implementation is never used directly; build trees with the
// constructors below.
type Doc interface {
	docNode()
}

type docNil struct{}

func (docNil) docNode() {}

type docCons struct{ a, b Doc }

func (docCons) docNode() {}

type docText struct{ s string }

func (docText) docNode() {}

type docNest struct {
	n int
	d Doc
}

func (docNest) docNode() {}

// blankSentinel is the "two-newline" break that, in break mode, renders a
// blank separator line before the next line's indentation (§3.2, §4.3).
const blankSentinel = "\n\n"

type docBreak struct{ s string }

func (docBreak) docNode() {}

type groupMode int

const (
	groupSelf groupMode = iota
	groupInherit
)

type docGroup struct {
	d    Doc
	mode groupMode
}

func (docGroup) docNode() {}

type docForceBreak struct{ d Doc }

func (docForceBreak) docNode() {}

// Nil is the empty document.
func Nil() Doc { return docNil{} }

func isNilDoc(d Doc) bool {
	_, ok := d.(docNil)
	return ok
}

// Cons concatenates a and b, collapsing cons(nil, x) = cons(x, nil) = x.
func Cons(a, b Doc) Doc {
	if isNilDoc(a) {
		return b
	}
	if isNilDoc(b) {
		return a
	}
	return docCons{a, b}
}

// ConsAll folds Cons over ds, right to left.
func ConsAll(ds ...Doc) Doc {
	d := Doc(docNil{})
	for i := len(ds) - 1; i >= 0; i-- {
		d = Cons(ds[i], d)
	}
	return d
}

// Text is a literal string that consumes byte_size(s) columns.
func Text(s string) Doc {
	if s == "" {
		return Nil()
	}
	return docText{s}
}

// Nest increases the indentation level by n inside d.
func Nest(n int, d Doc) Doc {
	if isNilDoc(d) {
		return d
	}
	return docNest{n, d}
}

// Break is a conditional separator: s verbatim when flat, a newline plus
// current indentation when broken (or a blank line first, when s is the
// two-newline sentinel).
func Break(s string) Doc { return docBreak{s} }

// Group is a self-deciding choice point: fits flat, or renders broken.
func Group(d Doc) Doc { return docGroup{d, groupSelf} }

// GroupInherit adopts the enclosing mode unconditionally rather than
// deciding independently.
func GroupInherit(d Doc) Doc { return docGroup{d, groupInherit} }

// ForceBreak compels the enclosing group to render broken when flag is
// true; force_break(false, x) = x, so unconditional wrapping is safe.
func ForceBreak(flag bool, d Doc) Doc {
	if !flag {
		return d
	}
	if _, ok := d.(docForceBreak); ok {
		return d
	}
	return docForceBreak{d}
}

// Space joins x and y with a break that collapses to a single space when
// flat.
func Space(x, y Doc) Doc { return Cons(x, Cons(Break(" "), y)) }

// Newline joins x and y with a break that is always a literal newline when
// flat and a freshly indented line when broken.
func Newline(x, y Doc) Doc { return Cons(x, Cons(Break("\n"), y)) }

// Newlines joins x and y with a blank-line separator.
func Newlines(x, y Doc) Doc { return Cons(x, Cons(Break(blankSentinel), y)) }

// Stick joins x and y with a break that collapses to nothing when flat —
// adjacency with a soft line-break opportunity.
func Stick(x, y Doc) Doc { return Cons(x, Cons(Break(""), y)) }
