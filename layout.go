// layout.go — the layout engine (C3), per §4.3.
//
// Tail-recursive over the explicit frame stack; the only "backtracking" is
// the bounded fits() probe invoked once per group. No host recursion, so
// stack depth is bounded by an explicit Go slice rather than the call
// stack, per §5/§9.
package efmt

// sevent is one unit of the SDoc string-event sequence (§3.3): either a
// literal run of text, or a line break followed by indent spaces.
type sevent struct {
	text   string
	indent int
	isLine bool
}

// layoutDoc reduces doc to an SDoc (here, a flat slice of sevents) under
// width w. The outermost call always wraps doc in an extra Group so the
// root itself is a decision point, per §4.3's closing paragraph.
func layoutDoc(w int, doc Doc) []sevent {
	var out []sevent
	k := 0
	stack := []frame{{0, modeFlat, Group(doc)}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch d := f.doc.(type) {
		case docNil:
			// discard

		case docCons:
			stack = append(stack, frame{f.indent, f.mode, d.b}, frame{f.indent, f.mode, d.a})

		case docText:
			out = append(out, sevent{text: d.s})
			k += len(d.s)

		case docNest:
			stack = append(stack, frame{f.indent + d.n, f.mode, d.d})

		case docBreak:
			if f.mode == modeFlat {
				out = append(out, sevent{text: d.s})
				k += len(d.s)
				continue
			}
			if d.s == blankSentinel {
				out = append(out, sevent{isLine: true, indent: 0})
			}
			out = append(out, sevent{isLine: true, indent: f.indent})
			k = f.indent

		case docForceBreak:
			stack = append(stack, frame{f.indent, modeBreak, d.d})

		case docGroup:
			if d.mode == groupInherit {
				stack = append(stack, frame{f.indent, f.mode, d.d})
				continue
			}
			if fits(w-k, []frame{{f.indent, modeFlat, d.d}}) {
				stack = append(stack, frame{f.indent, modeFlat, d.d})
			} else {
				stack = append(stack, frame{f.indent, modeBreak, d.d})
			}

		default:
			// unreachable: Doc is a sealed set of the variants above.
		}
	}
	return out
}
