// emit.go — the string emitter (C4), per §4.4.
package efmt

import "strings"

// emitSDoc serialises an SDoc (here, the sevent slice produced by
// layoutDoc) to bytes, expanding each line event into a newline plus its
// indent spaces, and appends a terminating newline.
func emitSDoc(events []sevent) string {
	var b strings.Builder
	for _, e := range events {
		if e.isLine {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", e.indent))
			continue
		}
		b.WriteString(e.text)
	}
	b.WriteByte('\n')
	return b.String()
}

// render is the composition of C3 and C4: lay doc out at width w and
// serialise the result. Pretty (format.go) is its public, byte-returning
// wrapper.
func render(doc Doc, w int) string {
	return emitSDoc(layoutDoc(w, doc))
}
