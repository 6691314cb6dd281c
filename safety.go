// safety.go — the safety gate (C8), per §4.9/§6.5.
//
// FormatCodeWidth (format.go) is the orchestration; this file is just the
// structured error shape it raises when the gate trips, carrying both
// byte sequences so a caller can diff them off-line rather than trusting
// the formatter blindly.
package efmt

import "github.com/pkg/errors"

// SafetyError is returned when the safety gate refuses a formatting
// result: either the produced bytes failed to re-lex/re-parse, or they
// parsed to an AST that is not equivalent to the original's.
type SafetyError struct {
	Path     string
	Original []byte
	Produced []byte
	Msg      string
	Line     int
}

func (e *SafetyError) Error() string {
	if e.Path != "" {
		return errors.Errorf("efmt: formatter broke %s: %s", e.Path, e.Msg).Error()
	}
	return errors.Errorf("efmt: formatter broke the code: %s", e.Msg).Error()
}
