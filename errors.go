package html5

import "fmt"

// A ParseError records one deviation from conformant input. Errors are
// advisory: the parser always recovers and keeps going, so a non-empty error
// list never implies a missing or partial tree.
type ParseError struct {
	// Code is the error name from the HTML standard, e.g.
	// "unexpected-null-character" or "eof-in-tag".
	Code string
	// Line and Col locate the offending code point in the original text,
	// both 1-based. Col counts code points, not bytes.
	Line, Col int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Code)
}
