package ical

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrDuplicateParam is returned when a content line carries the same
// parameter name more than once and is turned into a Property.
var ErrDuplicateParam = errors.New("duplicate parameter")

// ErrInvalidParamValue is returned by Format for a parameter value holding
// a DQUOTE or a control character, which no param-value can carry.
var ErrInvalidParamValue = errors.New("invalid parameter value")

// A SyntaxError reports the grammar rule that failed to match the input.
type SyntaxError struct {
	Rule     string // ABNF rule that failed, e.g. "param-value"
	Offset   int    // byte offset of the failure in the input of the outermost rule
	Found    string // unconsumed input at Offset
	Expected string // what the rule was looking for
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: found %s at offset %d, expected %s", e.Rule, found(e.Found), e.Offset, e.Expected)
}

// found renders the unconsumed input like a scanned item.
func found(s string) string {
	switch {
	case s == "":
		return "EOF"
	case utf8.RuneCountInString(s) > 10:
		return fmt.Sprintf("%.10q...", s)
	}
	return fmt.Sprintf("%q", s)
}

// syntaxError reports rule failing at rest, which must be a suffix of input.
func syntaxError(rule, input, rest, expected string) *SyntaxError {
	return &SyntaxError{
		Rule:     rule,
		Offset:   len(input) - len(rest),
		Found:    rest,
		Expected: expected,
	}
}

// within moves err, raised while parsing rest, onto the coordinates of input.
func within(err error, input, rest string) error {
	var se *SyntaxError
	if !errors.As(err, &se) {
		return err
	}
	moved := *se
	moved.Offset += len(input) - len(rest)
	return &moved
}
