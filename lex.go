package ical

import (
	"strings"
	"unicode/utf8"
)

// Every rule function takes the input it should match at its start and
// returns what it matched plus the unconsumed rest. A rule that fails
// returns the input unchanged as rest, so the caller can try another
// alternative at the same position.

const (
	crlf = "\r\n"
	lf   = "\n"
)

// span returns the length in bytes of the longest prefix of s whose runes
// all satisfy f.
func span(s string, f func(rune) bool) int {
	i := 0
	for i < len(s) {
		r, w, ok := decodeRune(s[i:])
		if !ok || !f(r) {
			return i
		}
		i += w
	}
	return i
}

// decodeRune decodes the first rune of s. A byte that is not part of a
// valid UTF-8 sequence is not ok and belongs to no character class.
func decodeRune(s string) (r rune, width int, ok bool) {
	r, width = utf8.DecodeRuneInString(s)
	return r, width, width > 0 && !(r == utf8.RuneError && width == 1)
}

// fixed matches exactly n runes satisfying f.
func fixed(s string, n int, f func(rune) bool) (consumed, rest string, ok bool) {
	i := 0
	for k := 0; k < n; k++ {
		r, w, ok := decodeRune(s[i:])
		if !ok || !f(r) {
			return "", s, false
		}
		i += w
	}
	return s[:i], s[i:], true
}

// lineEnd matches the line terminator of a content line.
//
// CRLF is what RFC 5545 requires, a bare LF is accepted as well since
// plenty of producers emit it.
func lineEnd(s string) (rest string, ok bool) {
	switch {
	case strings.HasPrefix(s, crlf):
		return s[len(crlf):], true
	case strings.HasPrefix(s, lf):
		return s[len(lf):], true
	}
	return s, false
}

// ParseVendorID parses a vendor identification.
//
//	vendorid = 3*(ALPHA / DIGIT) ; Vendor identification
//
// Exactly three characters are consumed.
func ParseVendorID(s string) (string, string, error) {
	id, rest, ok := fixed(s, 3, isAlphaNum)
	if !ok {
		return "", s, syntaxError("vendorid", s, s, "3 alphanumeric characters")
	}
	return id, rest, nil
}

// ParseIANAToken parses an identifier registered with IANA.
//
//	iana-token = 1*(ALPHA / DIGIT / "-")
func ParseIANAToken(s string) (string, string, error) {
	n := span(s, isNameChar)
	if n == 0 {
		return "", s, syntaxError("iana-token", s, s, "alphanumeric character or \"-\"")
	}
	return s[:n], s[n:], nil
}

// ParseXName parses a name reserved for experimental use.
//
//	x-name = "X-" [vendorid "-"] 1*(ALPHA / DIGIT / "-")
//
// A bare "X-" is not an x-name.
func ParseXName(s string) (string, string, error) {
	if !strings.HasPrefix(s, "X-") {
		return "", s, syntaxError("x-name", s, s, `"X-"`)
	}
	rest := s[2:]
	// The optional vendorid "-" is made of name characters as well, so
	// both forms are covered by one run.
	n := span(rest, isNameChar)
	if n == 0 {
		return "", s, syntaxError("x-name", s, rest, "alphanumeric character or \"-\"")
	}
	return s[:2+n], rest[n:], nil
}

// XNameVendor returns the vendorid of an x-name such as "X-ABC-FOO".
// It reports false when name carries no vendor part.
func XNameVendor(name string) (string, bool) {
	if _, rest, err := ParseXName(name); err != nil || rest != "" {
		return "", false
	}
	id, rest, err := ParseVendorID(name[2:])
	if err != nil || !strings.HasPrefix(rest, "-") || len(rest) == 1 {
		return "", false
	}
	return id, true
}

// ParseName parses a property name.
//
//	name = iana-token / x-name
//
// x-name is tried before iana-token. "X-" alone is still accepted, as an
// iana-token.
func ParseName(s string) (string, string, error) {
	return parseIdentifier("name", s)
}

func parseIdentifier(rule, s string) (string, string, error) {
	if name, rest, err := ParseXName(s); err == nil {
		return name, rest, nil
	}
	if name, rest, err := ParseIANAToken(s); err == nil {
		return name, rest, nil
	}
	return "", s, syntaxError(rule, s, s, "iana-token or x-name")
}

// ParseEscapedChar parses an escape sequence of a TEXT value and returns
// the character it encodes.
//
//	ESCAPED-CHAR = ("\\" / "\;" / "\," / "\N" / "\n")
//	; \\ encodes \, \N or \n encodes newline
//	; \; encodes ;, \, encodes ,
func ParseEscapedChar(s string) (rune, string, error) {
	if len(s) >= 2 && s[0] == '\\' {
		switch s[1] {
		case '\\', ';', ',':
			return rune(s[1]), s[2:], nil
		case 'N', 'n':
			return '\n', s[2:], nil
		}
	}
	return 0, s, syntaxError("ESCAPED-CHAR", s, s, `one of \\ \; \, \N \n`)
}
