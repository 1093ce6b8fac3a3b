package ical

import (
	"net/url"
	"strings"
)

// URI grammar of RFC 3986, used by the URI and CAL-ADDRESS value types.

func isSchemeChar(r rune) bool {
	return isAlphaNum(r) || r == '+' || r == '-' || r == '.'
}

// isURIChar reports whether r is an unreserved or reserved URI character.
//
//	unreserved = ALPHA / DIGIT / "-" / "." / "_" / "~"
//	reserved   = gen-delims / sub-delims
//	gen-delims = ":" / "/" / "?" / "#" / "[" / "]" / "@"
//	sub-delims = "!" / "$" / "&" / "'" / "(" / ")"
//	           / "*" / "+" / "," / ";" / "="
func isURIChar(r rune) bool {
	return isAlphaNum(r) || strings.ContainsRune("-._~:/?#[]@!$&'()*+,;=", r)
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// uriChars returns the length of the run of URI characters and
// percent-encoded octets at the start of s.
func uriChars(s string) int {
	i := 0
	for i < len(s) {
		if s[i] == '%' {
			if i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
				i += 3
				continue
			}
			return i
		}
		if !isURIChar(rune(s[i])) {
			return i
		}
		i++
	}
	return i
}

// ParseURI parses a URI at the start of s and returns its text.
//
//	URI    = scheme ":" hier-part [ "?" query ] [ "#" fragment ]
//	scheme = ALPHA *( ALPHA / DIGIT / "+" / "-" / "." )
//
// The characters of the URI are matched here, its structure (authority,
// port, IPv6 literal) is checked with net/url.
func ParseURI(s string) (string, string, error) {
	if s == "" || !isAlpha(rune(s[0])) {
		return "", s, syntaxError("uri", s, s, "scheme")
	}
	n := 1 + span(s[1:], isSchemeChar)
	if !strings.HasPrefix(s[n:], ":") {
		return "", s, syntaxError("uri", s, s[n:], `":" after scheme`)
	}
	n += 1 + uriChars(s[n+1:])

	if _, err := url.Parse(s[:n]); err != nil {
		return "", s, syntaxError("uri", s, s, "valid URI ("+err.Error()+")")
	}
	return s[:n], s[n:], nil
}
