package ical

// Character classes of RFC 5545 section 3.1 and RFC 5234 appendix B.
//
// All predicates work on decoded runes, so the UTF8-2 / UTF8-3 / UTF8-4
// byte ranges of RFC 3629 collapse into "any rune at or above 0x80".
// Bytes that are not valid UTF-8 never reach them: the rules stop on the
// first such byte (see decodeRune).

// IsNonUSASCII reports whether r is a NON-US-ASCII character.
//
//	NON-US-ASCII = UTF8-2 / UTF8-3 / UTF8-4
func IsNonUSASCII(r rune) bool {
	return r >= 0x80
}

// IsWSP reports whether r is a space or a horizontal tab.
//
//	WSP = SP / HTAB
func IsWSP(r rune) bool {
	return r == ' ' || r == '\t'
}

// IsSafeChar reports whether r may appear in an unquoted parameter value.
//
//	SAFE-CHAR = WSP / %x21 / %x23-2B / %x2D-39 / %x3C-7E / NON-US-ASCII
//	; Any character except CONTROL, DQUOTE, ";", ":", ","
func IsSafeChar(r rune) bool {
	switch {
	case IsWSP(r), r == 0x21:
		return true
	case r >= 0x23 && r <= 0x2B:
		return true
	case r >= 0x2D && r <= 0x39:
		return true
	case r >= 0x3C && r <= 0x7E:
		return true
	}
	return IsNonUSASCII(r)
}

// IsQSafeChar reports whether r may appear between the quotes of a
// quoted-string.
//
//	QSAFE-CHAR = WSP / %x21 / %x23-7E / NON-US-ASCII
//	; Any character except CONTROL and DQUOTE
func IsQSafeChar(r rune) bool {
	switch {
	case IsWSP(r), r == 0x21:
		return true
	case r >= 0x23 && r <= 0x7E:
		return true
	}
	return IsNonUSASCII(r)
}

// IsValueChar reports whether r may appear in a raw property value.
//
//	VALUE-CHAR = WSP / %x21-7E / NON-US-ASCII
//	; Any textual character
func IsValueChar(r rune) bool {
	return IsWSP(r) || (r >= 0x21 && r <= 0x7E) || IsNonUSASCII(r)
}

// IsTSafeChar reports whether r may appear unescaped in a TEXT value.
//
//	TSAFE-CHAR = WSP / %x21 / %x23-2B / %x2D-39 / %x3C-5B /
//	             %x5D-7E / NON-US-ASCII
//	; Any character except CONTROLs not needed by the current
//	; character set, DQUOTE, ";", ":", "\", ","
func IsTSafeChar(r rune) bool {
	return r != '\\' && IsSafeChar(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isAlphaNum(r rune) bool {
	return isAlpha(r) || isDigit(r)
}

// isNameChar reports whether r may appear in an iana-token or x-name.
func isNameChar(r rune) bool {
	return isAlphaNum(r) || r == '-'
}

// isBChar reports whether r belongs to the BASE64 alphabet.
//
//	b-char = ALPHA / DIGIT / "+" / "/"
func isBChar(r rune) bool {
	return isAlphaNum(r) || r == '+' || r == '/'
}
