package ical

import (
	"strings"
)

// ParseParamText parses an unquoted parameter value. It never fails, an
// empty match is valid.
//
//	paramtext = *SAFE-CHAR
func ParseParamText(s string) (string, string) {
	n := span(s, IsSafeChar)
	return s[:n], s[n:]
}

// ParseQuotedString parses a quoted parameter value and returns it without
// its quotes. A string whose closing quote is missing does not match at all.
//
//	quoted-string = DQUOTE *QSAFE-CHAR DQUOTE
func ParseQuotedString(s string) (string, string, error) {
	if !strings.HasPrefix(s, `"`) {
		return "", s, syntaxError("quoted-string", s, s, "DQUOTE")
	}
	n := 1 + span(s[1:], IsQSafeChar)
	if !strings.HasPrefix(s[n:], `"`) {
		return "", s, syntaxError("quoted-string", s, s[n:], "closing DQUOTE")
	}
	return s[1:n], s[n+1:], nil
}

// ParseParamValue parses one parameter value.
//
//	param-value = paramtext / quoted-string
//
// quoted-string is tried first, otherwise paramtext would stop on the
// opening quote. Since paramtext accepts the empty string, an unterminated
// quoted-string yields an empty value and leaves the quote unconsumed.
func ParseParamValue(s string) (string, string) {
	if v, rest, err := ParseQuotedString(s); err == nil {
		return v, rest
	}
	return ParseParamText(s)
}

// ParseParamName parses a parameter name, with the same x-name before
// iana-token policy as ParseName.
//
//	param-name = iana-token / x-name
func ParseParamName(s string) (string, string, error) {
	return parseIdentifier("param-name", s)
}

// ParseParam parses a parameter and its comma separated values.
//
//	param = param-name "=" param-value *("," param-value)
func ParseParam(s string) (*Param, string, error) {
	name, rest, err := ParseParamName(s)
	if err != nil {
		return nil, s, err
	}
	if !strings.HasPrefix(rest, "=") {
		return nil, s, syntaxError("param", s, rest, `"="`)
	}

	param := NewParam(name)
	v, rest := ParseParamValue(rest[1:])
	param.Values = append(param.Values, v)

	for strings.HasPrefix(rest, ",") {
		v, rest = ParseParamValue(rest[1:])
		param.Values = append(param.Values, v)
	}
	return param, rest, nil
}

// parseParams parses the parameter list of a content line.
//
//	*(";" param)
func parseParams(s string) ([]*Param, string, error) {
	var params []*Param
	rest := s
	for strings.HasPrefix(rest, ";") {
		param, next, err := ParseParam(rest[1:])
		if err != nil {
			return nil, s, within(err, s, rest[1:])
		}
		params = append(params, param)
		rest = next
	}
	return params, rest, nil
}

// ParseValue parses the raw value of a content line. It never fails.
//
//	value      = *VALUE-CHAR
//	VALUE-CHAR = WSP / %x21-7E / NON-US-ASCII ; Any textual character
func ParseValue(s string) (string, string) {
	n := span(s, IsValueChar)
	return s[:n], s[n:]
}

// ParseContentLine parses one unfolded content line, line terminator
// included.
//
//	contentline = name *(";" param ) ":" value CRLF
//
// Parameters are returned in source order. Repeated parameter names are
// kept, ContentLine.Property decides what to do with them.
func ParseContentLine(s string) (*ContentLine, string, error) {
	name, rest, err := ParseName(s)
	if err != nil {
		return nil, s, err
	}

	params, next, err := parseParams(rest)
	if err != nil {
		return nil, s, within(err, s, rest)
	}
	rest = next

	if !strings.HasPrefix(rest, ":") {
		return nil, s, syntaxError("contentline", s, rest, `":"`)
	}

	value, rest := ParseValue(rest[1:])

	rest, ok := lineEnd(rest)
	if !ok {
		return nil, s, syntaxError("contentline", s, rest, "CRLF")
	}

	return &ContentLine{Name: name, Params: params, Value: value}, rest, nil
}
