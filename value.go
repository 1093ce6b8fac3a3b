package ical

import (
	"encoding/base64"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xyedo/rrule"
)

// A ValueType names the format of a property value, as found in the VALUE
// parameter.
type ValueType string

// Value types of RFC 5545 section 3.3.
const (
	TypeBinary     ValueType = "BINARY"
	TypeBoolean    ValueType = "BOOLEAN"
	TypeCalAddress ValueType = "CAL-ADDRESS"
	TypeDate       ValueType = "DATE"
	TypeDateTime   ValueType = "DATE-TIME"
	TypeDuration   ValueType = "DURATION"
	TypeFloat      ValueType = "FLOAT"
	TypeInteger    ValueType = "INTEGER"
	TypePeriod     ValueType = "PERIOD"
	TypeRecur      ValueType = "RECUR"
	TypeText       ValueType = "TEXT"
	TypeTime       ValueType = "TIME"
	TypeURI        ValueType = "URI"
	TypeUTCOffset  ValueType = "UTC-OFFSET"
)

var knownTypes = map[ValueType]bool{
	TypeBinary:     true,
	TypeBoolean:    true,
	TypeCalAddress: true,
	TypeDate:       true,
	TypeDateTime:   true,
	TypeDuration:   true,
	TypeFloat:      true,
	TypeInteger:    true,
	TypePeriod:     true,
	TypeRecur:      true,
	TypeText:       true,
	TypeTime:       true,
	TypeURI:        true,
	TypeUTCOffset:  true,
}

// ParseValueType returns the ValueType named by s, matched case
// insensitively. Names outside RFC 5545 are returned as given and decode
// to XType.
func ParseValueType(s string) ValueType {
	if t := ValueType(strings.ToUpper(s)); knownTypes[t] {
		return t
	}
	return ValueType(s)
}

// A Value is a decoded property value. Its dynamic type is one of Binary,
// Boolean, CalAddress, Date, DateTime, Duration, Float, Integer, Period,
// Recur, Text, Time, URI, UTCOffset or XType, a List of those, or one of
// the structured values Geo, RequestStatus and Version.
type Value interface {
	Type() ValueType
	String() string
	isValue()
}

// Binary is BASE64 text whose shape has been checked. It is kept encoded.
type Binary string

// Boolean is a BOOLEAN value.
type Boolean bool

// CalAddress is a calendar user address, a URI.
type CalAddress string

// Date is a DATE value such as "19970714".
type Date string

// DateTime is a DATE-TIME value such as "19970714T133000Z".
type DateTime string

// Duration is a DURATION value such as "-PT15M".
type Duration string

// Float is a FLOAT value.
type Float float64

// Integer is an INTEGER value.
type Integer int32

// Period is a PERIOD value, explicit or start plus duration.
type Period string

// Recur is a recurrence rule such as "FREQ=DAILY;COUNT=10".
type Recur string

// Text is a TEXT value with its escape sequences decoded.
type Text string

// Time is a TIME value such as "133000Z".
type Time string

// URI is a URI value.
type URI string

// UTCOffset is a UTC-OFFSET value such as "-0500".
type UTCOffset string

// XType is a value of a type this package does not know, kept raw.
type XType struct {
	Name ValueType
	Raw  string
}

// A List holds the comma separated values of a property such as
// CATEGORIES or EXDATE. Its Type is the type of the elements.
type List struct {
	Elem   ValueType
	Values []Value
}

// Geo is the value of GEO.
//
//	geovalue = float ";" float
//	;Latitude and Longitude components
type Geo struct {
	Latitude  Float
	Longitude Float
}

// RequestStatus is the value of REQUEST-STATUS, with its text
// components decoded.
type RequestStatus struct {
	Code        string
	Description string
	Data        string // empty when absent
}

// Version is the value of VERSION. Min is empty unless a range was given.
type Version struct {
	Min string
	Max string
}

func (Binary) Type() ValueType        { return TypeBinary }
func (Boolean) Type() ValueType       { return TypeBoolean }
func (CalAddress) Type() ValueType    { return TypeCalAddress }
func (Date) Type() ValueType          { return TypeDate }
func (DateTime) Type() ValueType      { return TypeDateTime }
func (Duration) Type() ValueType      { return TypeDuration }
func (Float) Type() ValueType         { return TypeFloat }
func (Integer) Type() ValueType       { return TypeInteger }
func (Period) Type() ValueType        { return TypePeriod }
func (Recur) Type() ValueType         { return TypeRecur }
func (Text) Type() ValueType          { return TypeText }
func (Time) Type() ValueType          { return TypeTime }
func (URI) Type() ValueType           { return TypeURI }
func (UTCOffset) Type() ValueType     { return TypeUTCOffset }
func (v XType) Type() ValueType       { return v.Name }
func (v List) Type() ValueType        { return v.Elem }
func (Geo) Type() ValueType           { return TypeFloat }
func (RequestStatus) Type() ValueType { return TypeText }
func (Version) Type() ValueType       { return TypeText }

func (v Binary) String() string     { return string(v) }
func (v CalAddress) String() string { return string(v) }
func (v Date) String() string       { return string(v) }
func (v DateTime) String() string   { return string(v) }
func (v Duration) String() string   { return string(v) }
func (v Period) String() string     { return string(v) }
func (v Recur) String() string      { return string(v) }
func (v Text) String() string       { return string(v) }
func (v Time) String() string       { return string(v) }
func (v URI) String() string        { return string(v) }
func (v UTCOffset) String() string  { return string(v) }
func (v XType) String() string      { return v.Raw }

func (v Boolean) String() string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

func (v Float) String() string {
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}

func (v Integer) String() string {
	return strconv.FormatInt(int64(v), 10)
}

func (v List) String() string {
	elems := make([]string, len(v.Values))
	for i, e := range v.Values {
		elems[i] = e.String()
	}
	return strings.Join(elems, ",")
}

func (v Geo) String() string {
	return v.Latitude.String() + ";" + v.Longitude.String()
}

func (v RequestStatus) String() string {
	s := v.Code + ";" + v.Description
	if v.Data != "" {
		s += ";" + v.Data
	}
	return s
}

func (v Version) String() string {
	if v.Min == "" {
		return v.Max
	}
	return v.Min + ";" + v.Max
}

func (Binary) isValue()        {}
func (Boolean) isValue()       {}
func (CalAddress) isValue()    {}
func (Date) isValue()          {}
func (DateTime) isValue()      {}
func (Duration) isValue()      {}
func (Float) isValue()         {}
func (Integer) isValue()       {}
func (Period) isValue()        {}
func (Recur) isValue()         {}
func (Text) isValue()          {}
func (Time) isValue()          {}
func (URI) isValue()           {}
func (UTCOffset) isValue()     {}
func (XType) isValue()         {}
func (List) isValue()          {}
func (Geo) isValue()           {}
func (RequestStatus) isValue() {}
func (Version) isValue()       {}

func (v List) clone() List {
	v.Values = append([]Value(nil), v.Values...)
	return v
}

// Bytes decodes the BASE64 text.
func (v Binary) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(string(v))
}

// DecodeValue decodes raw, the whole value of a content line, as a value
// of type t. Unknown types decode to XType.
func DecodeValue(t ValueType, raw string) (Value, error) {
	v, rest, err := parseValue(t, raw)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, syntaxError(strings.ToLower(string(t)), raw, rest, "end of value")
	}
	return v, nil
}

// DecodeList decodes raw as a comma separated list of values of type t.
//
//	value *("," value)
//
// Values of an unknown type cannot be split and decode to a single XType.
func DecodeList(t ValueType, raw string) (Value, error) {
	if !knownTypes[t] {
		return DecodeValue(t, raw)
	}
	list := List{Elem: t}
	rest := raw
	for {
		v, next, err := parseValue(t, rest)
		if err != nil {
			return nil, within(err, raw, rest)
		}
		list.Values = append(list.Values, v)
		if !strings.HasPrefix(next, ",") {
			rest = next
			break
		}
		rest = next[1:]
	}
	if rest != "" {
		return nil, syntaxError(strings.ToLower(string(t)), raw, rest, `"," or end of value`)
	}
	return list, nil
}

// parseValue parses a value of type t at the start of s. Unknown types
// take all of s as an XType.
func parseValue(t ValueType, s string) (Value, string, error) {
	var (
		v    Value
		rest string
		err  error
	)
	switch t {
	case TypeBinary:
		v, rest, err = ParseBinary(s)
	case TypeBoolean:
		v, rest, err = ParseBoolean(s)
	case TypeCalAddress:
		v, rest, err = ParseCalAddress(s)
	case TypeDate:
		v, rest, err = ParseDate(s)
	case TypeDateTime:
		v, rest, err = ParseDateTime(s)
	case TypeDuration:
		v, rest, err = ParseDuration(s)
	case TypeFloat:
		v, rest, err = ParseFloat(s)
	case TypeInteger:
		v, rest, err = ParseInteger(s)
	case TypePeriod:
		v, rest, err = ParsePeriod(s)
	case TypeRecur:
		v, rest, err = ParseRecur(s)
	case TypeText:
		v, rest = ParseText(s)
	case TypeTime:
		v, rest, err = ParseTime(s)
	case TypeURI:
		var u string
		u, rest, err = ParseURI(s)
		v = URI(u)
	case TypeUTCOffset:
		v, rest, err = ParseUTCOffset(s)
	default:
		v = XType{Name: t, Raw: s}
	}
	if err != nil {
		return nil, s, err
	}
	return v, rest, nil
}

// ParseText parses a TEXT value and decodes its escape sequences. It never
// fails, the empty text is valid.
//
//	text = *(TSAFE-CHAR / ":" / DQUOTE / ESCAPED-CHAR)
//	; Folded according to description above
func ParseText(s string) (Text, string) {
	var b strings.Builder
	rest := s
	for rest != "" {
		r, w, ok := decodeRune(rest)
		switch {
		case !ok:
			return Text(b.String()), rest
		case IsTSafeChar(r), r == ':', r == '"':
			b.WriteString(rest[:w])
			rest = rest[w:]
		case r == '\\':
			c, next, err := ParseEscapedChar(rest)
			if err != nil {
				return Text(b.String()), rest
			}
			b.WriteRune(c)
			rest = next
		default:
			return Text(b.String()), rest
		}
	}
	return Text(b.String()), rest
}

// ParsePIDValue parses the value of PRODID.
//
//	pidvalue = text
//	;Any text that describes the product and version
//	;and that is generally assured of being unique.
func ParsePIDValue(s string) (Text, string) {
	return ParseText(s)
}

// ParseBinary parses BASE64 text. The text is checked, not decoded.
//
//	binary = *(4b-char) [b-end]
//	; A "BASE64" encoded character string, as defined by [RFC4648].
//	b-end  = (2b-char "==") / (3b-char "=")
//
// Input ending in a group that is neither four characters nor a padded
// b-end fails.
func ParseBinary(s string) (Binary, string, error) {
	rest := s
	for {
		_, next, ok := fixed(rest, 4, isBChar)
		if !ok {
			break
		}
		rest = next
	}
	if next, ok := bEnd(rest); ok {
		rest = next
	}
	if r, _ := utf8.DecodeRuneInString(rest); rest != "" && (isBChar(r) || r == '=') {
		return "", s, syntaxError("binary", s, rest, "4 BASE64 characters or a padded end")
	}
	return Binary(s[:len(s)-len(rest)]), rest, nil
}

func bEnd(s string) (string, bool) {
	if _, rest, ok := fixed(s, 2, isBChar); ok && strings.HasPrefix(rest, "==") {
		return rest[2:], true
	}
	if _, rest, ok := fixed(s, 3, isBChar); ok && strings.HasPrefix(rest, "=") {
		return rest[1:], true
	}
	return s, false
}

// ParseBoolean parses a BOOLEAN value. The match is case sensitive.
//
//	boolean = "TRUE" / "FALSE"
func ParseBoolean(s string) (Boolean, string, error) {
	switch {
	case strings.HasPrefix(s, "TRUE"):
		return true, s[4:], nil
	case strings.HasPrefix(s, "FALSE"):
		return false, s[5:], nil
	}
	return false, s, syntaxError("boolean", s, s, `"TRUE" or "FALSE"`)
}

// ParseCalAddress parses a calendar user address.
//
//	cal-address = uri
func ParseCalAddress(s string) (CalAddress, string, error) {
	u, rest, err := ParseURI(s)
	if err != nil {
		return "", s, err
	}
	return CalAddress(u), rest, nil
}

// ParseDate parses a DATE value. Month and day are not range checked.
//
//	date-value    = date-fullyear date-month date-mday
//	date-fullyear = 4DIGIT
//	date-month    = 2DIGIT ;01-12
//	date-mday     = 2DIGIT ;01-28, 01-29, 01-30, 01-31
func ParseDate(s string) (Date, string, error) {
	rest := s
	for _, group := range []struct {
		rule  string
		width int
	}{
		{"date-fullyear", 4},
		{"date-month", 2},
		{"date-mday", 2},
	} {
		_, next, ok := fixed(rest, group.width, isDigit)
		if !ok {
			return "", s, syntaxError(group.rule, s, rest, strconv.Itoa(group.width)+" digits")
		}
		rest = next
	}
	return Date(s[:len(s)-len(rest)]), rest, nil
}

// signedDigits matches (["+"] / "-") 1*DIGIT.
func signedDigits(s string) (string, bool) {
	rest := s
	if strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
		rest = rest[1:]
	}
	n := span(rest, isDigit)
	if n == 0 {
		return s, false
	}
	return rest[n:], true
}

// ParseFloat parses a FLOAT value.
//
//	float = (["+"] / "-") 1*DIGIT ["." 1*DIGIT]
func ParseFloat(s string) (Float, string, error) {
	rest, ok := signedDigits(s)
	if !ok {
		return 0, s, syntaxError("float", s, s, "digits")
	}
	if strings.HasPrefix(rest, ".") {
		if n := span(rest[1:], isDigit); n > 0 {
			rest = rest[1+n:]
		}
	}
	f, err := strconv.ParseFloat(s[:len(s)-len(rest)], 64)
	if err != nil {
		return 0, s, syntaxError("float", s, s, "a float64")
	}
	return Float(f), rest, nil
}

// ParseInteger parses an INTEGER value, which must fit in 32 bits.
//
//	integer = (["+"] / "-") 1*DIGIT
func ParseInteger(s string) (Integer, string, error) {
	rest, ok := signedDigits(s)
	if !ok {
		return 0, s, syntaxError("integer", s, s, "digits")
	}
	i, err := strconv.ParseInt(s[:len(s)-len(rest)], 10, 32)
	if err != nil {
		return 0, s, syntaxError("integer", s, s, "an integer between -2147483648 and 2147483647")
	}
	return Integer(i), rest, nil
}

func isRecurChar(r rune) bool {
	return isAlphaNum(r) || strings.ContainsRune("=;,+-", r)
}

// ParseRecur parses a recurrence rule. The rule parts are checked by
// building the rule, no occurrence is computed.
//
//	recur = recur-rule-part *( ";" recur-rule-part )
func ParseRecur(s string) (Recur, string, error) {
	n := span(s, isRecurChar)
	if n == 0 {
		return "", s, syntaxError("recur", s, s, "recur-rule-part")
	}
	if _, err := rrule.StrToRRule(s[:n]); err != nil {
		return "", s, syntaxError("recur", s, s, "valid recurrence rule ("+err.Error()+")")
	}
	return Recur(s[:n]), s[n:], nil
}
