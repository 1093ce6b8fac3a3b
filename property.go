package ical

import (
	"strings"
)

// A valueRule tells how the value of a property is decoded when no VALUE
// parameter says otherwise.
type valueRule struct {
	typ   ValueType
	list  bool                                // "," separated values of typ
	parse func(string) (Value, string, error) // structured value
}

// valueRules holds the properties of RFC 5545 sections 3.7 and 3.8.
var valueRules = map[string]valueRule{
	// calendar
	"CALSCALE": {typ: TypeText},
	"METHOD":   {typ: TypeText},
	"PRODID":   {typ: TypeText},
	"VERSION":  {typ: TypeText, parse: parseVersionValue},
	// descriptive
	"ATTACH":           {typ: TypeURI},
	"CATEGORIES":       {typ: TypeText, list: true},
	"CLASS":            {typ: TypeText},
	"COMMENT":          {typ: TypeText},
	"DESCRIPTION":      {typ: TypeText},
	"GEO":              {typ: TypeFloat, parse: parseGeo},
	"LOCATION":         {typ: TypeText},
	"PERCENT-COMPLETE": {typ: TypeInteger},
	"PRIORITY":         {typ: TypeInteger},
	"RESOURCES":        {typ: TypeText, list: true},
	"STATUS":           {typ: TypeText},
	"SUMMARY":          {typ: TypeText},
	// date and time
	"COMPLETED": {typ: TypeDateTime},
	"DTEND":     {typ: TypeDateTime},
	"DUE":       {typ: TypeDateTime},
	"DTSTART":   {typ: TypeDateTime},
	"DURATION":  {typ: TypeDuration},
	"FREEBUSY":  {typ: TypePeriod, list: true},
	"TRANSP":    {typ: TypeText},
	// time zone
	"TZID":         {typ: TypeText},
	"TZNAME":       {typ: TypeText},
	"TZOFFSETFROM": {typ: TypeUTCOffset},
	"TZOFFSETTO":   {typ: TypeUTCOffset},
	"TZURL":        {typ: TypeURI},
	// relationship
	"ATTENDEE":      {typ: TypeCalAddress},
	"CONTACT":       {typ: TypeText},
	"ORGANIZER":     {typ: TypeCalAddress},
	"RECURRENCE-ID": {typ: TypeDateTime},
	"RELATED-TO":    {typ: TypeText},
	"URL":           {typ: TypeURI},
	"UID":           {typ: TypeText},
	// recurrence
	"EXDATE": {typ: TypeDateTime, list: true},
	"RDATE":  {typ: TypeDateTime, list: true},
	"RRULE":  {typ: TypeRecur},
	// alarm
	"ACTION":  {typ: TypeText},
	"REPEAT":  {typ: TypeInteger},
	"TRIGGER": {typ: TypeDuration},
	// change management
	"CREATED":       {typ: TypeDateTime},
	"DTSTAMP":       {typ: TypeDateTime},
	"LAST-MODIFIED": {typ: TypeDateTime},
	"SEQUENCE":      {typ: TypeInteger},
	// miscellaneous
	"REQUEST-STATUS": {typ: TypeText, parse: parseRequestStatus},
}

// DefaultValueType returns the value type a property has when no VALUE
// parameter is given. For list valued properties it is the type of the
// elements. Unknown and experimental properties default to TEXT.
func DefaultValueType(property string) ValueType {
	if r, ok := valueRules[strings.ToUpper(property)]; ok {
		return r.typ
	}
	return TypeText
}

// decodeProperty decodes raw, the whole value of property. A VALUE
// parameter replaces the type of the property but not its list form.
func decodeProperty(property string, params []*Param, raw string) (Value, error) {
	rule, ok := valueRules[strings.ToUpper(property)]
	if !ok {
		rule.typ = TypeText
	}
	t, explicit := valueParam(params)
	if !explicit {
		t = rule.typ
	}

	switch {
	case rule.parse != nil && t == rule.typ:
		v, rest, err := rule.parse(raw)
		if err != nil {
			return nil, err
		}
		if rest != "" {
			return nil, syntaxError(strings.ToLower(property), raw, rest, "end of value")
		}
		return v, nil
	case rule.list:
		return DecodeList(t, raw)
	}
	return DecodeValue(t, raw)
}

func isVersionChar(r rune) bool {
	return isDigit(r) || r == '.'
}

// parseVersionValue parses the value of VERSION.
//
//	vervalue = "2.0"         ;This memo
//	         / maxver
//	         / (minver ";" maxver)
func parseVersionValue(s string) (Value, string, error) {
	n := span(s, isVersionChar)
	if n == 0 {
		return nil, s, syntaxError("vervalue", s, s, "version number")
	}
	if strings.HasPrefix(s[n:], ";") {
		if m := span(s[n+1:], isVersionChar); m > 0 {
			return Version{Min: s[:n], Max: s[n+1 : n+1+m]}, s[n+1+m:], nil
		}
	}
	return Version{Max: s[:n]}, s[n:], nil
}

// parseGeo parses the value of GEO.
//
//	geovalue = float ";" float
func parseGeo(s string) (Value, string, error) {
	lat, rest, err := ParseFloat(s)
	if err != nil {
		return nil, s, err
	}
	if !strings.HasPrefix(rest, ";") {
		return nil, s, syntaxError("geovalue", s, rest, `";"`)
	}
	lon, next, err := ParseFloat(rest[1:])
	if err != nil {
		return nil, s, within(err, s, rest[1:])
	}
	return Geo{Latitude: lat, Longitude: lon}, next, nil
}

// parseRequestStatus parses the value of REQUEST-STATUS.
//
//	rstatus  = statcode ";" statdesc [";" extdata]
//	statcode = 1*DIGIT 1*2("." 1*DIGIT)
//	statdesc = text
//	extdata  = text
func parseRequestStatus(s string) (Value, string, error) {
	n := span(s, isDigit)
	for dots := 0; n > 0 && dots < 2 && strings.HasPrefix(s[n:], "."); dots++ {
		m := span(s[n+1:], isDigit)
		if m == 0 {
			break
		}
		n += 1 + m
	}
	if n == 0 || !strings.Contains(s[:n], ".") {
		return nil, s, syntaxError("statcode", s, s[n:], "status code such as 2.0")
	}
	if !strings.HasPrefix(s[n:], ";") {
		return nil, s, syntaxError("rstatus", s, s[n:], `";"`)
	}
	desc, rest := ParseText(s[n+1:])
	v := RequestStatus{Code: s[:n], Description: string(desc)}
	if strings.HasPrefix(rest, ";") {
		var data Text
		data, rest = ParseText(rest[1:])
		v.Data = string(data)
	}
	return v, rest, nil
}

// A propertyRule describes the grammar of one property:
//
//	name *(";" param) ":" value CRLF
type propertyRule struct {
	rule  string
	name  func(string) (string, string, error)
	value func(name string, params []*Param, s string) (Value, string, error)
}

func (pr propertyRule) parse(s string) (*Property, string, error) {
	name, rest, err := pr.name(s)
	if err != nil {
		return nil, s, err
	}

	params, next, err := parseParams(rest)
	if err != nil {
		return nil, s, within(err, s, rest)
	}
	rest = next

	if !strings.HasPrefix(rest, ":") {
		return nil, s, syntaxError(pr.rule, s, rest, `":"`)
	}
	rest = rest[1:]

	value, next, err := pr.value(name, params, rest)
	if err != nil {
		return nil, s, within(err, s, rest)
	}
	rest = next

	rest, ok := lineEnd(rest)
	if !ok {
		return nil, s, syntaxError(pr.rule, s, rest, "CRLF")
	}

	m, err := paramMap(name, params)
	if err != nil {
		return nil, s, err
	}
	return &Property{name: name, params: m, value: value}, rest, nil
}

// literal matches the property name want, case insensitively.
func literal(want string) func(string) (string, string, error) {
	rule := strings.ToLower(want)
	return func(s string) (string, string, error) {
		name, rest, err := ParseIANAToken(s)
		if err != nil || !strings.EqualFold(name, want) {
			return "", s, syntaxError(rule, s, s, `"`+want+`"`)
		}
		return name, rest, nil
	}
}

// typedValue decodes the rest of the line according to the property name
// and its VALUE parameter.
func typedValue(name string, params []*Param, s string) (Value, string, error) {
	raw, rest := ParseValue(s)
	v, err := decodeProperty(name, params, raw)
	if err != nil {
		return nil, s, err
	}
	return v, rest, nil
}

// ParseProdID parses the product identifier property.
//
//	prodid   = "PRODID" pidparam ":" pidvalue CRLF
//	pidparam = *(";" other-param)
func ParseProdID(s string) (*Property, string, error) {
	return propertyRule{
		rule: "prodid",
		name: literal("PRODID"),
		value: func(_ string, _ []*Param, s string) (Value, string, error) {
			v, rest := ParsePIDValue(s)
			return v, rest, nil
		},
	}.parse(s)
}

// ParseVersion parses the iCalendar version property. Its value is a
// Version.
//
//	version  = "VERSION" verparam ":" vervalue CRLF
func ParseVersion(s string) (*Property, string, error) {
	return propertyRule{
		rule: "version",
		name: literal("VERSION"),
		value: func(_ string, _ []*Param, s string) (Value, string, error) {
			return parseVersionValue(s)
		},
	}.parse(s)
}

// ParseCalScale parses the calendar scale property.
//
//	calscale = "CALSCALE" calparam ":" calvalue CRLF
//	calvalue = "GREGORIAN"
func ParseCalScale(s string) (*Property, string, error) {
	return propertyRule{
		rule: "calscale",
		name: literal("CALSCALE"),
		value: func(_ string, _ []*Param, s string) (Value, string, error) {
			const gregorian = "GREGORIAN"
			if len(s) < len(gregorian) || !strings.EqualFold(s[:len(gregorian)], gregorian) {
				return nil, s, syntaxError("calvalue", s, s, `"GREGORIAN"`)
			}
			return Text(s[:len(gregorian)]), s[len(gregorian):], nil
		},
	}.parse(s)
}

// ParseMethod parses the method property.
//
//	method   = "METHOD" metparam ":" metvalue CRLF
//	metvalue = iana-token
func ParseMethod(s string) (*Property, string, error) {
	return propertyRule{
		rule: "method",
		name: literal("METHOD"),
		value: func(_ string, _ []*Param, s string) (Value, string, error) {
			v, rest, err := ParseIANAToken(s)
			if err != nil {
				return nil, s, err
			}
			return Text(v), rest, nil
		},
	}.parse(s)
}

// ParseXProp parses a non-standard property.
//
//	x-prop = x-name *(";" icalparameter) ":" value CRLF
func ParseXProp(s string) (*Property, string, error) {
	return propertyRule{rule: "x-prop", name: ParseXName, value: typedValue}.parse(s)
}

// ParseIANAProp parses a property registered with IANA.
//
//	iana-prop = iana-token *(";" icalparameter) ":" value CRLF
func ParseIANAProp(s string) (*Property, string, error) {
	return propertyRule{rule: "iana-prop", name: ParseIANAToken, value: typedValue}.parse(s)
}

// calPropRules maps the calendar properties that have their own rule.
var calPropRules = map[string]func(string) (*Property, string, error){
	"PRODID":   ParseProdID,
	"VERSION":  ParseVersion,
	"CALSCALE": ParseCalScale,
	"METHOD":   ParseMethod,
}

// ParseCalProps parses the properties at the top of a VCALENDAR.
//
//	calprops = *(prodid / version / calscale / method / x-prop / iana-prop)
//
// A line named PRODID, VERSION, CALSCALE or METHOD must match that
// property's rule: it is not retried as an iana-prop, so "CALSCALE:JULIAN"
// is an error. Other lines are tried as x-prop, then iana-prop.
//
// It stops without error at the end of the input or at a BEGIN or END
// line, which opens or closes a component. Any other line that is not a
// calendar property is an error, returned along with the properties parsed
// so far and the rest of the input starting at that line. Occurrence rules
// ("PRODID MUST NOT occur more than once") are not checked.
func ParseCalProps(s string) ([]*Property, string, error) {
	var props []*Property
	rest := s
	for rest != "" && !isDelimiter(rest) {
		prop, next, err := parseCalProp(rest)
		if err != nil {
			return props, rest, within(err, s, rest)
		}
		props = append(props, prop)
		rest = next
	}
	return props, rest, nil
}

func parseCalProp(s string) (*Property, string, error) {
	if name, _, err := ParseName(s); err == nil {
		if rule, ok := calPropRules[strings.ToUpper(name)]; ok {
			return rule(s)
		}
	}
	if prop, rest, err := ParseXProp(s); err == nil {
		return prop, rest, nil
	}
	return ParseIANAProp(s)
}

// isDelimiter reports whether s starts with a BEGIN or END content line.
func isDelimiter(s string) bool {
	name, rest, err := ParseName(s)
	if err != nil {
		return false
	}
	return (strings.EqualFold(name, "BEGIN") || strings.EqualFold(name, "END")) &&
		(strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, ";"))
}
