package ical

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
)

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\n", `\n`,
)

// FormatText escapes s so that ParseText decodes it back to s.
func FormatText(s string) string {
	return textEscaper.Replace(s)
}

// FormatParamValue returns v as a param-value, quoted when it holds a
// character paramtext does not allow. A param-value has no escapes, so a v
// holding a DQUOTE or a control character gives a line that does not parse;
// Format rejects such values with ErrInvalidParamValue.
func FormatParamValue(v string) string {
	if n := span(v, IsSafeChar); n == len(v) {
		return v
	}
	return `"` + v + `"`
}

// Format writes the properties to w as CRLF terminated content lines.
// Lines are not folded. A parameter value that cannot be written as a
// param-value is an error wrapping ErrInvalidParamValue, and nothing is
// written for its property.
func Format(w io.Writer, props []*Property) error {
	for _, prop := range props {
		if err := formatProperty(w, prop); err != nil {
			return err
		}
	}
	return nil
}

func formatProperty(w io.Writer, prop *Property) error {
	for _, param := range prop.params {
		for _, v := range param.Values {
			if span(v, IsQSafeChar) < len(v) {
				return fmt.Errorf("%w %q in %s of %s", ErrInvalidParamValue, v, param.Name, prop.name)
			}
		}
	}

	var buf bytes.Buffer
	buf.WriteString(prop.String())
	buf.WriteString(crlf)

	_, err := buf.WriteTo(w)
	return err
}

// String returns the property as a content line without line terminator.
// Parameters are written sorted by name. Unlike Format, String does not
// check parameter values.
func (p *Property) String() string {
	names := make([]string, 0, len(p.params))
	for name := range p.params {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]*Param, 0, len(names))
	for _, name := range names {
		params = append(params, p.params[name])
	}
	return formatLine(p.name, params, formatValue(p.value))
}

// String returns the content line without line terminator.
func (cl *ContentLine) String() string {
	return formatLine(cl.Name, cl.Params, cl.Value)
}

func formatLine(name string, params []*Param, value string) string {
	var b strings.Builder
	b.WriteString(name)

	for _, param := range params {
		b.WriteString(";")
		b.WriteString(param.Name)
		b.WriteString("=")
		for i, v := range param.Values {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(FormatParamValue(v))
		}
	}

	b.WriteString(":")
	b.WriteString(value)
	return b.String()
}

func formatValue(v Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case Text:
		return FormatText(string(v))
	case List:
		elems := make([]string, len(v.Values))
		for i, e := range v.Values {
			elems[i] = formatValue(e)
		}
		return strings.Join(elems, ",")
	case RequestStatus:
		s := v.Code + ";" + FormatText(v.Description)
		if v.Data != "" {
			s += ";" + FormatText(v.Data)
		}
		return s
	}
	return v.String()
}
