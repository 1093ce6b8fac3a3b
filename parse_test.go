package ical

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseParamText(t *testing.T) {
	tests := []struct {
		in, want, rest string
	}{
		{in: "value", want: "value"},
		{in: "héllo", want: "héllo"},
		{in: "value123", want: "value123"},
		{in: "", want: ""},
		{in: ";invalid", want: "", rest: ";invalid"},
		{in: "a b:c", want: "a b", rest: ":c"},
		{in: `ab"c`, want: "ab", rest: `"c`},
		{in: "\xfe", want: "", rest: "\xfe"},
		{in: "h\xc3llo", want: "h", rest: "\xc3llo"},
	}
	for _, tt := range tests {
		got, rest := ParseParamText(tt.in)
		if got != tt.want || rest != tt.rest {
			t.Errorf("ParseParamText(%q) = %q, %q but want %q, %q", tt.in, got, rest, tt.want, tt.rest)
		}
	}
}

func TestParseQuotedString(t *testing.T) {
	runTokenTests(t, "ParseQuotedString", ParseQuotedString, []tokenTest{
		{in: `"hello"`, want: "hello", wantOk: true},
		{in: `"héllo"`, want: "héllo", wantOk: true},
		{in: `""`, want: "", wantOk: true},
		{in: `"a;b:c,d"`, want: "a;b:c,d", wantOk: true},
		{in: `"he"llo"`, want: "he", rest: `llo"`, wantOk: true},
		{in: `"hello`},
		{in: `hello"`},
		{in: "\"a\nb\""},
		{in: ""},
	})
}

// decode(DQUOTE s DQUOTE) == s for any s made of QSAFE-CHAR.
func TestParseQuotedString_Identity(t *testing.T) {
	for _, s := range []string{"", " ", "\t", "mailto:a@b.example", "a;b,c:d", "~!#$%", "ünïcödé ☃", `\n`} {
		got, rest, err := ParseQuotedString(`"` + s + `"`)
		if err != nil || got != s || rest != "" {
			t.Errorf("ParseQuotedString(%q) = %q, %q, %v but want %q", `"`+s+`"`, got, rest, err, s)
		}
	}
}

func TestParseParamValue(t *testing.T) {
	tests := []struct {
		in, want, rest string
	}{
		{in: "value", want: "value"},
		{in: "héllo", want: "héllo"},
		{in: `"value"`, want: "value"},
		{in: `"quoted"`, want: "quoted"},
		{in: `"héllo"`, want: "héllo"},
		{in: `"a,b",c`, want: "a,b", rest: ",c"},
		{in: "", want: ""},
		// an unterminated quote falls back to an empty paramtext
		{in: `"unterminated`, want: "", rest: `"unterminated`},
	}
	for _, tt := range tests {
		got, rest := ParseParamValue(tt.in)
		if got != tt.want || rest != tt.rest {
			t.Errorf("ParseParamValue(%q) = %q, %q but want %q, %q", tt.in, got, rest, tt.want, tt.rest)
		}
	}
}

func TestParseParamName(t *testing.T) {
	runTokenTests(t, "ParseParamName", ParseParamName, []tokenTest{
		{in: "CALENDAR", want: "CALENDAR", wantOk: true},
		{in: "123-456", want: "123-456", wantOk: true},
		{in: "X-TEST", want: "X-TEST", wantOk: true},
		{in: "X-VND-123", want: "X-VND-123", wantOk: true},
		{in: "X-", want: "X-", wantOk: true},
		{in: ""},
		{in: "!CALENDAR"},
	})
}

func TestParseParam(t *testing.T) {
	tests := []struct {
		in     string
		want   *Param
		rest   string
		wantOk bool
	}{
		{
			in:     "NAME=value1,value2,value3",
			want:   &Param{Name: "NAME", Values: []string{"value1", "value2", "value3"}},
			wantOk: true,
		},
		{
			in:     "NAME=value1",
			want:   &Param{Name: "NAME", Values: []string{"value1"}},
			wantOk: true,
		},
		{
			in:     "NAME=",
			want:   &Param{Name: "NAME", Values: []string{""}},
			wantOk: true,
		},
		{
			in:     "NAME=,",
			want:   &Param{Name: "NAME", Values: []string{"", ""}},
			wantOk: true,
		},
		{
			in:     `DELEGATED-TO="mailto:a@example.com","mailto:b@example.com":x`,
			want:   &Param{Name: "DELEGATED-TO", Values: []string{"mailto:a@example.com", "mailto:b@example.com"}},
			rest:   ":x",
			wantOk: true,
		},
		{
			in:     `X-VND-P=a;B=c`,
			want:   &Param{Name: "X-VND-P", Values: []string{"a"}},
			rest:   ";B=c",
			wantOk: true,
		},
		{in: "NAME"},
		{in: "=value1"},
		{in: "NAME:value"},
	}
	for _, tt := range tests {
		got, rest, err := ParseParam(tt.in)
		if ok := err == nil; ok != tt.wantOk {
			t.Errorf("ParseParam(%q) error = %v but want ok %v", tt.in, err, tt.wantOk)
			continue
		}
		if !tt.wantOk {
			if rest != tt.in || got != nil {
				t.Errorf("ParseParam(%q) = %v, %q but want nil and the input back", tt.in, got, rest)
			}
			continue
		}
		if !reflect.DeepEqual(got, tt.want) || rest != tt.rest {
			t.Errorf("ParseParam(%q) = %+v, %q but want %+v, %q", tt.in, got, rest, tt.want, tt.rest)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in, want, rest string
	}{
		{in: "hello", want: "hello"},
		{in: "héllo", want: "héllo"},
		{in: "hello world", want: "hello world"},
		{in: "héllo\tworld", want: "héllo\tworld"},
		{in: "a;b:c,\"d\"\r\n", want: "a;b:c,\"d\"", rest: "\r\n"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		got, rest := ParseValue(tt.in)
		if got != tt.want || rest != tt.rest {
			t.Errorf("ParseValue(%q) = %q, %q but want %q, %q", tt.in, got, rest, tt.want, tt.rest)
		}
	}
}

func TestParseContentLine(t *testing.T) {
	tests := []struct {
		in     string
		want   *ContentLine
		rest   string
		wantOk bool
	}{
		{
			in: "NAME;PARAM=value:VALUE\r\n",
			want: &ContentLine{
				Name:   "NAME",
				Params: []*Param{{Name: "PARAM", Values: []string{"value"}}},
				Value:  "VALUE",
			},
			wantOk: true,
		},
		{
			in:     "NAME:VALUE\r\n",
			want:   &ContentLine{Name: "NAME", Value: "VALUE"},
			wantOk: true,
		},
		{
			in:     "NAME:VALUE\n",
			want:   &ContentLine{Name: "NAME", Value: "VALUE"},
			wantOk: true,
		},
		{
			in:     "NAME:\r\n",
			want:   &ContentLine{Name: "NAME"},
			wantOk: true,
		},
		{
			in: "ATTENDEE;RSVP=TRUE;ROLE=REQ-PARTICIPANT;CN=\"Doe, John\":mailto:jdoe@example.com\r\nNEXT:1\r\n",
			want: &ContentLine{
				Name: "ATTENDEE",
				Params: []*Param{
					{Name: "RSVP", Values: []string{"TRUE"}},
					{Name: "ROLE", Values: []string{"REQ-PARTICIPANT"}},
					{Name: "CN", Values: []string{"Doe, John"}},
				},
				Value: "mailto:jdoe@example.com",
			},
			rest:   "NEXT:1\r\n",
			wantOk: true,
		},
		{
			in: "X-A;P=1;P=2:v\r\n",
			want: &ContentLine{
				Name: "X-A",
				Params: []*Param{
					{Name: "P", Values: []string{"1"}},
					{Name: "P", Values: []string{"2"}},
				},
				Value: "v",
			},
			wantOk: true,
		},
		{in: "NAME;PARAM=value:VALUE"},
		{in: "NAME;PARAM=value"},
		{in: "NAME VALUE\r\n"},
		{in: "NAME;PARAM:VALUE\r\n"},
		{in: "NAME;PARAM=\"unterminated:VALUE\r\n"},
		{in: "NAME:VAL\x01UE\r\n"},
		{in: ":VALUE\r\n"},
	}
	for _, tt := range tests {
		got, rest, err := ParseContentLine(tt.in)
		if ok := err == nil; ok != tt.wantOk {
			t.Errorf("ParseContentLine(%q) error = %v but want ok %v", tt.in, err, tt.wantOk)
			continue
		}
		if !tt.wantOk {
			if rest != tt.in || got != nil {
				t.Errorf("ParseContentLine(%q) = %v, %q but want nil and the input back", tt.in, got, rest)
			}
			continue
		}
		if !reflect.DeepEqual(got, tt.want) || rest != tt.rest {
			t.Errorf("ParseContentLine(%q) = %+v, %q but want %+v, %q", tt.in, got, rest, tt.want, tt.rest)
		}
	}
}

func TestParseContentLine_Error(t *testing.T) {
	tests := []struct {
		in       string
		rule     string
		offset   int
		expected string
	}{
		{in: "NAME;PARAM=value", rule: "contentline", offset: 16, expected: `":"`},
		{in: "NAME;PARAM=value:VALUE", rule: "contentline", offset: 22, expected: "CRLF"},
		{in: "NAME;PARAM:VALUE\r\n", rule: "param", offset: 10, expected: `"="`},
		{in: "NAME;A=1;!B=2:V\r\n", rule: "param-name", offset: 9, expected: "iana-token or x-name"},
		{in: "NAME;PARAM=\"open:VALUE\r\n", rule: "contentline", offset: 11, expected: `":"`},
		{in: "!NAME:V\r\n", rule: "name", offset: 0, expected: "iana-token or x-name"},
	}
	for _, tt := range tests {
		_, _, err := ParseContentLine(tt.in)
		var se *SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("ParseContentLine(%q) error = %v but want a *SyntaxError", tt.in, err)
			continue
		}
		if se.Rule != tt.rule || se.Offset != tt.offset || se.Expected != tt.expected {
			t.Errorf("ParseContentLine(%q) error = %+v but want rule %q offset %d expected %s", tt.in, se, tt.rule, tt.offset, tt.expected)
		}
	}
}

// Bytes that are not valid UTF-8 belong to no character class. An encoded
// U+FFFD is an ordinary NON-US-ASCII character.
func TestParseContentLine_InvalidUTF8(t *testing.T) {
	tests := []struct {
		in     string
		offset int
	}{
		{in: "SUMMARY:\xff\r\n", offset: 8},
		{in: "SUMMARY:ok \xff\xfe\r\n", offset: 11},
		{in: "SUMMARY;X-A=\xff:v\r\n", offset: 12},
		{in: "SUMMARY;X-A=\"\xc3\":v\r\n", offset: 12},
	}
	for _, tt := range tests {
		got, rest, err := ParseContentLine(tt.in)
		var se *SyntaxError
		if !errors.As(err, &se) || se.Offset != tt.offset {
			t.Errorf("ParseContentLine(%q) error = %v but want a *SyntaxError at %d", tt.in, err, tt.offset)
		}
		if got != nil || rest != tt.in {
			t.Errorf("ParseContentLine(%q) = %+v, %q but want nil and the input back", tt.in, got, rest)
		}
	}

	if _, _, err := ParseContentLine("SUMMARY:\uFFFD\r\n"); err != nil {
		t.Errorf("ParseContentLine() error = %v for an encoded U+FFFD", err)
	}
}

func TestSyntaxError_Error(t *testing.T) {
	_, _, err := ParseContentLine("SUMMARY;LANGUAGE=en\r\nsome text")
	want := `contentline: found "\r\nsome tex"... at offset 19, expected ":"`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v but want %s", err, want)
	}

	_, _, err = ParseContentLine("NAME:V")
	want = `contentline: found EOF at offset 6, expected CRLF`
	if err == nil || err.Error() != want {
		t.Errorf("Error() = %v but want %s", err, want)
	}
}
