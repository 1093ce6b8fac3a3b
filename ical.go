// Package ical implements the content line grammar of iCalendar.
//
// iCalendar is defined in RFC 5545. The package turns one unfolded content
// line into a ContentLine (name, parameters, raw value) and then into a
// Property whose value is decoded according to its value type.
//
// Each grammar rule is a ParseXxx function taking the input it should match
// at its start. It returns the match and the unconsumed rest of the input,
// or a *SyntaxError and the input untouched. Rules hold no state and are
// safe for concurrent use.
package ical

import (
	"fmt"
	"strings"
)

// A ContentLine is a parsed content line whose value is not decoded yet.
type ContentLine struct {
	Name   string
	Params []*Param
	Value  string
}

// A Property is a name, a set of parameters and a decoded value.
//
// A Property cannot be modified once created.
type Property struct {
	name   string
	params map[string]*Param
	value  Value
}

// A Param represents a parameter and its list of values.
//
// Values is never empty once parsed: "NAME=" has one empty value.
type Param struct {
	Name   string
	Values []string
}

// NewProperty creates a Property. params is copied.
func NewProperty(name string, params map[string]*Param, value Value) *Property {
	p := &Property{
		name:   name,
		params: make(map[string]*Param, len(params)),
		value:  value,
	}
	for k, v := range params {
		p.params[k] = v.clone()
	}
	if l, ok := value.(List); ok {
		p.value = l.clone()
	}
	return p
}

// NewParam creates a Param with the given values.
func NewParam(name string, values ...string) *Param {
	p := &Param{Name: name}
	p.Values = make([]string, 0, len(values))
	p.Values = append(p.Values, values...)
	return p
}

func (p *Param) clone() *Param {
	return NewParam(p.Name, p.Values...)
}

// Name returns the property name as written in the source.
func (p *Property) Name() string {
	return p.name
}

// Value returns the decoded value. A List is returned as a copy.
func (p *Property) Value() Value {
	if l, ok := p.value.(List); ok {
		return l.clone()
	}
	return p.value
}

// Param returns a copy of the parameter called name.
func (p *Property) Param(name string) (*Param, bool) {
	v, ok := p.params[name]
	if !ok {
		return nil, false
	}
	return v.clone(), true
}

// Params returns a copy of the parameter map.
func (p *Property) Params() map[string]*Param {
	m := make(map[string]*Param, len(p.params))
	for k, v := range p.params {
		m[k] = v.clone()
	}
	return m
}

// Property decodes the value of the content line and returns the resulting
// Property.
//
// The value type comes from the VALUE parameter, then from the default type
// of the property (TEXT for names unknown to RFC 5545). Properties such as
// CATEGORIES or EXDATE decode to a List, GEO to a Geo, REQUEST-STATUS to a
// RequestStatus and VERSION to a Version. A parameter given twice is
// rejected with an error wrapping ErrDuplicateParam.
func (cl *ContentLine) Property() (*Property, error) {
	params, err := paramMap(cl.Name, cl.Params)
	if err != nil {
		return nil, err
	}
	value, err := decodeProperty(cl.Name, cl.Params, cl.Value)
	if err != nil {
		return nil, err
	}
	return &Property{name: cl.Name, params: params, value: value}, nil
}

func paramMap(property string, params []*Param) (map[string]*Param, error) {
	m := make(map[string]*Param, len(params))
	for _, p := range params {
		if _, ok := m[p.Name]; ok {
			return nil, fmt.Errorf("%w %q on %s", ErrDuplicateParam, p.Name, property)
		}
		m[p.Name] = p.clone()
	}
	return m, nil
}

// valueParam returns the type named by the VALUE parameter, if any.
func valueParam(params []*Param) (ValueType, bool) {
	for _, p := range params {
		if strings.EqualFold(p.Name, "VALUE") && len(p.Values) > 0 {
			return ParseValueType(p.Values[0]), true
		}
	}
	return "", false
}
