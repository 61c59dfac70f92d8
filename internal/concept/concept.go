package concept

import "strings"

// Datatype is the concept datatype as it appears in form metadata.
type Datatype string

const (
	Numeric  Datatype = "Numeric"
	Boolean  Datatype = "Boolean"
	Coded    Datatype = "Coded"
	Text     Datatype = "Text"
	Date     Datatype = "Date"
	Datetime Datatype = "Datetime"
	Complex  Datatype = "Complex"
	NA       Datatype = "N/A"
)

// ClassAbnormal marks the boolean member of an abnormal obs group.
const ClassAbnormal = "Abnormal"

// Concept is the read-only concept reference carried by controls and observations.
type Concept struct {
	UUID           string   `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Name           string   `json:"name" yaml:"name" validate:"required"`
	Datatype       Datatype `json:"datatype" yaml:"datatype" validate:"required"`
	ConceptClass   string   `json:"conceptClass,omitempty" yaml:"conceptClass,omitempty"`
	ConceptHandler string   `json:"conceptHandler,omitempty" yaml:"conceptHandler,omitempty"`
	Units          string   `json:"units,omitempty" yaml:"units,omitempty"`
	LowNormal      *float64 `json:"lowNormal,omitempty" yaml:"lowNormal,omitempty"`
	HiNormal       *float64 `json:"hiNormal,omitempty" yaml:"hiNormal,omitempty"`
	LowAbsolute    *float64 `json:"lowAbsolute,omitempty" yaml:"lowAbsolute,omitempty"`
	HiAbsolute     *float64 `json:"hiAbsolute,omitempty" yaml:"hiAbsolute,omitempty"`
	Answers        []Answer `json:"answers,omitempty" yaml:"answers,omitempty"`
}

// Answer is one coded answer of a Coded concept.
type Answer struct {
	UUID string `json:"uuid" yaml:"uuid"`
	Name string `json:"name" yaml:"name"`
}

// Ref is the minimal concept identity written to persistence payloads.
type Ref struct {
	UUID     string   `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Name     string   `json:"name,omitempty" yaml:"name,omitempty"`
	Datatype Datatype `json:"datatype,omitempty" yaml:"datatype,omitempty"`
}

// Range is an inclusive numeric range; a nil bound is open.
type Range struct {
	Low  *float64
	High *float64
}

// Contains reports whether f lies within the range.
func (r Range) Contains(f float64) bool {
	if r.Low != nil && f < *r.Low {
		return false
	}

	if r.High != nil && f > *r.High {
		return false
	}

	return true
}

// IsOpen is true when neither bound is set.
func (r Range) IsOpen() bool {
	return r.Low == nil && r.High == nil
}

// Ref returns the persistence reference for the concept.
func (c *Concept) Ref() Ref {
	if c == nil {
		return Ref{}
	}

	return Ref{UUID: c.UUID, Name: c.Name, Datatype: c.Datatype}
}

// NormalRange returns the low/high normal bounds.
func (c *Concept) NormalRange() Range {
	if c == nil {
		return Range{}
	}

	return Range{Low: c.LowNormal, High: c.HiNormal}
}

// AbsoluteRange returns the low/high absolute bounds.
func (c *Concept) AbsoluteRange() Range {
	if c == nil {
		return Range{}
	}

	return Range{Low: c.LowAbsolute, High: c.HiAbsolute}
}

// Is reports whether the concept has the given datatype.
func (c *Concept) Is(dt Datatype) bool {
	return c != nil && c.Datatype == dt
}

// IsAbnormal reports whether the concept is the abnormal flag of an abnormal group.
func (c *Concept) IsAbnormal() bool {
	return c != nil && c.ConceptClass == ClassAbnormal
}

// Answer looks up a coded answer by uuid.
func (c *Concept) Answer(uuid string) (Answer, bool) {
	if c == nil {
		return Answer{}, false
	}

	for _, a := range c.Answers {
		if a.UUID == uuid {
			return a, true
		}
	}

	return Answer{}, false
}

// Matches reports whether ref identifies this concept. UUIDs win when both
// sides carry one; otherwise names are compared case-insensitively.
func (c *Concept) Matches(ref Ref) bool {
	if c == nil {
		return false
	}

	if c.UUID != "" && ref.UUID != "" {
		return c.UUID == ref.UUID
	}

	return ref.Name != "" && strings.EqualFold(c.Name, ref.Name)
}
