// Package value holds the datatype-dependent value recorded on an observation.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"obs-mapper/internal/concept"
)

// Kind discriminates the variants of Value.
type Kind int

const (
	KindNone Kind = iota // undefined, the zero Value
	KindBool
	KindNumber
	KindText
	KindCoded
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	case KindCoded:
		return "coded"
	default:
		return "unknown"
	}
}

// Value is an immutable, comparable domain value. Dates are carried as text.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	s      string
	answer concept.Answer
}

// None is the undefined value.
var None = Value{}

func Bool(b bool) Value      { return Value{kind: KindBool, b: b} }
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }
func Text(s string) Value    { return Value{kind: KindText, s: s} }

// Coded wraps a concept answer.
func Coded(a concept.Answer) Value { return Value{kind: KindCoded, answer: a} }

func (v Value) Kind() Kind { return v.kind }

// IsDefined is false only for None.
func (v Value) IsDefined() bool { return v.kind != KindNone }

// IsBlank reports whether the value is undefined or text that is empty after trimming.
func (v Value) IsBlank() bool {
	switch v.kind {
	case KindNone:
		return true
	case KindText:
		return strings.TrimSpace(v.s) == ""
	default:
		return false
	}
}

// Normalize maps blank values to None.
func (v Value) Normalize() Value {
	if v.IsBlank() {
		return None
	}

	return v
}

func (v Value) Bool() (bool, bool)      { return v.b, v.kind == KindBool }
func (v Value) Number() (float64, bool) { return v.n, v.kind == KindNumber }
func (v Value) Text() (string, bool)    { return v.s, v.kind == KindText }

func (v Value) Answer() (concept.Answer, bool) { return v.answer, v.kind == KindCoded }

// Key identifies the value for set membership: the answer uuid for coded values,
// the printed form otherwise.
func (v Value) Key() string {
	if v.kind == KindCoded {
		return v.answer.UUID
	}

	return v.String()
}

// String returns the display form of the value; None prints as "".
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case KindText:
		return v.s
	case KindCoded:
		return v.answer.Name
	default:
		return ""
	}
}

// Parse reads a raw textual value according to a concept datatype.
// Coded answers are resolved by uuid against c.
func Parse(c *concept.Concept, raw string) (Value, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return None, nil
	}

	if c == nil {
		return Text(raw), nil
	}

	switch c.Datatype {
	case concept.Numeric:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return None, fmt.Errorf("parse numeric value %q: %w", raw, err)
		}

		if math.IsNaN(n) || math.IsInf(n, 0) {
			return None, fmt.Errorf("parse numeric value %q: not a finite number", raw)
		}

		return Number(n), nil
	case concept.Boolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return None, fmt.Errorf("parse boolean value %q: %w", raw, err)
		}

		return Bool(b), nil
	case concept.Coded:
		a, ok := c.Answer(raw)
		if !ok {
			return None, fmt.Errorf("unknown answer %q for concept %s", raw, c.Name)
		}

		return Coded(a), nil
	default:
		return Text(raw), nil
	}
}
