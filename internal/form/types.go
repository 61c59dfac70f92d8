package form

import (
	"time"

	"obs-mapper/internal/concept"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/value"
)

// Control types with a dedicated meaning in the engine.
const (
	TypeObs      = "obsControl"
	TypeObsGroup = "obsGroupControl"
	TypeSection  = "section"
	TypeTable    = "table"
	TypeLabel    = "label"
)

// KnownTypes lists the control types the engine understands.
var KnownTypes = []string{TypeObs, TypeObsGroup, TypeSection, TypeTable, TypeLabel}

// Form is the root of a form definition.
type Form struct {
	Name     string    `json:"name" yaml:"name" validate:"required"`
	Version  string    `json:"version" yaml:"version"`
	UUID     string    `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	Controls []Control `json:"controls" yaml:"controls" validate:"dive"`
}

// Control is one node of the form metadata tree.
type Control struct {
	ID         string           `json:"id" yaml:"id" validate:"required"`
	Type       string           `json:"type" yaml:"type" validate:"required"`
	Label      *Label           `json:"label,omitempty" yaml:"label,omitempty"`
	Concept    *concept.Concept `json:"concept,omitempty" yaml:"concept,omitempty"`
	Properties Properties       `json:"properties" yaml:"properties"`
	// Options are the displayed {name, value} pairs of boolean controls.
	Options  []Option  `json:"options,omitempty" yaml:"options,omitempty"`
	Controls []Control `json:"controls,omitempty" yaml:"controls,omitempty" validate:"dive"`
}

// Label is the display text of a control.
type Label struct {
	Value string `json:"value" yaml:"value"`
}

// Option pairs a displayed name with its domain value.
type Option struct {
	Name  string      `json:"name" yaml:"name"`
	Value value.Value `json:"value" yaml:"value"`
}

// Properties are the behavioral flags of a control.
type Properties struct {
	Location         Location `json:"location" yaml:"location"`
	Mandatory        bool     `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	MultiSelect      bool     `json:"multiSelect,omitempty" yaml:"multiSelect,omitempty"`
	Abnormal         bool     `json:"abnormal,omitempty" yaml:"abnormal,omitempty"`
	AddMore          bool     `json:"addMore,omitempty" yaml:"addMore,omitempty"`
	AllowDecimal     bool     `json:"allowDecimal,omitempty" yaml:"allowDecimal,omitempty"`
	AllowFutureDates bool     `json:"allowFutureDates,omitempty" yaml:"allowFutureDates,omitempty"`
	Notes            bool     `json:"notes,omitempty" yaml:"notes,omitempty"`
	Hidden           bool     `json:"hidden,omitempty" yaml:"hidden,omitempty"`
}

// Location is the grid cell a control occupies within its parent.
type Location struct {
	Row    int `json:"row" yaml:"row"`
	Column int `json:"column" yaml:"column"`
}

// DefaultBooleanOptions are used when a boolean control declares none.
var DefaultBooleanOptions = []Option{
	{Name: "Yes", Value: value.Bool(true)},
	{Name: "No", Value: value.Bool(false)},
}

// Kind resolves the control to its kind. See the package documentation for the order.
func (c *Control) Kind() Kind {
	switch {
	case c.Properties.MultiSelect:
		return KindObsList
	case c.Type == TypeSection:
		return KindSection
	case c.Type == TypeTable:
		return KindTable
	case c.Type == TypeObsGroup && c.Properties.Abnormal:
		return KindAbnormalObsGroup
	case c.Type == TypeObsGroup:
		return KindObsGroup
	case c.Concept == nil:
		return KindStatic
	default:
		return KindLeaf
	}
}

// BooleanOptions returns the declared options or the Yes/No defaults.
func (c *Control) BooleanOptions() []Option {
	if len(c.Options) > 0 {
		return c.Options
	}

	return DefaultBooleanOptions
}

// Rules derives the validation rules that apply to the control's value.
func (c *Control) Rules() []validation.Rule {
	var rules []validation.Rule
	if c.Properties.Mandatory {
		rules = append(rules, validation.Mandatory)
	}

	switch {
	case c.Concept.Is(concept.Numeric):
		rules = append(rules, validation.AllowDecimal)
		if !c.Concept.NormalRange().IsOpen() {
			rules = append(rules, validation.AllowRange)
		}

		if !c.Concept.AbsoluteRange().IsOpen() {
			rules = append(rules, validation.MinMaxRange)
		}
	case c.Concept.Is(concept.Date), c.Concept.Is(concept.Datetime):
		rules = append(rules, validation.AllowFutureDates)
	}

	return rules
}

// ValidationContext builds the rule context for the control.
func (c *Control) ValidationContext(now time.Time) validation.Context {
	return validation.Context{
		Concept:          c.Concept,
		AllowDecimal:     c.Properties.AllowDecimal,
		AllowFutureDates: c.Properties.AllowFutureDates,
		Now:              now,
	}
}

// LabelText returns the label value, falling back to the concept name.
func (c *Control) LabelText() string {
	if c.Label != nil && c.Label.Value != "" {
		return c.Label.Value
	}

	if c.Concept != nil {
		return c.Concept.Name
	}

	return c.Type
}

// Walk visits controls depth-first; returning false skips the children.
func Walk(controls []Control, fn func(c *Control) bool) {
	for i := range controls {
		c := &controls[i]
		if fn(c) {
			Walk(c.Controls, fn)
		}
	}
}
