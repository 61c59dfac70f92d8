package mapper

import (
	"obs-mapper/internal/form"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/value"
)

// Node is a bound control as the record tree exposes it.
type Node interface {
	Control() *form.Control
	Path() form.Path
	Bound() obs.Bound
	Children() []Node
}

// Mapper synchronizes one kind of control with its observations.
type Mapper interface {
	Kind() form.Kind

	// InitialObject builds the starting bound value for a control without a
	// matching observation. Observations seed list items and are ignored by
	// the other kinds. Containers return nil.
	InitialObject(namespace string, path form.Path, ctl *form.Control, observations []obs.Payload) obs.Bound

	// SetValue applies an edit to a bound value. Kinds without a value of
	// their own return b unchanged.
	SetValue(b obs.Bound, values []value.Value, errs []validation.Error) obs.Bound

	// SetMember returns parent with the edited child applied, voided state
	// re-derived. errs are the child's validation results.
	SetMember(parent, child obs.Bound, errs []validation.Error) obs.Bound

	// Object flattens n into its persistence payload.
	Object(n Node) obs.Payload
}
