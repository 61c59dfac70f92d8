package mapper

import (
	"obs-mapper/internal/form"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/value"
)

// ObsList maps a multi-select control. Each selection is one item of an obs.List.
type ObsList struct{}

func (ObsList) Kind() form.Kind { return form.KindObsList }

// InitialObject returns a list seeded from the observations stored at path.
// Voided observations that were never persisted carry nothing and are skipped.
func (ObsList) InitialObject(namespace string, path form.Path, ctl *form.Control, observations []obs.Payload) obs.Bound {
	var items []*obs.Obs

	for _, p := range observations {
		if p.FormFieldPath != path.String() || (p.Voided && p.UUID == "") {
			continue
		}

		o, err := obs.FromPayload(p, ctl.Concept)
		if err != nil {
			continue
		}

		items = append(items, o)
	}

	return obs.NewList(namespace, path, obs.New(namespace, path, ctl.Concept), items...)
}

func (ObsList) SetValue(b obs.Bound, values []value.Value, _ []validation.Error) obs.Bound {
	l, ok := b.(*obs.List)
	if !ok {
		return b
	}

	return l.SetValues(values)
}

func (ObsList) SetMember(parent, _ obs.Bound, _ []validation.Error) obs.Bound {
	return parent
}

func (ObsList) Object(n Node) obs.Payload {
	return payloadOf(n.Bound())
}

// AddMore returns an empty list for a new repeat of current. Its index is
// past every index in siblings and current.
func (ObsList) AddMore(current *obs.List, siblings []form.Path) *obs.List {
	next := form.NextIndex(append([]form.Path{current.Path()}, siblings...))

	return current.CloneForAddMore(current.Path().WithIndex(next))
}

// Remove voids the item at index.
func (ObsList) Remove(current *obs.List, index int) *obs.List {
	return current.Remove(index)
}
