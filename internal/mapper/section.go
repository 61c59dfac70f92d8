package mapper

import (
	"obs-mapper/internal/common"
	"obs-mapper/internal/form"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/value"
)

// Container maps sections and tables. They hold no observation of their
// own; their object aggregates the objects of their children.
type Container struct {
	kind  form.Kind
	store *Store
}

func (c *Container) Kind() form.Kind { return c.kind }

func (*Container) InitialObject(string, form.Path, *form.Control, []obs.Payload) obs.Bound {
	return nil
}

func (*Container) SetValue(b obs.Bound, _ []value.Value, _ []validation.Error) obs.Bound {
	return b
}

func (*Container) SetMember(parent, _ obs.Bound, _ []validation.Error) obs.Bound {
	return parent
}

func (c *Container) Object(n Node) obs.Payload {
	p := obs.Payload{FormFieldPath: n.Path().String()}

	for _, child := range n.Children() {
		cp := c.store.Mapper(child.Control()).Object(child)
		if cp.FormFieldPath != "" {
			p.Controls = append(p.Controls, cp)
		}
	}

	p.Voided = common.Every(p.Controls, func(cp obs.Payload) bool { return cp.Voided })

	return p
}
