package mapper

import (
	"obs-mapper/internal/form"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/value"
)

// Obs maps a control holding a single value.
type Obs struct{}

func (Obs) Kind() form.Kind { return form.KindLeaf }

func (Obs) InitialObject(namespace string, path form.Path, ctl *form.Control, _ []obs.Payload) obs.Bound {
	if ctl.Concept == nil {
		return nil
	}

	return obs.New(namespace, path, ctl.Concept)
}

// SetValue stores the first value and attaches errs. A blank value voids the observation.
func (Obs) SetValue(b obs.Bound, values []value.Value, errs []validation.Error) obs.Bound {
	o, ok := b.(*obs.Obs)
	if !ok {
		return b
	}

	v := value.None
	if len(values) > 0 {
		v = values[0]
	}

	return o.SetValue(v).WithErrors(errs)
}

func (Obs) SetMember(parent, _ obs.Bound, _ []validation.Error) obs.Bound {
	return parent
}

func (Obs) Object(n Node) obs.Payload {
	return payloadOf(n.Bound())
}

func payloadOf(b obs.Bound) obs.Payload {
	if b == nil {
		return obs.Payload{}
	}

	return b.Payload()
}
