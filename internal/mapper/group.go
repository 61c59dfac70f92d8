package mapper

import (
	"obs-mapper/internal/concept"
	"obs-mapper/internal/form"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/value"
)

// ObsGroup maps a group control. The group is voided iff all members are.
type ObsGroup struct {
	store *Store
}

func (*ObsGroup) Kind() form.Kind { return form.KindObsGroup }

func (g *ObsGroup) InitialObject(namespace string, path form.Path, ctl *form.Control, _ []obs.Payload) obs.Bound {
	return obs.NewGroup(namespace, path, ctl.Concept, g.store.InitialMembers(namespace, path, ctl))
}

func (*ObsGroup) SetValue(b obs.Bound, _ []value.Value, _ []validation.Error) obs.Bound {
	return b
}

func (*ObsGroup) SetMember(parent, child obs.Bound, _ []validation.Error) obs.Bound {
	group, ok := parent.(*obs.Obs)
	if !ok || child == nil {
		return parent
	}

	return group.ReplaceMember(child)
}

func (*ObsGroup) Object(n Node) obs.Payload {
	return payloadOf(n.Bound())
}

// AbnormalObsGroup maps a group pairing a numeric member with a boolean
// member of the Abnormal class. Editing the numeric member recomputes the
// flag from its allowRange warning; editing the flag sets it as given.
type AbnormalObsGroup struct {
	ObsGroup
}

func (*AbnormalObsGroup) Kind() form.Kind { return form.KindAbnormalObsGroup }

func (a *AbnormalObsGroup) SetMember(parent, child obs.Bound, errs []validation.Error) obs.Bound {
	group, ok := parent.(*obs.Obs)
	if !ok || child == nil {
		return parent
	}

	group = group.ReplaceMember(child)

	numeric, flag := abnormalPair(group)
	if numeric == nil || flag == nil || !child.Path().Equal(numeric.Path()) {
		return group
	}

	if numeric.IsVoided() {
		return group.Void()
	}

	outOfRange := validation.Has(errs, validation.AllowRange, validation.SeverityWarning)

	return group.ReplaceMember(flag.SetValue(value.Bool(outOfRange)))
}

func abnormalPair(group *obs.Obs) (numeric, flag *obs.Obs) {
	for _, m := range group.Members() {
		o, ok := m.(*obs.Obs)
		if !ok {
			continue
		}

		switch {
		case o.Concept().Is(concept.Numeric) && numeric == nil:
			numeric = o
		case o.Concept().IsAbnormal() && flag == nil:
			flag = o
		}
	}

	return numeric, flag
}
