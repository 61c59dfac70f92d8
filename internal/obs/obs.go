package obs

import (
	"slices"

	"obs-mapper/internal/common"
	"obs-mapper/internal/concept"
	"obs-mapper/internal/form"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/value"
)

// Obs is a single recorded value, or a group when it has members.
type Obs struct {
	uuid      string
	concept   *concept.Concept
	value     value.Value
	comment   string
	members   []Bound
	voided    bool
	namespace string
	path      form.Path
	errors    []validation.Error
}

// New returns an empty observation. It has no uuid and is voided until a value is set.
func New(namespace string, path form.Path, c *concept.Concept) *Obs {
	return &Obs{concept: c, voided: true, namespace: namespace, path: path}
}

// NewGroup returns a group observation over members.
func NewGroup(namespace string, path form.Path, c *concept.Concept, members []Bound) *Obs {
	return New(namespace, path, c).WithMembers(members)
}

// FromPayload restores an observation from persisted data. The concept is
// taken from the control metadata, the payload only references it. Group
// members are not restored; attach them with WithMembers.
func FromPayload(p Payload, c *concept.Concept) (*Obs, error) {
	path, err := form.ParsePath(p.FormFieldPath)
	if err != nil {
		return nil, err
	}

	o := &Obs{
		uuid:      p.UUID,
		concept:   c,
		value:     p.Value.Normalize(),
		comment:   p.Comment,
		namespace: p.FormNamespace,
		path:      path,
	}

	o.voided = p.Voided || !o.value.IsDefined()
	if o.voided {
		o.value = value.None
	}

	return o, nil
}

func (o *Obs) sealed() {}

func (o *Obs) UUID() string                 { return o.uuid }
func (o *Obs) Concept() *concept.Concept    { return o.concept }
func (o *Obs) Value() value.Value           { return o.value }
func (o *Obs) Comment() string              { return o.comment }
func (o *Obs) IsVoided() bool               { return o.voided }
func (o *Obs) Namespace() string            { return o.namespace }
func (o *Obs) Path() form.Path              { return o.path }
func (o *Obs) Errors() []validation.Error   { return slices.Clone(o.errors) }
func (o *Obs) Members() []Bound             { return slices.Clone(o.members) }
func (o *Obs) IsGroup() bool                { return len(o.members) > 0 }
func (o *Obs) IsPersisted() bool            { return o.uuid != "" }
func (o *Obs) Matches(ref concept.Ref) bool { return o.concept.Matches(ref) }

func (o *Obs) clone() *Obs {
	c := *o
	return &c
}

// SetValue returns a copy holding v. A blank v voids the copy.
func (o *Obs) SetValue(v value.Value) *Obs {
	c := o.clone()
	c.value = v.Normalize()
	c.voided = !c.value.IsDefined()

	return c
}

// WithErrors returns a copy carrying errs.
func (o *Obs) WithErrors(errs []validation.Error) *Obs {
	c := o.clone()
	c.errors = slices.Clone(errs)

	return c
}

// WithComment returns a copy with the comment replaced.
func (o *Obs) WithComment(comment string) *Obs {
	c := o.clone()
	c.comment = comment

	return c
}

// WithUUID returns a copy identified by uuid.
func (o *Obs) WithUUID(uuid string) *Obs {
	c := o.clone()
	c.uuid = uuid

	return c
}

// Void returns a voided copy without value. Members are voided too.
func (o *Obs) Void() *Obs {
	c := o.clone()
	c.value = value.None
	c.voided = true
	c.members = common.Map(o.members, Void)

	return c
}

// WithMembers returns a group copy over members. The group is voided iff
// every member is voided.
func (o *Obs) WithMembers(members []Bound) *Obs {
	c := o.clone()
	c.members = slices.Clone(members)
	c.voided = common.Every(c.members, isVoided)

	return c
}

// Member returns the member addressed by path.
func (o *Obs) Member(path form.Path) (Bound, bool) {
	i := o.memberIndex(path)
	if i < 0 {
		return nil, false
	}

	return o.members[i], true
}

// ReplaceMember returns a copy with the member at m's path replaced by m,
// or m appended when no member has that path. Voided state is re-derived
// from the full member set.
func (o *Obs) ReplaceMember(m Bound) *Obs {
	members := slices.Clone(o.members)
	if i := o.memberIndex(m.Path()); i >= 0 {
		members[i] = m
	} else {
		members = append(members, m)
	}

	return o.WithMembers(members)
}

func (o *Obs) memberIndex(path form.Path) int {
	return slices.IndexFunc(o.members, func(m Bound) bool {
		return m.Path().Equal(path)
	})
}

// Readdress returns a copy moved to path. Members keep their position relative to the group.
func (o *Obs) Readdress(path form.Path) *Obs {
	c := o.clone()
	c.path = path
	c.members = common.Map(o.members, func(m Bound) Bound {
		return Readdress(m, rebase(m.Path(), o.path, path))
	})

	return c
}

// rebase moves p from below old to below path.
func rebase(p, old, path form.Path) form.Path {
	out := path
	for _, s := range p.Steps[min(len(old.Steps), len(p.Steps)):] {
		out = out.Child(s.ControlID, s.Index)
	}

	return out
}

// Payload flattens the observation and its members. Errors are dropped.
func (o *Obs) Payload() Payload {
	p := Payload{
		UUID:          o.uuid,
		Concept:       o.concept.Ref(),
		Value:         o.value,
		Comment:       o.comment,
		Voided:        o.voided,
		FormNamespace: o.namespace,
		FormFieldPath: o.path.String(),
	}

	for _, m := range o.members {
		p.GroupMembers = append(p.GroupMembers, m.Payload())
	}

	return p
}
