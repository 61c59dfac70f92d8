package record

import (
	"slices"

	"obs-mapper/internal/common"
	"obs-mapper/internal/form"
	"obs-mapper/internal/layout"
	"obs-mapper/internal/mapper"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/value"
)

// Record is one control instance bound to its observation. Records are
// never modified once built.
type Record struct {
	control  *form.Control
	path     form.Path
	bound    obs.Bound
	children []*Record
	errors   []validation.Error
	buttons  layout.Buttons
	// removed records keep voided persisted data but are not shown.
	removed  bool
	fallback bool
}

func (r *Record) Control() *form.Control     { return r.control }
func (r *Record) Path() form.Path            { return r.path }
func (r *Record) Bound() obs.Bound           { return r.bound }
func (r *Record) Records() []*Record         { return slices.Clone(r.children) }
func (r *Record) Errors() []validation.Error { return slices.Clone(r.errors) }
func (r *Record) ShowAddMore() bool          { return r.buttons.AddMore && !r.removed }
func (r *Record) ShowRemove() bool           { return r.buttons.Remove && !r.removed }
func (r *Record) Active() bool               { return !r.removed && !r.control.Properties.Hidden }
func (r *Record) Fallback() bool             { return r.fallback }
func (r *Record) HasBlockingErrors() bool    { return validation.HasBlocking(r.errors) }

// Children returns the child records as mapper nodes.
func (r *Record) Children() []mapper.Node {
	nodes := make([]mapper.Node, len(r.children))
	for i, c := range r.children {
		nodes[i] = c
	}

	return nodes
}

// Values returns the recorded values: one for a plain observation, the
// selected ones for a multi-select list, none for anything else.
func (r *Record) Values() []value.Value {
	switch b := r.bound.(type) {
	case *obs.Obs:
		if b.IsGroup() || !b.Value().IsDefined() {
			return nil
		}

		return []value.Value{b.Value()}
	case *obs.List:
		return b.Values()
	default:
		return nil
	}
}

func (r *Record) holdsValue() bool {
	kind := r.control.Kind()
	return kind == form.KindLeaf || kind == form.KindObsList
}

func (r *Record) clone() *Record {
	c := *r
	return &c
}

func (r *Record) withBound(b obs.Bound) *Record {
	c := r.clone()
	c.bound = b

	return c
}

func (r *Record) withErrors(errs []validation.Error) *Record {
	c := r.clone()
	c.errors = slices.Clone(errs)

	return c
}

func (r *Record) withChildren(children []*Record) *Record {
	c := r.clone()
	c.children = slices.Clone(children)
	buttons := layout.Repeats(activeOnly(children))

	for i, ch := range c.children {
		if b := buttons[ch.path.String()]; b != ch.buttons {
			cc := ch.clone()
			cc.buttons = b
			c.children[i] = cc
		}
	}

	return c
}

// replaceChild swaps the child at child's path.
func (r *Record) replaceChild(child *Record) *Record {
	children := slices.Clone(r.children)
	for i, c := range children {
		if c.path.Equal(child.path) {
			children[i] = child
		}
	}

	c := r.clone()
	c.children = children

	return c
}

// syncBound rebinds r to b and its descendant records to b's members.
func (r *Record) syncBound(b obs.Bound) *Record {
	c := r.withBound(b)

	group, ok := b.(*obs.Obs)
	if !ok || len(r.children) == 0 {
		return c
	}

	c.children = syncMembers(r.children, group)

	return c
}

func syncMembers(children []*Record, group *obs.Obs) []*Record {
	out := make([]*Record, len(children))

	for i, ch := range children {
		switch {
		case ch.bound == nil && len(ch.children) > 0:
			cc := ch.clone()
			cc.children = syncMembers(ch.children, group)
			out[i] = cc
		case ch.bound != nil:
			if m, ok := group.Member(ch.path); ok && m != ch.bound {
				out[i] = ch.syncBound(m)
			} else {
				out[i] = ch
			}
		default:
			out[i] = ch
		}
	}

	return out
}

// memberBounds collects the bound values below a group: children with a
// bound value, and those found through sections and tables.
func memberBounds(children []*Record) []obs.Bound {
	var out []obs.Bound

	for _, ch := range children {
		switch {
		case ch.bound != nil:
			out = append(out, ch.bound)
		case ch.control.Kind().IsContainer():
			out = append(out, memberBounds(ch.children)...)
		}
	}

	return out
}

// voided returns r with every bound value in its subtree voided.
func (r *Record) voided() *Record {
	c := r.clone()
	if r.bound != nil {
		return c.syncBound(obs.Void(r.bound))
	}

	c.children = make([]*Record, len(r.children))
	for i, ch := range r.children {
		c.children[i] = ch.voided()
	}

	return c
}

// persisted reports whether any observation below r carries a uuid.
func (r *Record) persisted() bool {
	if r.bound != nil && payloadPersisted(r.bound.Payload()) {
		return true
	}

	return slices.ContainsFunc(r.children, (*Record).persisted)
}

func payloadPersisted(p obs.Payload) bool {
	if p.UUID != "" {
		return true
	}

	return slices.ContainsFunc(p.GroupMembers, payloadPersisted) || slices.ContainsFunc(p.ObsList, payloadPersisted)
}

func activeOnly(records []*Record) []*Record {
	return common.Filter(records, func(r *Record) bool { return !r.removed })
}
