package obs

import (
	"slices"

	"obs-mapper/internal/common"
	"obs-mapper/internal/form"
	"obs-mapper/internal/value"
)

// List holds the instances of a multi-select control. Every item shares
// the template's concept and path.
type List struct {
	namespace string
	path      form.Path
	template  *Obs
	items     []*Obs
}

// NewList returns a list seeded with items.
func NewList(namespace string, path form.Path, template *Obs, items ...*Obs) *List {
	return &List{namespace: namespace, path: path, template: template, items: slices.Clone(items)}
}

func (l *List) sealed() {}

func (l *List) Namespace() string { return l.namespace }
func (l *List) Path() form.Path   { return l.path }
func (l *List) Template() *Obs    { return l.template }
func (l *List) Items() []*Obs     { return slices.Clone(l.items) }
func (l *List) Len() int          { return len(l.items) }

// IsVoided is true when the list is empty or every item is voided.
func (l *List) IsVoided() bool {
	return common.Every(l.items, (*Obs).IsVoided)
}

// Values returns the values of the items that are not voided, in order.
func (l *List) Values() []value.Value {
	var out []value.Value

	for _, o := range l.items {
		if !o.IsVoided() {
			out = append(out, o.Value())
		}
	}

	return out
}

// CloneForAddMore returns an empty list addressed at path, with the template moved along.
func (l *List) CloneForAddMore(path form.Path) *List {
	return &List{namespace: l.namespace, path: path, template: l.template.Readdress(path).Void()}
}

// Void voids every item, keeping them in place.
func (l *List) Void() *List {
	c := *l
	c.items = common.Map(l.items, (*Obs).Void)

	return &c
}

// Remove voids the item at index. Items are never deleted so their history
// survives. An index out of range returns l.
func (l *List) Remove(index int) *List {
	if index < 0 || index >= len(l.items) {
		return l
	}

	c := *l
	c.items = slices.Clone(l.items)
	c.items[index] = c.items[index].Void()

	return &c
}

// SetValues makes values the selection. Items still selected are kept;
// deselected items are voided when persisted and dropped otherwise; new
// selections are appended as fresh items in the order given.
func (l *List) SetValues(values []value.Value) *List {
	wanted := make(map[string]value.Value, len(values))
	var order []string

	for _, v := range values {
		v = v.Normalize()
		if !v.IsDefined() {
			continue
		}

		if _, dup := wanted[v.Key()]; !dup {
			order = append(order, v.Key())
		}

		wanted[v.Key()] = v
	}

	c := *l
	c.items = nil
	kept := map[string]bool{}

	for _, o := range l.items {
		key := o.Value().Key()

		switch {
		case !o.IsVoided() && wanted[key].IsDefined() && !kept[key]:
			kept[key] = true
			c.items = append(c.items, o)
		case o.IsPersisted():
			c.items = append(c.items, o.Void())
		}
	}

	for _, key := range order {
		if !kept[key] {
			c.items = append(c.items, l.template.SetValue(wanted[key]))
		}
	}

	return &c
}

// Readdress returns a copy moved to path, items included.
func (l *List) Readdress(path form.Path) *List {
	c := *l
	c.path = path
	c.template = l.template.Readdress(path)
	c.items = common.Map(l.items, func(o *Obs) *Obs { return o.Readdress(path) })

	return &c
}

// Payload flattens the list; items go to ObsList.
func (l *List) Payload() Payload {
	p := Payload{
		Concept:       l.template.Concept().Ref(),
		Voided:        l.IsVoided(),
		FormNamespace: l.namespace,
		FormFieldPath: l.path.String(),
	}

	for _, o := range l.items {
		p.ObsList = append(p.ObsList, o.Payload())
	}

	return p
}
