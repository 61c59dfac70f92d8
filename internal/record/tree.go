package record

import (
	"fmt"
	"slices"

	"obs-mapper/internal/common"
	"obs-mapper/internal/form"
	"obs-mapper/internal/layout"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/value"
)

// Tree is the bound record tree of one form render.
type Tree struct {
	form    *form.Form
	root    *Record
	builder *Builder
}

func (t *Tree) Form() *form.Form { return t.form }

// Root returns the record of the form itself. Its children are the top-level controls.
func (t *Tree) Root() *Record { return t.root }

// Records returns the top-level records.
func (t *Tree) Records() []*Record { return t.root.Records() }

// Walk visits every record depth-first; returning false skips the children.
func (t *Tree) Walk(fn func(r *Record) bool) {
	var walk func(rs []*Record)
	walk = func(rs []*Record) {
		for _, r := range rs {
			if fn(r) {
				walk(r.children)
			}
		}
	}

	walk(t.root.children)
}

// Find returns the record at path.
func (t *Tree) Find(path string) (*Record, error) {
	chain, err := t.locate(path)
	if err != nil {
		return nil, err
	}

	return chain[len(chain)-1], nil
}

// Rows lays out the visible children of r on the form grid.
func (t *Tree) Rows(r *Record) []layout.Row[*Record] {
	return layout.Rows(slices.DeleteFunc(r.Records(), func(c *Record) bool { return !c.Active() }))
}

// Object flattens the tree into its structured persistence payload.
func (t *Tree) Object() obs.Payload {
	return t.builder.Mappers.Mapper(t.root.control).Object(t.root)
}

// Observations returns the flat observation list to persist. Sections and
// lists are expanded; voided observations that were never saved are dropped.
func (t *Tree) Observations() []obs.Payload {
	return obs.Prune(obs.Expand(t.Object().Controls))
}

// Display returns the values of r the way its widget shows them.
func (t *Tree) Display(r *Record) []string {
	values := r.Values()
	if vm := t.builder.Values.Mapper(r.control); vm != nil {
		return vm.Display(r.control, values)
	}

	return common.Map(values, value.Value.String)
}

// SetValue records values on the control at path, validates them and
// propagates the change to the enclosing groups.
func (t *Tree) SetValue(path string, values ...value.Value) (*Tree, error) {
	chain, err := t.locate(path)
	if err != nil {
		return nil, err
	}

	rec := chain[len(chain)-1]
	if !rec.holdsValue() || rec.bound == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoValue, path)
	}

	first, _ := common.First(values)
	errs := validation.Errors(first.Normalize(), rec.control.Rules(), rec.control.ValidationContext(t.builder.Now()))

	nb := t.builder.Mappers.Mapper(rec.control).SetValue(rec.bound, values, errs)
	t.report(OpSetValue, errs)

	return t.commit(chain, rec.withBound(nb).withErrors(errs), errs, false), nil
}

// Select records the widget selection keys on the control at path: option
// names for booleans, answer uuids or names for coded controls, raw text
// otherwise. Keys that match nothing are ignored.
func (t *Tree) Select(path string, keys ...string) (*Tree, error) {
	rec, err := t.Find(path)
	if err != nil {
		return nil, err
	}

	var values []value.Value

	if vm := t.builder.Values.Mapper(rec.control); vm != nil {
		values = vm.Resolve(rec.control, keys)
	} else {
		for _, key := range keys {
			v, err := value.Parse(rec.control.Concept, key)
			if err != nil {
				t.builder.Logger.Debug().Err(err).Str("formFieldPath", path).Msg("ignoring unparsable selection")
				continue
			}

			values = append(values, v)
		}
	}

	return t.SetValue(path, values...)
}

// SetComment sets the comment of the observation at path.
func (t *Tree) SetComment(path, comment string) (*Tree, error) {
	chain, err := t.locate(path)
	if err != nil {
		return nil, err
	}

	rec := chain[len(chain)-1]

	o, ok := rec.bound.(*obs.Obs)
	if !ok || o.IsGroup() {
		return nil, fmt.Errorf("%w: %s", ErrNoValue, path)
	}

	t.report(OpSetComment, nil)

	return t.commit(chain, rec.withBound(o.WithComment(comment)), nil, true), nil
}

// AddMore adds a new instance of the repeatable control at path, placed
// after its last sibling instance, and returns the new instance's path.
func (t *Tree) AddMore(path string) (*Tree, form.Path, error) {
	chain, err := t.locate(path)
	if err != nil {
		return nil, form.Path{}, err
	}

	rec, parent := chain[len(chain)-1], chain[len(chain)-2]
	if !rec.control.Properties.AddMore {
		return nil, form.Path{}, fmt.Errorf("%w: %s", ErrNotRepeatable, path)
	}

	var siblings []form.Path

	last := 0

	for i, ch := range parent.children {
		if ch.control.ID == rec.control.ID {
			siblings = append(siblings, ch.path)
			last = i
		}
	}

	next := rec.path.WithIndex(form.NextIndex(siblings))

	var added *Record

	if l, ok := rec.bound.(*obs.List); ok {
		if am, ok := t.builder.Mappers.Mapper(rec.control).(listAdder); ok {
			added = &Record{control: rec.control, errors: []validation.Error{}, fallback: rec.fallback}
			added.bound = am.AddMore(l, siblings)
			added.path = added.bound.Path()
		}
	}

	if added == nil {
		s := &buildState{Builder: t.builder, pool: &pool{}}
		added = s.record(rec.control, next)
	}

	children := slices.Insert(slices.Clone(parent.children), last+1, added)
	t.report(OpAddMore, nil)

	return t.commit(chain[:len(chain)-1], parent.withChildren(children), nil, true), added.path, nil
}

type listAdder interface {
	AddMore(current *obs.List, siblings []form.Path) *obs.List
}

// Remove removes the repeat instance at path. Saved data is voided and
// kept for persistence; unsaved instances are dropped. The first instance
// cannot be removed.
func (t *Tree) Remove(path string) (*Tree, error) {
	chain, err := t.locate(path)
	if err != nil {
		return nil, err
	}

	rec, parent := chain[len(chain)-1], chain[len(chain)-2]
	if !rec.control.Properties.AddMore {
		return nil, fmt.Errorf("%w: %s", ErrNotRepeatable, path)
	}

	if !rec.ShowRemove() {
		return nil, fmt.Errorf("%w: %s", ErrNotRemovable, path)
	}

	children := slices.Clone(parent.children)
	pos := slices.Index(children, rec)

	if rec.persisted() {
		v := rec.voided()
		v.removed = true
		children[pos] = v
	} else {
		children = slices.Delete(children, pos, pos+1)
	}

	t.report(OpRemove, nil)

	return t.commit(chain[:len(chain)-1], parent.withChildren(children), nil, true), nil
}

// RemoveItem voids the item at index of the multi-select list at path.
// The item stays in the list so a saved answer is persisted as voided.
func (t *Tree) RemoveItem(path string, index int) (*Tree, error) {
	chain, err := t.locate(path)
	if err != nil {
		return nil, err
	}

	rec := chain[len(chain)-1]

	l, ok := rec.bound.(*obs.List)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoValue, path)
	}

	lr, ok := t.builder.Mappers.Mapper(rec.control).(listRemover)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoValue, path)
	}

	if index < 0 || index >= l.Len() {
		return nil, fmt.Errorf("%w: %s item %d", ErrNotFound, path, index)
	}

	t.report(OpRemove, nil)

	return t.commit(chain, rec.withBound(lr.Remove(l, index)), nil, false), nil
}

type listRemover interface {
	Remove(current *obs.List, index int) *obs.List
}

// Validate runs every value rule over the visible records and attaches
// the results. It reports whether any blocking error was found.
func (t *Tree) Validate() (*Tree, bool) {
	blocking := false
	now := t.builder.Now()

	var visit func(r *Record) *Record
	visit = func(r *Record) *Record {
		c := r.clone()

		if r.holdsValue() && r.Active() && r.bound != nil {
			first, _ := common.First(r.Values())
			c.errors = validation.Errors(first, r.control.Rules(), r.control.ValidationContext(now))
			blocking = blocking || validation.HasBlocking(c.errors)

			t.report("", c.errors)
		}

		c.children = common.Map(r.children, visit)

		return c
	}

	root := visit(t.root)
	t.builder.Observer.Edited(OpValidate)

	return &Tree{form: t.form, root: root, builder: t.builder}, blocking
}

// commit replaces the last record of chain with rec and rebuilds every
// ancestor. Group ancestors apply the edited bound value through their
// mapper; rebuild re-derives the nearest group from its children instead.
func (t *Tree) commit(chain []*Record, rec *Record, errs []validation.Error, rebuild bool) *Tree {
	edited := rec.bound

	if g, ok := rec.bound.(*obs.Obs); ok && rebuild && rec.control.Kind().IsGroup() {
		rec = rec.syncBound(g.WithMembers(memberBounds(rec.children)))
		edited, rebuild = rec.bound, false
	}

	for i := len(chain) - 2; i >= 0; i-- {
		parent := chain[i].replaceChild(rec)

		if g, ok := parent.bound.(*obs.Obs); ok && parent.control.Kind().IsGroup() {
			var nb obs.Bound
			if rebuild || edited == nil {
				nb = g.WithMembers(memberBounds(parent.children))
			} else {
				nb = t.builder.Mappers.Mapper(parent.control).SetMember(g, edited, errs)
			}

			parent = parent.syncBound(nb)
			edited, errs, rebuild = nb, nil, false
		}

		rec = parent
	}

	return &Tree{form: t.form, root: rec, builder: t.builder}
}

// locate returns the records from the root down to the one at path.
// Removed instances cannot be addressed.
func (t *Tree) locate(raw string) ([]*Record, error) {
	path, err := form.ParsePath(raw)
	if err != nil {
		return nil, err
	}

	if path.Form != t.root.path.Form || path.Version != t.root.path.Version || path.IsRoot() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, raw)
	}

	chain := []*Record{t.root}
	cur := t.root

	for depth := range path.Steps {
		step := path.Steps[depth]

		i := slices.IndexFunc(cur.children, func(c *Record) bool {
			return !c.removed && c.path.Steps[depth] == step
		})
		if i < 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, raw)
		}

		cur = cur.children[i]
		chain = append(chain, cur)
	}

	return chain, nil
}

func (t *Tree) report(op string, errs []validation.Error) {
	if op != "" {
		t.builder.Observer.Edited(op)
	}

	for _, e := range errs {
		t.builder.Observer.ValidationFailed(e.Type)
	}
}
