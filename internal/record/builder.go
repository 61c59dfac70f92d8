package record

import (
	"slices"
	"time"

	"github.com/rs/zerolog"

	"obs-mapper/internal/concept"
	"obs-mapper/internal/form"
	"obs-mapper/internal/mapper"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/validation"
	"obs-mapper/internal/valuemapper"
)

// DefaultNamespace is the form namespace written on new observations.
const DefaultNamespace = "Bahmni"

// Builder builds record trees. The zero value is usable; unset fields take
// their defaults when Build runs.
type Builder struct {
	Namespace string
	Mappers   *mapper.Store
	Values    *valuemapper.Store
	// Components lists the control types that have a UI component.
	// Nil means every type the engine knows.
	Components []string
	Logger     zerolog.Logger
	Observer   Observer
	Now        func() time.Time
}

// NewBuilder returns a builder with the process-wide stores.
func NewBuilder() *Builder {
	return &Builder{
		Namespace: DefaultNamespace,
		Mappers:   mapper.Default,
		Values:    valuemapper.Default,
		Logger:    zerolog.Nop(),
		Observer:  nopObserver{},
		Now:       time.Now,
	}
}

// Build builds a tree with the default builder.
func Build(f *form.Form, observations []obs.Payload) (*Tree, error) {
	return NewBuilder().Build(f, observations)
}

// Build binds f to the prior observations, given flat or nested.
func (b *Builder) Build(f *form.Form, observations []obs.Payload) (*Tree, error) {
	if f == nil {
		return nil, &form.MalformedError{Reason: "form is nil"}
	}

	if f.Name == "" {
		return nil, &form.MalformedError{Reason: "form has no name"}
	}

	b = b.withDefaults()

	rootPath := form.RootPath(f.Name, f.Version)
	rootCtl := &form.Control{ID: f.Name, Type: form.TypeSection, Controls: f.Controls}

	s := &buildState{Builder: b, pool: newPool(f.Name, observations, b.Logger)}
	root := (&Record{control: rootCtl, path: rootPath}).withChildren(s.level(rootPath, f.Controls))

	b.Logger.Debug().
		Str("form", f.Name).
		Str("version", f.Version).
		Int("observations", len(s.pool.entries)).
		Msg("built control record tree")

	return &Tree{form: f, root: root, builder: b}, nil
}

func (b *Builder) withDefaults() *Builder {
	c := *b
	if c.Namespace == "" {
		c.Namespace = DefaultNamespace
	}

	if c.Mappers == nil {
		c.Mappers = mapper.Default
	}

	if c.Values == nil {
		c.Values = valuemapper.Default
	}

	if c.Observer == nil {
		c.Observer = nopObserver{}
	}

	if c.Now == nil {
		c.Now = time.Now
	}

	return &c
}

func (b *Builder) hasComponent(controlType string) bool {
	if b.Components == nil {
		return slices.Contains(form.KnownTypes, controlType)
	}

	return slices.Contains(b.Components, controlType)
}

type buildState struct {
	*Builder
	pool *pool
}

// level builds the records of controls below parent, one per repeat
// instance found in the pool.
func (s *buildState) level(parent form.Path, controls []form.Control) []*Record {
	var out []*Record

	for i := range controls {
		c := &controls[i]

		indexes := s.pool.indexes(parent, c.ID)

		switch {
		case len(indexes) == 0:
			indexes = []int{0}
		case !c.Properties.AddMore:
			indexes = indexes[:1]
		}

		shown := 0

		for _, idx := range indexes {
			path := parent.Child(c.ID, idx)
			rec := s.record(c, path)

			// A repeat instance whose saved data is all voided was removed.
			if c.Properties.AddMore && len(indexes) > 1 && s.pool.voided(path) && (shown > 0 || !s.pool.anyLive(parent, c.ID)) {
				rec.removed = true
			} else {
				shown++
			}

			out = append(out, rec)
		}
	}

	return out
}

func (s *buildState) record(c *form.Control, path form.Path) *Record {
	kind := c.Kind()
	rec := &Record{control: c, path: path, errors: []validation.Error{}, fallback: !s.hasComponent(c.Type)}

	if rec.fallback {
		s.Logger.Debug().
			Str("control", c.ID).
			Str("type", c.Type).
			Msg("no component registered for control type, using fallback record")
	}

	m := s.Mappers.Mapper(c)

	switch {
	case kind == form.KindStatic:
	case kind.IsContainer():
		rec = rec.withChildren(s.level(path, c.Controls))
	case kind == form.KindObsList:
		rec.bound = m.InitialObject(s.Namespace, path, c, s.pool.rebased(c, path))
	case kind.IsGroup():
		rec = rec.withChildren(s.level(path, c.Controls))
		rec.bound = s.group(m, c, path, memberBounds(rec.children))
	default:
		rec.bound = s.leaf(m, c, path)
	}

	s.Observer.RecordBuilt(kind, rec.fallback)

	return rec
}

func (s *buildState) leaf(m mapper.Mapper, c *form.Control, path form.Path) obs.Bound {
	if o, ok := s.restore(c, path); ok {
		return o
	}

	return m.InitialObject(s.Namespace, path, c, nil)
}

func (s *buildState) group(m mapper.Mapper, c *form.Control, path form.Path, members []obs.Bound) obs.Bound {
	if o, ok := s.restore(c, path); ok {
		return o.WithMembers(members)
	}

	if o, ok := m.InitialObject(s.Namespace, path, c, nil).(*obs.Obs); ok {
		return o.WithMembers(members)
	}

	return nil
}

// restore returns the prior observation at path, moved to the current form version.
func (s *buildState) restore(c *form.Control, path form.Path) (*obs.Obs, bool) {
	p, ok := s.pool.match(c, path)
	if !ok {
		if len(s.pool.at(path)) > 0 {
			s.Logger.Debug().
				Str("formFieldPath", path.String()).
				Msg("prior observation does not match control concept, starting empty")
		}

		return nil, false
	}

	o, err := obs.FromPayload(p, c.Concept)
	if err != nil {
		return nil, false
	}

	return o.Readdress(path), true
}

// pool indexes prior observations by formFieldPath. Form versions are
// ignored so data recorded against an earlier version still binds.
type pool struct {
	entries []entry
}

type entry struct {
	path    form.Path
	payload obs.Payload
}

func newPool(formName string, observations []obs.Payload, log zerolog.Logger) *pool {
	p := &pool{}
	p.add(formName, obs.Expand(observations), log)

	return p
}

func (p *pool) add(formName string, payloads []obs.Payload, log zerolog.Logger) {
	for _, pl := range payloads {
		path, err := form.ParsePath(pl.FormFieldPath)
		if err != nil {
			log.Debug().Err(err).Msg("skipping observation without usable formFieldPath")
			continue
		}

		if path.Form != formName {
			continue
		}

		p.entries = append(p.entries, entry{path: path, payload: pl})
		p.add(formName, pl.GroupMembers, log)
	}
}

// at returns the payloads stored at path.
func (p *pool) at(path form.Path) []obs.Payload {
	var out []obs.Payload

	for _, e := range p.entries {
		if slices.Equal(e.path.Steps, path.Steps) {
			out = append(out, e.payload)
		}
	}

	return out
}

// match picks the payload at path for c: the first whose concept matches,
// preferring observations that are not voided.
func (p *pool) match(c *form.Control, path form.Path) (obs.Payload, bool) {
	var found []obs.Payload

	for _, pl := range p.at(path) {
		if sameConcept(c, pl) {
			found = append(found, pl)
		}
	}

	for _, pl := range found {
		if !pl.Voided {
			return pl, true
		}
	}

	if len(found) > 0 {
		return found[0], true
	}

	return obs.Payload{}, false
}

// rebased returns the payloads at path for c, addressed at path.
func (p *pool) rebased(c *form.Control, path form.Path) []obs.Payload {
	var out []obs.Payload

	for _, pl := range p.at(path) {
		if sameConcept(c, pl) {
			pl.FormFieldPath = path.String()
			out = append(out, pl)
		}
	}

	return out
}

// indexes returns the sorted repeat indexes of control id directly below parent.
func (p *pool) indexes(parent form.Path, id string) []int {
	depth := len(parent.Steps)

	var out []int

	for _, e := range p.entries {
		steps := e.path.Steps
		if len(steps) <= depth || steps[depth].ControlID != id || !slices.Equal(steps[:depth], parent.Steps) {
			continue
		}

		if !slices.Contains(out, steps[depth].Index) {
			out = append(out, steps[depth].Index)
		}
	}

	slices.Sort(out)

	return out
}

// voided reports whether payloads exist at or below path and all of them are voided.
func (p *pool) voided(path form.Path) bool {
	found := false

	for _, e := range p.entries {
		if len(e.path.Steps) < len(path.Steps) || !slices.Equal(e.path.Steps[:len(path.Steps)], path.Steps) {
			continue
		}

		if !e.payload.Voided {
			return false
		}

		found = true
	}

	return found
}

// anyLive reports whether some repeat instance of control id below parent
// has an observation that is not voided.
func (p *pool) anyLive(parent form.Path, id string) bool {
	return slices.ContainsFunc(p.indexes(parent, id), func(idx int) bool {
		return !p.voided(parent.Child(id, idx))
	})
}

func sameConcept(c *form.Control, p obs.Payload) bool {
	return p.Concept == (concept.Ref{}) || c.Concept.Matches(p.Concept)
}
