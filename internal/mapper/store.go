package mapper

import (
	"slices"

	"obs-mapper/internal/form"
	"obs-mapper/internal/obs"
)

// Store selects the mapper for a control. Built-in kinds are fixed;
// Register plugs a mapper in for a further control type, consulted for
// controls that would otherwise map as plain observations.
//
// Register is not safe for concurrent use and must be called before the
// store is first read.
type Store struct {
	builtin [form.KindTotal]Mapper
	custom  map[string]Mapper
}

// Default is the process-wide store.
var Default = NewStore()

// NewStore returns a store holding the built-in strategies.
func NewStore() *Store {
	s := &Store{custom: make(map[string]Mapper)}

	group := &ObsGroup{store: s}

	s.builtin[form.KindUnknown] = Obs{}
	s.builtin[form.KindLeaf] = Obs{}
	s.builtin[form.KindStatic] = Obs{}
	s.builtin[form.KindObsGroup] = group
	s.builtin[form.KindAbnormalObsGroup] = &AbnormalObsGroup{ObsGroup: *group}
	s.builtin[form.KindObsList] = ObsList{}
	s.builtin[form.KindSection] = &Container{kind: form.KindSection, store: s}
	s.builtin[form.KindTable] = &Container{kind: form.KindTable, store: s}

	return s
}

// Register maps a control type to m. Types the engine knows cannot be overridden.
func (s *Store) Register(controlType string, m Mapper) bool {
	if slices.Contains(form.KnownTypes, controlType) {
		return false
	}

	s.custom[controlType] = m

	return true
}

// Mapper returns the mapper for ctl. It never returns nil.
func (s *Store) Mapper(ctl *form.Control) Mapper {
	kind := ctl.Kind()
	if kind == form.KindLeaf || kind == form.KindStatic {
		if m, ok := s.custom[ctl.Type]; ok {
			return m
		}
	}

	if m := s.builtin[kind]; m != nil {
		return m
	}

	return Obs{}
}

// InitialMembers builds the initial bound values of ctl's children below
// path. Children of sections and tables are lifted into the member list;
// controls without an observation contribute nothing.
func (s *Store) InitialMembers(namespace string, path form.Path, ctl *form.Control) []obs.Bound {
	var members []obs.Bound

	for i := range ctl.Controls {
		child := &ctl.Controls[i]
		childPath := path.Child(child.ID, 0)

		if child.Kind().IsContainer() {
			members = append(members, s.InitialMembers(namespace, childPath, child)...)
			continue
		}

		if b := s.Mapper(child).InitialObject(namespace, childPath, child, nil); b != nil {
			members = append(members, b)
		}
	}

	return members
}
