package valuemapper

import (
	"obs-mapper/internal/concept"
	"obs-mapper/internal/form"
)

// Store selects the mapper for a control. Built-in strategies are fixed;
// Register adds mappers for further datatypes.
//
// Register is not safe for concurrent use and must be called before the
// store is first read.
type Store struct {
	builtin [StrategyTotal]Mapper
	custom  map[concept.Datatype]Mapper
}

// Default is the process-wide store.
var Default = NewStore()

// NewStore returns a store holding the built-in strategies.
func NewStore() *Store {
	s := &Store{custom: make(map[concept.Datatype]Mapper)}
	s.builtin[StrategyBoolean] = Boolean{}
	s.builtin[StrategyCoded] = Coded{}
	s.builtin[StrategyCodedMultiSelect] = CodedMultiSelect{}

	return s
}

// Register maps a datatype to m. Built-in datatypes cannot be overridden.
func (s *Store) Register(dt concept.Datatype, m Mapper) bool {
	if Select(dt, false) != StrategyNone {
		return false
	}

	s.custom[dt] = m

	return true
}

// Has reports whether a custom mapper is registered for dt.
func (s *Store) Has(dt concept.Datatype) bool {
	_, ok := s.custom[dt]
	return ok
}

// Mapper returns the mapper for ctl, or nil when its value needs no mapping.
func (s *Store) Mapper(ctl *form.Control) Mapper {
	if ctl == nil || ctl.Concept == nil {
		return nil
	}

	if st := Select(ctl.Concept.Datatype, ctl.Properties.MultiSelect); st != StrategyNone {
		return s.builtin[st]
	}

	return s.custom[ctl.Concept.Datatype]
}

// Select is the built-in dispatch: Boolean, Coded, or CodedMultiSelect when
// multiSelect is set on a coded control.
func Select(dt concept.Datatype, multiSelect bool) Strategy {
	switch dt {
	case concept.Boolean:
		return StrategyBoolean
	case concept.Coded:
		if multiSelect {
			return StrategyCodedMultiSelect
		}

		return StrategyCoded
	default:
		return StrategyNone
	}
}
