package form

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind is the closed set of control shapes the engine maps.
type Kind int

const (
	KindUnknown Kind = iota
	KindLeaf
	KindObsGroup
	KindAbnormalObsGroup
	KindObsList
	KindSection
	KindTable
	KindStatic

	// KindTotal is the number of kinds defined
	KindTotal = int(iota)
)

// HasObs reports whether controls of this kind bind an observation.
func (k Kind) HasObs() bool {
	switch k {
	default:
		return false
	case KindLeaf, KindObsGroup, KindAbnormalObsGroup, KindObsList:
		return true
	}
}

// IsGroup reports whether the kind owns group members.
func (k Kind) IsGroup() bool {
	return k == KindObsGroup || k == KindAbnormalObsGroup
}

// IsContainer reports whether the kind is a structural container without an observation.
func (k Kind) IsContainer() bool {
	return k == KindSection || k == KindTable
}
