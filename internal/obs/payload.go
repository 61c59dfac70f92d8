package obs

import (
	"obs-mapper/internal/concept"
	"obs-mapper/internal/value"
)

// Payload is the persistence shape of an observation. A group carries
// GroupMembers, a multi-select list carries ObsList and a section or table
// carries Controls; the latter two have no value and no uuid of their own.
type Payload struct {
	UUID          string      `json:"uuid,omitempty"`
	Concept       concept.Ref `json:"concept,omitzero"`
	Value         value.Value `json:"value,omitzero"`
	Comment       string      `json:"comment,omitempty"`
	Voided        bool        `json:"voided"`
	FormNamespace string      `json:"formNamespace,omitempty"`
	FormFieldPath string      `json:"formFieldPath,omitempty"`
	GroupMembers  []Payload   `json:"groupMembers,omitempty"`
	ObsList       []Payload   `json:"obsList,omitempty"`
	Controls      []Payload   `json:"controls,omitempty"`
}

// IsContainer reports whether p wraps other payloads without being an observation.
func (p Payload) IsContainer() bool {
	return len(p.ObsList) > 0 || len(p.Controls) > 0
}

// Expand replaces list and container payloads with the observations they
// wrap, at every depth. The result is the flat persistence form, where list
// items appear as siblings sharing a formFieldPath.
func Expand(ps []Payload) []Payload {
	var out []Payload

	for _, p := range ps {
		switch {
		case len(p.ObsList) > 0:
			out = append(out, Expand(p.ObsList)...)
		case len(p.Controls) > 0:
			out = append(out, Expand(p.Controls)...)
		case p.ObsList != nil || p.Controls != nil:
			// Empty wrapper.
		default:
			p.GroupMembers = Expand(p.GroupMembers)
			out = append(out, p)
		}
	}

	return out
}

// Prune drops voided observations that were never persisted, at every depth.
func Prune(ps []Payload) []Payload {
	var out []Payload

	for _, p := range ps {
		if p.Voided && p.UUID == "" {
			continue
		}

		p.GroupMembers = Prune(p.GroupMembers)
		out = append(out, p)
	}

	return out
}
