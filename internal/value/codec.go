package value

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"obs-mapper/internal/concept"
)

// MarshalJSON writes None as null and coded values as {uuid, name}.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNone:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.n)
	case KindText:
		return json.Marshal(v.s)
	case KindCoded:
		return json.Marshal(v.answer)
	default:
		return nil, fmt.Errorf("unsupported value kind %d", v.kind)
	}
}

// UnmarshalJSON infers the kind from the JSON token.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = None
		return nil
	}

	switch data[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}

		*v = Bool(b)
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}

		*v = Text(s)
	case '{':
		var a concept.Answer
		if err := json.Unmarshal(data, &a); err != nil {
			return err
		}

		*v = Coded(a)
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("unsupported value %s: %w", data, err)
		}

		*v = Number(n)
	}

	return nil
}

// MarshalYAML mirrors MarshalJSON.
func (v Value) MarshalYAML() (any, error) {
	switch v.kind {
	case KindNone:
		return nil, nil
	case KindBool:
		return v.b, nil
	case KindNumber:
		return v.n, nil
	case KindText:
		return v.s, nil
	default:
		return v.answer, nil
	}
}

// UnmarshalYAML accepts scalars and {uuid, name} mappings.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			*v = None
		case "!!bool":
			var b bool
			if err := node.Decode(&b); err != nil {
				return err
			}

			*v = Bool(b)
		case "!!int", "!!float":
			var n float64
			if err := node.Decode(&n); err != nil {
				return err
			}

			*v = Number(n)
		default:
			*v = Text(node.Value)
		}

		return nil

	case yaml.MappingNode:
		var a concept.Answer
		if err := node.Decode(&a); err != nil {
			return err
		}

		*v = Coded(a)

		return nil

	default:
		return fmt.Errorf("expected scalar or mapping value, got %v", node.Kind)
	}
}
