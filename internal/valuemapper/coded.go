package valuemapper

import (
	"obs-mapper/internal/concept"
	"obs-mapper/internal/form"
	"obs-mapper/internal/match"
	"obs-mapper/internal/value"
)

// Coded maps one selected answer. Keys are answer uuids; answer names are
// accepted as well, compared after normalization.
type Coded struct{}

func (Coded) Strategy() Strategy { return StrategyCoded }

func (Coded) Display(ctl *form.Control, values []value.Value) []string {
	if len(values) == 0 {
		return nil
	}

	if key, ok := displayAnswer(ctl.Concept, values[0]); ok {
		return []string{key}
	}

	return nil
}

func (Coded) Resolve(ctl *form.Control, keys []string) []value.Value {
	if len(keys) == 0 {
		return nil
	}

	if a, ok := resolveAnswer(ctl.Concept, keys[0]); ok {
		return []value.Value{value.Coded(a)}
	}

	return nil
}

// CodedMultiSelect maps an ordered selection of answers. Duplicates collapse
// onto their first occurrence.
type CodedMultiSelect struct{}

func (CodedMultiSelect) Strategy() Strategy { return StrategyCodedMultiSelect }

func (CodedMultiSelect) Display(ctl *form.Control, values []value.Value) []string {
	var keys []string

	seen := map[string]bool{}

	for _, v := range values {
		key, ok := displayAnswer(ctl.Concept, v)
		if ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}

	return keys
}

func (CodedMultiSelect) Resolve(ctl *form.Control, keys []string) []value.Value {
	var values []value.Value

	seen := map[string]bool{}

	for _, key := range keys {
		a, ok := resolveAnswer(ctl.Concept, key)
		if ok && !seen[a.UUID] {
			seen[a.UUID] = true
			values = append(values, value.Coded(a))
		}
	}

	return values
}

func displayAnswer(c *concept.Concept, v value.Value) (string, bool) {
	a, ok := v.Answer()
	if !ok {
		return "", false
	}

	if known, ok := c.Answer(a.UUID); ok {
		return known.UUID, true
	}

	return "", false
}

func resolveAnswer(c *concept.Concept, key string) (concept.Answer, bool) {
	if c == nil {
		return concept.Answer{}, false
	}

	if a, ok := c.Answer(key); ok {
		return a, true
	}

	names := make([]string, len(c.Answers))
	for i, a := range c.Answers {
		names[i] = a.Name
	}

	if i, ok := match.Find(key, names); ok {
		return c.Answers[i], true
	}

	return concept.Answer{}, false
}
