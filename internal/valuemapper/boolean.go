package valuemapper

import (
	"obs-mapper/internal/form"
	"obs-mapper/internal/match"
	"obs-mapper/internal/value"
)

// Boolean maps the control's option names to boolean values.
type Boolean struct{}

func (Boolean) Strategy() Strategy { return StrategyBoolean }

func (Boolean) Display(ctl *form.Control, values []value.Value) []string {
	if len(values) == 0 {
		return nil
	}

	if _, ok := values[0].Bool(); !ok {
		return nil
	}

	for _, opt := range ctl.BooleanOptions() {
		if opt.Value == values[0] {
			return []string{opt.Name}
		}
	}

	return nil
}

func (Boolean) Resolve(ctl *form.Control, keys []string) []value.Value {
	if len(keys) == 0 {
		return nil
	}

	for _, opt := range ctl.BooleanOptions() {
		if match.SameName(opt.Name, keys[0]) {
			return []value.Value{opt.Value}
		}
	}

	return nil
}
