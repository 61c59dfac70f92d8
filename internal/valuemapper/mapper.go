package valuemapper

import (
	"obs-mapper/internal/form"
	"obs-mapper/internal/value"
)

// Mapper converts between widget selections and domain values.
// Neither direction fails: input that matches nothing maps to nil.
type Mapper interface {
	Strategy() Strategy
	// Display maps stored domain values to the keys the widget shows.
	Display(ctl *form.Control, values []value.Value) []string
	// Resolve maps selected keys to domain values.
	Resolve(ctl *form.Control, keys []string) []value.Value
}

// Strategy identifies a built-in mapper.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyBoolean
	StrategyCoded
	StrategyCodedMultiSelect
	StrategyCustom

	StrategyTotal = int(iota)
)

// String returns a human-readable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyBoolean:
		return "boolean"
	case StrategyCoded:
		return "coded"
	case StrategyCodedMultiSelect:
		return "codedMultiSelect"
	case StrategyCustom:
		return "custom"
	default:
		return "unknown"
	}
}
