// Package valuemapper translates between what a widget shows (option names,
// selected answer keys) and the domain value stored on an observation.
//
// Boolean controls map declared {name, value} option pairs, coded controls
// map concept answers, and multi-select coded controls map an ordered,
// duplicate-free selection of answers. Other datatypes need no mapping:
// Store.Mapper returns nil for them and callers use the raw value.
package valuemapper
