// Package obs holds the observation model bound to form controls.
//
// An Obs is one recorded value, or a group of member observations. A List
// wraps the instances of a multi-select control, all sharing one template.
// Both are immutable: every modifier returns a new value and leaves the
// receiver untouched, so untouched members are shared between versions.
//
// Payload is the persistence shape. Obs and List flatten into payloads with
// Payload, and FromPayload restores an Obs from one.
package obs
