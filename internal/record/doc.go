// Package record binds form metadata to observations.
//
// Builder walks a form definition depth first, matches every control
// instance to the prior observations stored at its formFieldPath and wraps
// the result in a Record. The Tree it returns is immutable: every edit
// returns a new Tree whose untouched subtrees are shared with the old one.
//
// Matching is lenient. A prior observation whose concept differs from the
// control's is ignored and the control starts empty; a control type
// without a registered UI component yields a fallback record. Build fails
// only for a form that is missing or has no name.
package record
