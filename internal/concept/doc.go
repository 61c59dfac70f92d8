// Package concept describes the clinical concepts controls and observations
// are bound to: datatype, class, reference ranges and coded answers.
package concept
