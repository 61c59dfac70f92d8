// Package validation evaluates the per-control validation rules of a form.
//
// Each rule id maps to a pure predicate over a value and a Context:
//   - mandatory: the value must be defined and non-blank after trimming
//   - allowDecimal: fractional numbers are rejected unless the control allows them
//   - allowFutureDates: dates after now are rejected unless the control allows them
//   - allowRange: numbers outside the concept's normal range raise a warning
//   - minMaxRange: numbers outside the concept's absolute range raise an error
//
// Errors block submission; warnings do not. The abnormal obs group mapper
// keys off the allowRange warning to derive its abnormal flag.
package validation
