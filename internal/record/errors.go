package record

import "errors"

var (
	// ErrNotFound is returned for a formFieldPath that addresses no record.
	ErrNotFound = errors.New("no control at formFieldPath")
	// ErrNotRepeatable is returned when repeating or removing a control without addMore.
	ErrNotRepeatable = errors.New("control is not repeatable")
	// ErrNotRemovable is returned when removing the instance that offers addMore.
	ErrNotRemovable = errors.New("control instance cannot be removed")
	// ErrNoValue is returned when editing the value of a control that holds none.
	ErrNoValue = errors.New("control holds no value")
)
