package record

import (
	"obs-mapper/internal/form"
	"obs-mapper/internal/validation"
)

// Observer is notified of build and edit events.
type Observer interface {
	RecordBuilt(kind form.Kind, fallback bool)
	Edited(op string)
	ValidationFailed(severity validation.Severity)
}

type nopObserver struct{}

func (nopObserver) RecordBuilt(form.Kind, bool)          {}
func (nopObserver) Edited(string)                        {}
func (nopObserver) ValidationFailed(validation.Severity) {}

// Edit operation names reported to Observer.Edited.
const (
	OpSetValue   = "set_value"
	OpSetComment = "set_comment"
	OpAddMore    = "add_more"
	OpRemove     = "remove"
	OpValidate   = "validate"
)
