package form

import (
	"errors"
	"fmt"
)

// ErrMalformed matches every MalformedError with errors.Is.
var ErrMalformed = errors.New("malformed form metadata")

// MalformedError reports structural input the engine cannot work with.
// It is the only error the engine raises for programmer-supplied input;
// value-level problems degrade to absent values instead.
type MalformedError struct {
	// Ref is the control id or formFieldPath at fault, if any.
	Ref    string
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("%s: %s", ErrMalformed, e.Reason)
	}

	return fmt.Sprintf("%s: %s: %s", ErrMalformed, e.Ref, e.Reason)
}

// Is makes errors.Is(err, ErrMalformed) hold.
func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

func malformed(ref, format string, args ...any) error {
	return &MalformedError{Ref: ref, Reason: fmt.Sprintf(format, args...)}
}
