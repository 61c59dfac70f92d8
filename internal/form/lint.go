package form

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"obs-mapper/internal/concept"
	"obs-mapper/internal/diagnostic"
	"obs-mapper/internal/match"
)

var structValidator = validator.New()

// Lint validates the structure of a form definition. It reports everything
// it finds rather than stopping at the first problem.
func Lint(f *Form) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("form_is_nil", "form is nil", "")
		return res
	}

	if err := structValidator.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				res.AddError("required_field", fmt.Sprintf("%s is %s", fe.Namespace(), fe.Tag()), "")
			}
		} else {
			res.AddError("invalid_form", err.Error(), "")
		}
	}

	seen := map[string]struct{}{}

	Walk(f.Controls, func(c *Control) bool {
		if c.ID != "" {
			if _, dup := seen[c.ID]; dup {
				res.AddError("duplicate_id", fmt.Sprintf("duplicate control id %q", c.ID), c.ID)
			}

			seen[c.ID] = struct{}{}
		}

		lintControl(res, c)

		return true
	})

	return res
}

func lintControl(res *diagnostic.Diagnostics, c *Control) {
	if c.Type != "" && !slices.Contains(KnownTypes, c.Type) {
		res.AddWarning("unknown_control_type", fmt.Sprintf("unknown control type %q", c.Type), c.ID,
			match.Suggest(c.Type, KnownTypes, match.DefaultSuggestScore)...)
	}

	switch c.Type {
	case TypeObs, TypeObsGroup:
		if c.Concept == nil {
			res.AddError("missing_concept", fmt.Sprintf("%s without concept", c.Type), c.ID)
		}
	}

	if c.Properties.MultiSelect && !c.Concept.Is(concept.Coded) {
		res.AddWarning("multiselect_not_coded", "multiSelect is only meaningful for coded concepts", c.ID)
	}

	if c.Kind() == KindAbnormalObsGroup {
		if err := CheckAbnormalGroup(c); err != nil {
			res.AddError("abnormal_group_shape", err.Error(), c.ID)
		}
	}

	if c.Kind().IsContainer() && c.Concept != nil {
		res.AddInfo("container_concept_ignored", c.Type+" does not record an observation", c.ID)
	}
}

// CheckAbnormalGroup verifies an abnormal group holds exactly one numeric
// member and one boolean member of the Abnormal class.
func CheckAbnormalGroup(c *Control) error {
	var numeric, abnormal int

	for i := range c.Controls {
		cc := c.Controls[i].Concept
		switch {
		case cc.Is(concept.Numeric):
			numeric++
		case cc.IsAbnormal() && cc.Is(concept.Boolean):
			abnormal++
		}
	}

	if numeric != 1 || abnormal != 1 {
		return malformed(c.ID, "abnormal group needs one numeric and one abnormal member, found %d and %d",
			numeric, abnormal)
	}

	return nil
}

// Check returns a MalformedError for the first lint error, or nil.
func Check(f *Form) error {
	res := Lint(f)
	if res.IsValid() {
		return nil
	}

	first := res.Errors[0]

	return &MalformedError{Ref: first.ControlID, Reason: first.Message}
}
