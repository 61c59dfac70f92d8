package validation

import (
	"math"
	"slices"
	"strings"
	"time"

	"obs-mapper/internal/concept"
	"obs-mapper/internal/value"
	"obs-mapper/utils"
)

// Rule identifies a validation rule. The rule id doubles as the error message.
type Rule string

const (
	Mandatory        Rule = "mandatory"
	AllowDecimal     Rule = "allowDecimal"
	AllowFutureDates Rule = "allowFutureDates"
	AllowRange       Rule = "allowRange"
	MinMaxRange      Rule = "minMaxRange"
)

// Severity distinguishes blocking errors from non-blocking warnings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText writes the severity name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText reads a severity name; anything but "warning" is an error.
func (s *Severity) UnmarshalText(text []byte) error {
	if string(text) == "warning" {
		*s = SeverityWarning
	} else {
		*s = SeverityError
	}

	return nil
}

// Error is one failed rule.
type Error struct {
	Type    Severity `json:"type" yaml:"type"`
	Message Rule     `json:"message" yaml:"message"`
}

// Context carries what rules need beyond the value itself.
type Context struct {
	Concept          *concept.Concept
	AllowDecimal     bool
	AllowFutureDates bool
	// Now defaults to time.Now when zero.
	Now time.Time
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.DateOnly,
}

// Errors evaluates rules against v. The result is never nil.
func Errors(v value.Value, rules []Rule, ctx Context) []Error {
	errs := make([]Error, 0)

	if ctx.Now.IsZero() {
		ctx.Now = time.Now()
	}

	for _, rule := range rules {
		if e, failed := check(rule, v, ctx); failed {
			errs = append(errs, e)
		}
	}

	return errs
}

func check(rule Rule, v value.Value, ctx Context) (Error, bool) {
	switch rule {
	case Mandatory:
		return Error{Type: SeverityError, Message: Mandatory}, v.IsBlank()

	case AllowDecimal:
		n, ok := v.Number()
		if !ok || ctx.AllowDecimal {
			return Error{}, false
		}

		return Error{Type: SeverityError, Message: AllowDecimal}, n != math.Trunc(n)

	case AllowFutureDates:
		if ctx.AllowFutureDates {
			return Error{}, false
		}

		date, ok := parseDate(v)
		if !ok {
			return Error{}, false
		}

		return Error{Type: SeverityError, Message: AllowFutureDates}, isFuture(date, ctx.Now)

	case AllowRange:
		n, ok := v.Number()
		if !ok {
			return Error{}, false
		}

		r := ctx.Concept.NormalRange()

		return Error{Type: SeverityWarning, Message: AllowRange}, !r.IsOpen() && !inRange(r, n)

	case MinMaxRange:
		n, ok := v.Number()
		if !ok {
			return Error{}, false
		}

		r := ctx.Concept.AbsoluteRange()

		return Error{Type: SeverityError, Message: MinMaxRange}, !r.IsOpen() && !inRange(r, n)

	default:
		return Error{}, false
	}
}

func inRange(r concept.Range, n float64) bool {
	low, high := math.Inf(-1), math.Inf(1)
	if r.Low != nil {
		low = *r.Low
	}

	if r.High != nil {
		high = *r.High
	}

	return utils.IsInRange(low, n, high)
}

func parseDate(v value.Value) (time.Time, bool) {
	s, ok := v.Text()
	if !ok {
		return time.Time{}, false
	}

	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// isFuture compares date-only values by calendar day and timestamps exactly.
func isFuture(t, now time.Time) bool {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		y, m, d := now.In(t.Location()).Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, t.Location())

		return t.After(today)
	}

	return t.After(now)
}

// HasBlocking reports whether any error has error severity.
func HasBlocking(errs []Error) bool {
	return slices.ContainsFunc(errs, func(e Error) bool { return e.Type == SeverityError })
}

// Has reports whether errs contains a failure of rule with severity s.
func Has(errs []Error, rule Rule, s Severity) bool {
	return slices.Contains(errs, Error{Type: s, Message: rule})
}
