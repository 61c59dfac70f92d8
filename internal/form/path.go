package form

import (
	"strconv"
	"strings"
)

// Step is one "<controlId>-<index>" segment of a Path.
type Step struct {
	ControlID string
	Index     int
}

// Path is a parsed formFieldPath. Methods never modify the receiver.
type Path struct {
	Form    string
	Version string
	Steps   []Step
}

// RootPath returns the path of a form with no control steps.
func RootPath(formName, version string) Path {
	return Path{Form: formName, Version: version}
}

// ParsePath parses "Form.Version/<id>-<index>[/<id>-<index>...]".
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, malformed(s, "empty formFieldPath")
	}

	parts := strings.Split(s, "/")

	head := parts[0]
	dot := strings.LastIndex(head, ".")
	if dot <= 0 {
		return Path{}, malformed(s, "missing form version")
	}

	p := Path{Form: head[:dot], Version: head[dot+1:]}

	for _, part := range parts[1:] {
		dash := strings.LastIndex(part, "-")
		if dash <= 0 {
			return Path{}, malformed(s, "invalid step %q", part)
		}

		idx, err := strconv.Atoi(part[dash+1:])
		if err != nil || idx < 0 {
			return Path{}, malformed(s, "invalid repeat index in step %q", part)
		}

		p.Steps = append(p.Steps, Step{ControlID: part[:dash], Index: idx})
	}

	return p, nil
}

// MustParsePath is ParsePath for static paths; it panics on error.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}

	return p
}

// String returns the formFieldPath text.
func (p Path) String() string {
	var b strings.Builder

	b.WriteString(p.Form)
	b.WriteString(".")
	b.WriteString(p.Version)

	for _, s := range p.Steps {
		b.WriteString("/")
		b.WriteString(s.ControlID)
		b.WriteString("-")
		b.WriteString(strconv.Itoa(s.Index))
	}

	return b.String()
}

// IsRoot is true for a path without steps.
func (p Path) IsRoot() bool {
	return len(p.Steps) == 0
}

// Child appends a step.
func (p Path) Child(controlID string, index int) Path {
	steps := make([]Step, len(p.Steps), len(p.Steps)+1)
	copy(steps, p.Steps)

	return Path{Form: p.Form, Version: p.Version, Steps: append(steps, Step{ControlID: controlID, Index: index})}
}

// Parent drops the last step.
func (p Path) Parent() Path {
	if p.IsRoot() {
		return p
	}

	return Path{Form: p.Form, Version: p.Version, Steps: append([]Step{}, p.Steps[:len(p.Steps)-1]...)}
}

// ControlID returns the control id of the last step.
func (p Path) ControlID() string {
	if p.IsRoot() {
		return ""
	}

	return p.Steps[len(p.Steps)-1].ControlID
}

// Index returns the repeat index of the last step.
func (p Path) Index() int {
	if p.IsRoot() {
		return 0
	}

	return p.Steps[len(p.Steps)-1].Index
}

// WithIndex replaces the repeat index of the last step.
func (p Path) WithIndex(index int) Path {
	if p.IsRoot() {
		return p
	}

	return p.Parent().Child(p.ControlID(), index)
}

// Equal compares two paths step by step.
func (p Path) Equal(o Path) bool {
	return p.String() == o.String()
}

// NextIndex returns one more than the highest repeat index among paths.
func NextIndex(paths []Path) int {
	next := 0
	for _, p := range paths {
		if p.Index() >= next {
			next = p.Index() + 1
		}
	}

	return next
}
