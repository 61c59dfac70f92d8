// Package idgen generates control ids for form definitions.
package idgen

import (
	"math"
	"strconv"

	"obs-mapper/internal/form"
)

// Generator hands out strictly increasing ids. It is not safe for concurrent use.
type Generator struct {
	last int
}

// New returns a generator starting above the highest numeric id found in
// controls, at any depth. Ids that are not whole numbers are ignored.
func New(controls []form.Control) *Generator {
	g := &Generator{}

	form.Walk(controls, func(c *form.Control) bool {
		if id, ok := numericID(c.ID); ok && id > g.last {
			g.last = id
		}

		return true
	})

	return g
}

// ID returns the next id.
func (g *Generator) ID() int {
	g.last++
	return g.last
}

// Assign gives every control of f without an id a fresh one and returns
// how many ids were assigned.
func Assign(f *form.Form) int {
	g := New(f.Controls)
	assigned := 0

	form.Walk(f.Controls, func(c *form.Control) bool {
		if c.ID == "" {
			c.ID = strconv.Itoa(g.ID())
			assigned++
		}

		return true
	})

	return assigned
}

func numericID(s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}

	return int(f), true
}
