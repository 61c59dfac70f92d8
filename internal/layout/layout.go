// Package layout arranges sibling controls on the form grid and decides
// which repeatable instances show add and remove buttons.
package layout

import (
	"slices"

	"obs-mapper/internal/form"
)

// Item is a control instance placed on the grid.
type Item interface {
	Control() *form.Control
	Path() form.Path
}

// Row is one grid row, items ordered by column.
type Row[T Item] struct {
	Index int
	Items []T
}

// Rows groups items by row, rows ascending. Items sharing a cell keep their input order.
func Rows[T Item](items []T) []Row[T] {
	byRow := map[int][]T{}

	var indexes []int

	for _, it := range items {
		r := it.Control().Properties.Location.Row
		if _, ok := byRow[r]; !ok {
			indexes = append(indexes, r)
		}

		byRow[r] = append(byRow[r], it)
	}

	slices.Sort(indexes)

	rows := make([]Row[T], 0, len(indexes))
	for _, r := range indexes {
		cells := byRow[r]
		slices.SortStableFunc(cells, func(a, b T) int {
			return a.Control().Properties.Location.Column - b.Control().Properties.Location.Column
		})

		rows = append(rows, Row[T]{Index: r, Items: cells})
	}

	return rows
}

// Buttons are the repeat controls shown next to an instance.
type Buttons struct {
	AddMore bool
	Remove  bool
}

// Repeats computes the buttons of every item, keyed by formFieldPath.
// For an addMore control the lowest-indexed instance offers adding another
// and every further instance offers its own removal.
func Repeats[T Item](items []T) map[string]Buttons {
	first := map[string]int{}

	for _, it := range items {
		if !it.Control().Properties.AddMore {
			continue
		}

		id, idx := it.Control().ID, it.Path().Index()
		if cur, ok := first[id]; !ok || idx < cur {
			first[id] = idx
		}
	}

	out := make(map[string]Buttons, len(items))

	for _, it := range items {
		var b Buttons

		if it.Control().Properties.AddMore {
			isFirst := it.Path().Index() == first[it.Control().ID]
			b = Buttons{AddMore: isFirst, Remove: !isFirst}
		}

		out[it.Path().String()] = b
	}

	return out
}
