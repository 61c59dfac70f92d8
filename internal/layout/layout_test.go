package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obs-mapper/internal/form"
)

type cell struct {
	ctl  *form.Control
	path form.Path
}

func (c cell) Control() *form.Control { return c.ctl }
func (c cell) Path() form.Path        { return c.path }

func at(id string, row, col, idx int, addMore bool) cell {
	return cell{
		ctl: &form.Control{ID: id, Type: form.TypeObs, Properties: form.Properties{
			Location: form.Location{Row: row, Column: col},
			AddMore:  addMore,
		}},
		path: form.RootPath("F", "1").Child(id, idx),
	}
}

func ids(cells []cell) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = c.ctl.ID
	}

	return out
}

func TestRows(t *testing.T) {
	rows := Rows([]cell{
		at("a", 2, 1, 0, false),
		at("b", 0, 3, 0, false),
		at("c", 2, 0, 0, false),
		at("d", 0, 1, 0, false),
		at("e", 2, 0, 1, false),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, []string{"d", "b"}, ids(rows[0].Items))
	assert.Equal(t, 2, rows[1].Index)
	assert.Equal(t, []string{"c", "e", "a"}, ids(rows[1].Items))

	assert.Empty(t, Rows[cell](nil))
}

func TestRepeats(t *testing.T) {
	first := at("g", 0, 0, 0, true)
	second := at("g", 1, 0, 2, true)
	third := at("g", 2, 0, 5, true)
	plain := at("p", 3, 0, 0, false)

	got := Repeats([]cell{second, first, plain, third})

	assert.Equal(t, Buttons{AddMore: true}, got[first.path.String()])
	assert.Equal(t, Buttons{Remove: true}, got[second.path.String()])
	assert.Equal(t, Buttons{Remove: true}, got[third.path.String()])
	assert.Equal(t, Buttons{}, got[plain.path.String()])
}

func TestRepeatsAfterFirstRemoved(t *testing.T) {
	got := Repeats([]cell{at("g", 0, 0, 3, true), at("g", 0, 0, 4, true)})

	assert.Equal(t, Buttons{AddMore: true}, got["F.1/g-3"])
	assert.Equal(t, Buttons{Remove: true}, got["F.1/g-4"])
}
