package encounter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obs-mapper/internal/concept"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/value"
)

var savedAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func openStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "encounters"))
	require.NoError(t, err)

	s.now = func() time.Time { return savedAt }

	return s
}

func vitals() Encounter {
	pulse := concept.Ref{UUID: "c-pulse", Name: "Pulse", Datatype: concept.Numeric}

	return Encounter{
		FormName:    "Vitals",
		FormVersion: "2",
		Observations: []obs.Payload{
			{
				Concept:       concept.Ref{UUID: "c-set", Name: "Pulse Data"},
				FormFieldPath: "Vitals.2/1-0",
				GroupMembers: []obs.Payload{
					{Concept: pulse, Value: value.Number(72), FormFieldPath: "Vitals.2/2-0"},
					{Concept: pulse, Voided: true, FormFieldPath: "Vitals.2/3-0"},
				},
			},
			{UUID: "existing", Concept: pulse, Value: value.Number(80), FormFieldPath: "Vitals.2/4-0"},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, vitals())
	require.NoError(t, err)

	_, err = uuid.Parse(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, savedAt, saved.UpdatedAt)

	group := saved.Observations[0]
	assert.NotEmpty(t, group.UUID)
	assert.NotEmpty(t, group.GroupMembers[0].UUID)
	assert.Empty(t, group.GroupMembers[1].UUID, "voided observations get no uuid")
	assert.Equal(t, "existing", saved.Observations[1].UUID)

	loaded, err := s.Load(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	ids, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{saved.ID}, ids)

	again, err := s.Save(ctx, loaded)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, saved.Observations, again.Observations, "uuids are stable across saves")

	_, err = os.Stat(filepath.Join(s.Dir(), saved.ID+".json.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadErrors(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.Load(ctx, uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Load(ctx, "../escape")
	assert.Error(t, err)

	_, err = s.Save(ctx, Encounter{})
	assert.Error(t, err)

	_, err = s.Save(ctx, Encounter{ID: "nope", FormName: "Vitals"})
	assert.Error(t, err)
}

func TestListSkipsForeignFiles(t *testing.T) {
	s := openStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "notes.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "README"), nil, 0644))

	ids, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestSaveWaitsForLock(t *testing.T) {
	s := openStore(t)
	id := uuid.New().String()

	held := flock.New(s.path(id) + ".lock")
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()

	e := vitals()
	e.ID = id

	_, err = s.Save(ctx, e)
	assert.Error(t, err)

	require.NoError(t, held.Unlock())

	_, err = s.Save(context.Background(), e)
	assert.NoError(t, err)
}

func TestAssignUUIDsSkipsContainers(t *testing.T) {
	in := []obs.Payload{
		{FormFieldPath: "F.1/5-0", Controls: []obs.Payload{{FormFieldPath: "F.1/5-0/6-0", Value: value.Text("x")}}},
		{FormFieldPath: "F.1/4-0", ObsList: []obs.Payload{{FormFieldPath: "F.1/4-0", Value: value.Text("y")}}},
	}

	out := AssignUUIDs(in)

	assert.Empty(t, out[0].UUID)
	assert.NotEmpty(t, out[0].Controls[0].UUID)
	assert.Empty(t, out[1].UUID)
	assert.NotEmpty(t, out[1].ObsList[0].UUID)
	assert.Empty(t, in[0].Controls[0].UUID, "input is not modified")
}
