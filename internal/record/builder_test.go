package record

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"obs-mapper/internal/concept"
	"obs-mapper/internal/form"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/value"
)

func TestBuildEmpty(t *testing.T) {
	f := loadForm(t)
	o := newCountingObserver()

	tree, err := newBuilder(o).Build(f, nil)
	require.NoError(t, err)

	records := tree.Records()
	require.Len(t, records, 6)

	var paths []string
	for _, r := range records {
		paths = append(paths, r.Path().String())
	}

	assert.Equal(t, []string{pathGroup, pathCough, pathSection, pathMed, pathSmoker, pathPain}, paths)

	group := find(t, tree, pathGroup)
	require.IsType(t, &obs.Obs{}, group.Bound())
	assert.True(t, group.Bound().IsVoided())
	assert.Len(t, group.Bound().(*obs.Obs).Members(), 2)
	assert.Len(t, group.Records(), 2)

	require.IsType(t, &obs.List{}, find(t, tree, pathCough).Bound())
	assert.Nil(t, find(t, tree, pathSection).Bound())
	assert.Nil(t, find(t, tree, "Vitals.1/5-0/7-0").Bound(), "labels hold no observation")

	pain := find(t, tree, pathPain)
	assert.True(t, pain.Fallback())
	assert.NotNil(t, pain.Bound(), "fallback records still carry data")
	assert.False(t, find(t, tree, pathSmoker).Fallback())

	assert.Empty(t, tree.Observations())
	assert.Len(t, tree.Object().Controls, 6)

	assert.Equal(t, 1, o.built[form.KindAbnormalObsGroup])
	assert.Equal(t, 1, o.built[form.KindObsList])
	assert.Equal(t, 1, o.built[form.KindStatic])
	assert.Equal(t, 1, o.fallbacks)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, form.ErrMalformed))

	_, err = Build(&form.Form{}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, form.ErrMalformed))
}

func TestBuildFromNestedPayload(t *testing.T) {
	f := loadForm(t)

	tree, err := newBuilder(nil).Build(f, []obs.Payload{
		{UUID: "u-g", Concept: concept.Ref{UUID: "c-pd"}, FormFieldPath: pathGroup, GroupMembers: []obs.Payload{
			{UUID: "u-p", Concept: concept.Ref{UUID: "c-pulse"}, Value: value.Number(120), FormFieldPath: pathPulse},
			{UUID: "u-f", Concept: concept.Ref{UUID: "c-abn"}, Value: value.Bool(true), FormFieldPath: pathFlag},
		}},
		{UUID: "u-c1", Concept: concept.Ref{UUID: "c-cough"}, FormFieldPath: pathCough,
			Value: value.Coded(concept.Answer{UUID: "a-dry", Name: "Dry"})},
		{UUID: "u-c2", Concept: concept.Ref{UUID: "c-cough"}, FormFieldPath: pathCough,
			Value: value.Coded(concept.Answer{UUID: "a-wet", Name: "Wet"})},
		{UUID: "u-n", Concept: concept.Ref{Name: "notes"}, FormFieldPath: pathNotes, Value: value.Text("stable")},
	})
	require.NoError(t, err)

	group := find(t, tree, pathGroup)
	assert.Equal(t, "u-g", group.Bound().(*obs.Obs).UUID())
	assert.False(t, group.Bound().IsVoided())
	assert.Equal(t, []value.Value{value.Number(120)}, find(t, tree, pathPulse).Values())
	assert.Equal(t, []value.Value{value.Bool(true)}, find(t, tree, pathFlag).Values())

	cough := find(t, tree, pathCough)
	assert.Equal(t, 2, cough.Bound().(*obs.List).Len())
	assert.Equal(t, []string{"a-dry", "a-wet"}, tree.Display(cough))

	assert.Equal(t, []string{"stable"}, tree.Display(find(t, tree, pathNotes)), "concepts match by name")
}

func TestBuildFromFlatPayload(t *testing.T) {
	f := loadForm(t)

	tree, err := newBuilder(nil).Build(f, []obs.Payload{
		{UUID: "u-d", FormFieldPath: pathDrug, Value: value.Text("Aspirin")},
		{UUID: "u-d2", FormFieldPath: "Vitals.1/8-2/9-0", Value: value.Text("Ibuprofen")},
	})
	require.NoError(t, err)

	meds := tree.Records()[3:5]
	assert.Equal(t, pathMed, meds[0].Path().String())
	assert.Equal(t, "Vitals.1/8-2", meds[1].Path().String())
	assert.True(t, meds[0].ShowAddMore())
	assert.True(t, meds[1].ShowRemove())

	group := meds[0].Bound().(*obs.Obs)
	assert.Empty(t, group.UUID(), "group starts fresh around restored members")
	assert.False(t, group.IsVoided())

	require.Len(t, tree.Observations(), 2)
	assert.Equal(t, "u-d", tree.Observations()[0].GroupMembers[0].UUID)
}

func TestBuildConceptMismatchStartsEmpty(t *testing.T) {
	f := loadForm(t)

	tree, err := newBuilder(nil).Build(f, []obs.Payload{
		{UUID: "u-s", Concept: concept.Ref{UUID: "c-other"}, FormFieldPath: pathSmoker, Value: value.Bool(true)},
	})
	require.NoError(t, err)

	smoker := find(t, tree, pathSmoker)
	assert.True(t, smoker.Bound().IsVoided())
	assert.Empty(t, smoker.Bound().(*obs.Obs).UUID())
}

func TestBuildBindsEarlierFormVersion(t *testing.T) {
	f := loadForm(t)

	tree, err := newBuilder(nil).Build(f, []obs.Payload{
		{UUID: "u-s", FormFieldPath: "Vitals.0/11-0", Value: value.Bool(false)},
		{UUID: "u-x", FormFieldPath: "Other.1/11-0", Value: value.Bool(true)},
		{UUID: "u-y", FormFieldPath: "not a path", Value: value.Bool(true)},
	})
	require.NoError(t, err)

	smoker := find(t, tree, pathSmoker)
	assert.Equal(t, []value.Value{value.Bool(false)}, smoker.Values())
	assert.Equal(t, pathSmoker, smoker.Bound().Path().String())

	out := tree.Observations()
	require.Len(t, out, 1)
	assert.Equal(t, pathSmoker, out[0].FormFieldPath)
}

func TestRoundTrip(t *testing.T) {
	f := loadForm(t)
	tree := build(t, f)

	var err error

	tree, err = tree.SetValue(pathPulse, value.Number(150))
	require.NoError(t, err)
	tree, err = tree.Select(pathCough, "a-wet", "Dry")
	require.NoError(t, err)
	tree, err = tree.SetValue(pathNotes, value.Text("follow up"))
	require.NoError(t, err)
	tree, err = tree.SetComment(pathNotes, "from triage")
	require.NoError(t, err)
	tree, _, err = tree.AddMore(pathMed)
	require.NoError(t, err)
	tree, err = tree.SetValue("Vitals.1/8-1/10-0", value.Number(500))
	require.NoError(t, err)
	tree, err = tree.Select(pathSmoker, "No")
	require.NoError(t, err)

	data, err := json.Marshal(tree.Observations())
	require.NoError(t, err)

	var stored []obs.Payload
	require.NoError(t, json.Unmarshal(data, &stored))

	again, err := newBuilder(nil).Build(f, stored)
	require.NoError(t, err)

	assert.Equal(t, tree.Observations(), again.Observations())

	twice, err := newBuilder(nil).Build(f, []obs.Payload{again.Object()})
	require.NoError(t, err)
	assert.Equal(t, again.Object(), twice.Object())

	assert.Equal(t, []value.Value{value.Bool(true)}, find(t, again, pathFlag).Values())
	assert.Equal(t, []string{"No"}, again.Display(find(t, again, pathSmoker)))
}

func TestRoundTripOfInitialTree(t *testing.T) {
	f := loadForm(t)
	tree := build(t, f)

	again, err := newBuilder(nil).Build(f, []obs.Payload{tree.Object()})
	require.NoError(t, err)

	assert.Equal(t, tree.Object(), again.Object())
}

func visibleItems(tree *Tree) int {
	var n int
	for _, row := range tree.Rows(tree.Root()) {
		n += len(row.Items)
	}

	return n
}

func reload(t *testing.T, tree *Tree) *Tree {
	t.Helper()

	data, err := json.Marshal(tree.Observations())
	require.NoError(t, err)

	var stored []obs.Payload
	require.NoError(t, json.Unmarshal(data, &stored))

	again, err := newBuilder(nil).Build(tree.Form(), stored)
	require.NoError(t, err)

	return again
}

func TestRoundTripKeepsRemovedRepeatsHidden(t *testing.T) {
	medication := []obs.Payload{
		{UUID: "g0", FormFieldPath: pathMed, GroupMembers: []obs.Payload{
			{UUID: "d0", FormFieldPath: pathDrug, Value: value.Text("Paracetamol")},
		}},
		{UUID: "g1", FormFieldPath: "Vitals.1/8-1", GroupMembers: []obs.Payload{
			{UUID: "d1", FormFieldPath: "Vitals.1/8-1/9-0", Value: value.Text("Ibuprofen")},
		}},
	}

	tree, err := newBuilder(nil).Build(loadForm(t), medication)
	require.NoError(t, err)

	tree, err = tree.Remove("Vitals.1/8-1")
	require.NoError(t, err)

	again := reload(t, tree)

	assert.Equal(t, visibleItems(tree), visibleItems(again))

	_, err = again.Find("Vitals.1/8-1")
	require.ErrorIs(t, err, ErrNotFound)

	kept := find(t, again, pathMed)
	assert.True(t, kept.ShowAddMore())
	assert.False(t, kept.ShowRemove())

	assert.Equal(t, tree.Observations(), again.Observations(), "voided history is still persisted")

	_, next, err := again.AddMore(pathMed)
	require.NoError(t, err)
	assert.Equal(t, "Vitals.1/8-2", next.String(), "the removed index is not reused")
}

func TestBuildHidesVoidedFirstRepeat(t *testing.T) {
	tree, err := newBuilder(nil).Build(loadForm(t), []obs.Payload{
		{UUID: "g0", Voided: true, FormFieldPath: pathMed},
		{UUID: "g1", FormFieldPath: "Vitals.1/8-1", GroupMembers: []obs.Payload{
			{UUID: "d1", FormFieldPath: "Vitals.1/8-1/9-0", Value: value.Text("Ibuprofen")},
		}},
	})
	require.NoError(t, err)

	_, err = tree.Find(pathMed)
	require.ErrorIs(t, err, ErrNotFound)

	live := find(t, tree, "Vitals.1/8-1")
	assert.True(t, live.ShowAddMore())
	assert.False(t, live.ShowRemove())
}

func TestBuildShowsFirstInstanceWhenAllRepeatsVoided(t *testing.T) {
	tree, err := newBuilder(nil).Build(loadForm(t), []obs.Payload{
		{UUID: "g0", Voided: true, FormFieldPath: pathMed},
		{UUID: "g1", Voided: true, FormFieldPath: "Vitals.1/8-1"},
	})
	require.NoError(t, err)

	first := find(t, tree, pathMed)
	assert.True(t, first.Active())
	assert.False(t, first.ShowRemove())

	_, err = tree.Find("Vitals.1/8-1")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Len(t, tree.Observations(), 2)
}
