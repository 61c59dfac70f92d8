package record

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"obs-mapper/internal/form"
	"obs-mapper/internal/validation"
)

const vitalsForm = `
name: Vitals
version: "1"
controls:
  - id: "1"
    type: obsGroupControl
    concept: {uuid: c-pd, name: Pulse Data, datatype: N/A}
    properties: {abnormal: true, location: {row: 0, column: 0}}
    controls:
      - id: "2"
        type: obsControl
        concept: {uuid: c-pulse, name: Pulse, datatype: Numeric, lowNormal: 60, hiNormal: 100}
        properties: {location: {row: 0, column: 0}}
      - id: "3"
        type: obsControl
        concept: {uuid: c-abn, name: Pulse Abnormal, datatype: Boolean, conceptClass: Abnormal}
        properties: {location: {row: 0, column: 1}}
  - id: "4"
    type: obsControl
    concept:
      uuid: c-cough
      name: Cough
      datatype: Coded
      answers:
        - {uuid: a-dry, name: Dry}
        - {uuid: a-wet, name: Wet}
    properties: {multiSelect: true, mandatory: true, location: {row: 1, column: 0}}
  - id: "5"
    type: section
    label: {value: History}
    properties: {location: {row: 2, column: 0}}
    controls:
      - id: "6"
        type: obsControl
        concept: {uuid: c-notes, name: Notes, datatype: Text}
      - id: "7"
        type: label
        label: {value: Free text}
  - id: "8"
    type: obsGroupControl
    concept: {uuid: c-med, name: Medication, datatype: N/A}
    properties: {addMore: true, location: {row: 3, column: 0}}
    controls:
      - id: "9"
        type: obsControl
        concept: {uuid: c-drug, name: Drug, datatype: Text}
      - id: "10"
        type: obsControl
        concept: {uuid: c-dose, name: Dose, datatype: Numeric, lowAbsolute: 0, hiAbsolute: 1000}
  - id: "11"
    type: obsControl
    concept: {uuid: c-smoker, name: Smoker, datatype: Boolean}
    properties: {location: {row: 0, column: 1}}
  - id: "12"
    type: slider
    concept: {uuid: c-pain, name: Pain, datatype: Numeric}
    properties: {location: {row: 4, column: 0}}
`

const (
	pathGroup   = "Vitals.1/1-0"
	pathPulse   = "Vitals.1/1-0/2-0"
	pathFlag    = "Vitals.1/1-0/3-0"
	pathCough   = "Vitals.1/4-0"
	pathSection = "Vitals.1/5-0"
	pathNotes   = "Vitals.1/5-0/6-0"
	pathMed     = "Vitals.1/8-0"
	pathDrug    = "Vitals.1/8-0/9-0"
	pathSmoker  = "Vitals.1/11-0"
	pathPain    = "Vitals.1/12-0"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func loadForm(t *testing.T) *form.Form {
	t.Helper()

	f, err := form.Parse([]byte(vitalsForm))
	require.NoError(t, err)
	require.NoError(t, form.Check(f))

	return f
}

// countingObserver records every event it receives.
type countingObserver struct {
	built     map[form.Kind]int
	fallbacks int
	edits     map[string]int
	failures  map[validation.Severity]int
}

func newCountingObserver() *countingObserver {
	return &countingObserver{
		built:    map[form.Kind]int{},
		edits:    map[string]int{},
		failures: map[validation.Severity]int{},
	}
}

func (o *countingObserver) RecordBuilt(kind form.Kind, fallback bool) {
	o.built[kind]++
	if fallback {
		o.fallbacks++
	}
}

func (o *countingObserver) Edited(op string) { o.edits[op]++ }

func (o *countingObserver) ValidationFailed(s validation.Severity) { o.failures[s]++ }

func newBuilder(obsrv Observer) *Builder {
	b := NewBuilder()
	b.Now = func() time.Time { return fixedNow }

	if obsrv != nil {
		b.Observer = obsrv
	}

	return b
}

func build(t *testing.T, f *form.Form) *Tree {
	t.Helper()

	tree, err := newBuilder(nil).Build(f, nil)
	require.NoError(t, err)

	return tree
}

func find(t *testing.T, tree *Tree, path string) *Record {
	t.Helper()

	r, err := tree.Find(path)
	require.NoError(t, err)

	return r
}
