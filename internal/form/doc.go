// Package form provides the static control metadata of a form definition,
// the formFieldPath codec, the YAML/JSON loader and structural lint.
//
// Control metadata is read-only input: nothing in the engine mutates a
// Control after loading.
//
// # Schema Overview
//
//	name: Vitals
//	version: "1"
//	controls:
//	  - id: "1"
//	    type: obsGroupControl
//	    concept: {uuid: c-bp, name: Pulse Data, datatype: N/A}
//	    properties: {abnormal: true, location: {row: 0, column: 0}}
//	    controls:
//	      - id: "2"
//	        type: obsControl
//	        concept: {uuid: c-pulse, name: Pulse, datatype: Numeric, lowNormal: 60, hiNormal: 100}
//	      - id: "3"
//	        type: obsControl
//	        concept: {uuid: c-abn, name: Pulse Abnormal, datatype: Boolean, conceptClass: Abnormal}
//
// # Control Kinds
//
// Each control resolves to exactly one Kind, first match wins:
//  1. properties.multiSelect -> KindObsList
//  2. type section -> KindSection
//  3. type table -> KindTable
//  4. type obsGroupControl with properties.abnormal -> KindAbnormalObsGroup
//  5. type obsGroupControl -> KindObsGroup
//  6. no concept (labels) -> KindStatic
//  7. anything else -> KindLeaf
//
// # Path Syntax
//
// A formFieldPath addresses one control instance within one render:
//
//	Vitals.1/1-0/2-0
//
// "Vitals.1" is the form name and version; each following step is
// "<controlId>-<repeatIndex>", nested for group and section members.
package form
