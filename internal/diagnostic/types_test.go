package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics(t *testing.T) {
	var d Diagnostics
	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())

	d.AddInfo("ids_assigned", "2 ids assigned", "")
	d.AddWarning("unknown_control_type", `unknown type "obsControll"`, "4", "obsControl")
	d.AddError("duplicate_id", `duplicate control id "3"`, "3")

	assert.False(t, d.IsValid())
	assert.True(t, d.HasErrors())
	require.Len(t, d.All(), 3)
	assert.Equal(t, DiagnosticError, d.All()[0].Severity)

	assert.Equal(t,
		`control 4: [unknown_control_type] unknown type "obsControll" (did you mean obsControl?)`,
		d.Warnings[0].String())
	assert.EqualError(t, d.Error(), `control 3: [duplicate_id] duplicate control id "3"`)

	var other Diagnostics
	other.AddError("missing_concept", "obsControl without concept", "7")
	d.Merge(other)
	assert.Len(t, d.Errors, 2)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "info", DiagnosticInfo.String())
	assert.Equal(t, "warning", DiagnosticWarning.String())
	assert.Equal(t, "error", DiagnosticError.String())
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
