package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"obs-mapper/internal/concept"
)

func TestValueBlank(t *testing.T) {
	assert.True(t, None.IsBlank())
	assert.True(t, Text("   ").IsBlank())
	assert.False(t, Text(" x ").IsBlank())
	assert.False(t, Number(0).IsBlank())
	assert.False(t, Bool(false).IsBlank())

	assert.Equal(t, None, Text("\t").Normalize())
	assert.Equal(t, Number(3), Number(3).Normalize())
}

func TestValueJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		raw  string
	}{
		{"none", None, `null`},
		{"bool", Bool(true), `true`},
		{"number", Number(150.5), `150.5`},
		{"text", Text("2024-01-02"), `"2024-01-02"`},
		{"coded", Coded(concept.Answer{UUID: "a-1", Name: "Dry"}), `{"uuid":"a-1","name":"Dry"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.JSONEq(t, tt.raw, string(data))

			var got Value
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &got))
			assert.Equal(t, tt.v, got)
		})
	}
}

func TestValueYAML(t *testing.T) {
	var doc struct {
		A Value `yaml:"a"`
		B Value `yaml:"b"`
		C Value `yaml:"c"`
		D Value `yaml:"d"`
		E Value `yaml:"e"`
	}

	src := `
a: 12
b: yes please
c: false
d: {uuid: a-1, name: Dry}
e: ~
`
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))
	assert.Equal(t, Number(12), doc.A)
	assert.Equal(t, Text("yes please"), doc.B)
	assert.Equal(t, Bool(false), doc.C)
	assert.Equal(t, Coded(concept.Answer{UUID: "a-1", Name: "Dry"}), doc.D)
	assert.Equal(t, None, doc.E)
}

func TestParse(t *testing.T) {
	numeric := &concept.Concept{Name: "Pulse", Datatype: concept.Numeric}
	boolean := &concept.Concept{Name: "Smoker", Datatype: concept.Boolean}
	coded := &concept.Concept{
		Name:     "Cough",
		Datatype: concept.Coded,
		Answers:  []concept.Answer{{UUID: "a-1", Name: "Dry"}},
	}

	v, err := Parse(numeric, "72")
	require.NoError(t, err)
	assert.Equal(t, Number(72), v)

	for _, raw := range []string{"fast", "NaN", "Inf", "-Inf", "1e400"} {
		v, err = Parse(numeric, raw)
		require.Error(t, err, raw)
		assert.Equal(t, None, v, raw)
	}

	v, err = Parse(boolean, "true")
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)

	v, err = Parse(coded, "a-1")
	require.NoError(t, err)
	assert.Equal(t, "Dry", v.String())

	_, err = Parse(coded, "a-9")
	require.Error(t, err)

	v, err = Parse(numeric, "  ")
	require.NoError(t, err)
	assert.Equal(t, None, v)
}
