package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Bahmni", cfg.FormNamespace)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Nil(t, cfg.Components)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
form_namespace = "Clinic"
log_level = " DEBUG "
components = ["obsControl", "obsGroupControl", "section"]
metrics_file = "metrics.prom"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Clinic", cfg.FormNamespace)
	assert.Equal(t, ".obs-mapper", cfg.StoreDir, "undefined keys keep defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"obsControl", "obsGroupControl", "section"}, cfg.Components)
	assert.Equal(t, "metrics.prom", cfg.MetricsFile)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad syntax", `form_namespace = `},
		{"unknown key", `colour = "blue"`},
		{"empty namespace", `form_namespace = ""`},
		{"bad level", `log_level = "loud"`},
		{"empty component", `components = ["obsControl", ""]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
