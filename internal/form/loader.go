package form

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a form definition (YAML or JSON) from path.
func LoadFile(path string) (*Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML or JSON data into a Form.
func Parse(data []byte) (*Form, error) {
	var f Form

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse form definition: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *Form) {
	if f.Version == "" {
		f.Version = "1"
	}
}

// Marshal serializes a Form to YAML.
func Marshal(f *Form) ([]byte, error) {
	return yaml.Marshal(f)
}

// WriteFile writes a Form to the given path as YAML.
func WriteFile(f *Form, path string) error {
	data, err := Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal form: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write form file %s: %w", path, err)
	}

	return nil
}
