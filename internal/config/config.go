// Package config loads the obs-mapper configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// DefaultFile is the configuration file looked up when none is given.
const DefaultFile = "obs-mapper.toml"

// Config is the resolved configuration.
type Config struct {
	FormNamespace string `validate:"required"`
	StoreDir      string `validate:"required"`
	LogLevel      string `validate:"oneof=trace debug info warn error disabled"`
	// Components lists the control types with a UI component. Nil means all known types.
	Components  []string `validate:"omitempty,dive,required"`
	MetricsFile string
}

type fileConfig struct {
	FormNamespace string   `toml:"form_namespace"`
	StoreDir      string   `toml:"store_dir"`
	LogLevel      string   `toml:"log_level"`
	Components    []string `toml:"components"`
	MetricsFile   string   `toml:"metrics_file"`
}

var validate = validator.New()

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FormNamespace: "Bahmni",
		StoreDir:      ".obs-mapper",
		LogLevel:      "info",
	}
}

// Load reads path over the defaults. Keys absent from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig

	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("form_namespace") {
		cfg.FormNamespace = strings.TrimSpace(raw.FormNamespace)
	}

	if meta.IsDefined("store_dir") {
		cfg.StoreDir = strings.TrimSpace(raw.StoreDir)
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
	}

	if meta.IsDefined("components") {
		cfg.Components = raw.Components
	}

	if meta.IsDefined("metrics_file") {
		cfg.MetricsFile = strings.TrimSpace(raw.MetricsFile)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the configuration values.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}
