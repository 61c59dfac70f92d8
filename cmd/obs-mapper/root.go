package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"obs-mapper/internal/config"
	"obs-mapper/internal/encounter"
	"obs-mapper/internal/form"
	"obs-mapper/internal/observability"
	"obs-mapper/internal/obs"
	"obs-mapper/internal/record"
)

const appName = "obs-mapper"

// app holds the state shared by the subcommands once the configuration is loaded.
type app struct {
	configPath string
	logLevel   string
	storeDir   string

	cfg     config.Config
	logger  zerolog.Logger
	builder *record.Builder
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          appName,
		Short:        "Bind clinical forms to observations",
		Long:         "obs-mapper binds form definitions to the observations recorded against them, edits them and saves encounters.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.MetricsFile == "" {
				return nil
			}

			return observability.WriteTextfile(a.cfg.MetricsFile)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file (default ./"+config.DefaultFile+" when present)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")
	rootCmd.PersistentFlags().StringVarP(&a.storeDir, "store", "s", "", "override the configured encounter directory")

	rootCmd.AddCommand(
		newLintCmd(a),
		newIDsCmd(a),
		newBuildCmd(a),
		newShowCmd(a),
		newEditCmd(a),
		newEncountersCmd(a),
	)

	return rootCmd
}

func (a *app) init() error {
	cfg := config.Default()

	path := a.configPath
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}

	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}

		cfg = loaded
	}

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}

	if a.storeDir != "" {
		cfg.StoreDir = a.storeDir
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := observability.InitLogger(appName, cfg.LogLevel)
	if err != nil {
		return err
	}

	b := record.NewBuilder()
	b.Namespace = cfg.FormNamespace
	b.Components = cfg.Components
	b.Logger = logger
	b.Observer = observability.Recorder{}

	a.cfg, a.logger, a.builder = cfg, logger, b

	logger.Debug().Str("config", path).Str("store", cfg.StoreDir).Msg("configuration loaded")

	return nil
}

func (a *app) store() (*encounter.Store, error) {
	return encounter.Open(a.cfg.StoreDir)
}

// loadTree loads the form at formPath and binds it to the observations of
// encounter id, or to none when id is empty.
func (a *app) loadTree(cmd *cobra.Command, formPath, id string) (*record.Tree, encounter.Encounter, error) {
	f, err := form.LoadFile(formPath)
	if err != nil {
		return nil, encounter.Encounter{}, err
	}

	if err := form.Check(f); err != nil {
		return nil, encounter.Encounter{}, err
	}

	e := encounter.Encounter{FormName: f.Name, FormVersion: f.Version}

	var observations []obs.Payload

	if id != "" {
		s, err := a.store()
		if err != nil {
			return nil, e, err
		}

		e, err = s.Load(cmd.Context(), id)
		if err != nil {
			return nil, e, err
		}

		if e.FormName != f.Name {
			return nil, e, fmt.Errorf("encounter %s was recorded for form %q, not %q", id, e.FormName, f.Name)
		}

		observations = e.Observations
		e.FormVersion = f.Version
	}

	tree, err := a.builder.Build(f, observations)
	if err != nil {
		return nil, e, err
	}

	return tree, e, nil
}

var errInvalid = errors.New("form has blocking validation errors")
