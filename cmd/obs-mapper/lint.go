package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"obs-mapper/internal/form"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint <form-file>",
		Short: "Check a form definition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := form.LoadFile(args[0])
			if err != nil {
				return err
			}

			diags := form.Lint(f)
			for _, d := range diags.All() {
				fmt.Fprintln(cmd.OutOrStdout(), d.String())
			}

			a.logger.Debug().
				Str("form", f.Name).
				Int("errors", len(diags.Errors)).
				Int("warnings", len(diags.Warnings)).
				Msg("lint finished")

			return diags.Error()
		},
	}
}
