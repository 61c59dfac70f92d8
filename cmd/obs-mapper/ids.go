package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"obs-mapper/internal/form"
	"obs-mapper/internal/idgen"
)

func newIDsCmd(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "ids <form-file>",
		Short: "Assign numeric ids to controls that have none",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := form.LoadFile(args[0])
			if err != nil {
				return err
			}

			n := idgen.Assign(f)
			a.logger.Info().Str("form", f.Name).Int("assigned", n).Msg("assigned control ids")

			if write {
				return form.WriteFile(f, args[0])
			}

			data, err := form.Marshal(f)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))

			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the form file in place")

	return cmd
}
