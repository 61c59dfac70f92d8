package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"obs-mapper/internal/record"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		id   string
		dump bool
	)

	cmd := &cobra.Command{
		Use:   "build <form-file>",
		Short: "Print the observations a form produces for an encounter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, err := a.loadTree(cmd, args[0], id)
			if err != nil {
				return err
			}

			if dump {
				spew.Fdump(cmd.OutOrStdout(), tree.Object())
				return nil
			}

			data, err := json.MarshalIndent(tree.Observations(), "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(data))

			return nil
		},
	}

	cmd.Flags().StringVarP(&id, "encounter", "e", "", "encounter id to bind")
	cmd.Flags().BoolVar(&dump, "dump", false, "dump the structured payload instead of the flat observations")

	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "show <form-file>",
		Short: "Print the form laid out with its current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, _, err := a.loadTree(cmd, args[0], id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s v%s\n", tree.Form().Name, tree.Form().Version)
			printRows(cmd, tree, tree.Root(), 1)

			return nil
		},
	}

	cmd.Flags().StringVarP(&id, "encounter", "e", "", "encounter id to bind")

	return cmd
}

func printRows(cmd *cobra.Command, tree *record.Tree, r *record.Record, depth int) {
	indent := strings.Repeat("  ", depth)

	for _, row := range tree.Rows(r) {
		for _, rec := range row.Items {
			line := fmt.Sprintf("%s%s [%s]", indent, rec.Control().LabelText(), rec.Path())

			if values := tree.Display(rec); len(values) > 0 {
				line += " = " + strings.Join(values, ", ")
			}

			if rec.ShowAddMore() {
				line += " (+)"
			}

			if rec.ShowRemove() {
				line += " (-)"
			}

			for _, e := range rec.Errors() {
				line += fmt.Sprintf(" !%s:%s", e.Type, e.Message)
			}

			fmt.Fprintln(cmd.OutOrStdout(), line)
			printRows(cmd, tree, rec, depth+1)
		}
	}
}
