package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"obs-mapper/internal/record"
	"obs-mapper/utils"
)

type assignment struct {
	path string
	keys []string
}

// parseAssignments groups path=value arguments by path, keeping first-seen order.
func parseAssignments(args []string) ([]assignment, error) {
	var out []assignment

	for _, arg := range args {
		path, key := utils.Unpack2(strings.SplitN(arg, "=", 2))
		if path == "" || !strings.Contains(arg, "=") {
			return nil, fmt.Errorf("expected path=value, got %q", arg)
		}

		i := slices.IndexFunc(out, func(as assignment) bool { return as.path == path })
		if i < 0 {
			out = append(out, assignment{path: path})
			i = len(out) - 1
		}

		if key != "" {
			out[i].keys = append(out[i].keys, key)
		}
	}

	return out, nil
}

func newEditCmd(a *app) *cobra.Command {
	var (
		id       string
		adds     []string
		removes  []string
		comments []string
		force    bool
	)

	cmd := &cobra.Command{
		Use:   "edit <form-file> [path=value...]",
		Short: "Apply values to a form and save the encounter",
		Long: "Apply values to a form and save the encounter. Repeat path=value to select several " +
			"answers of a multi-select control; path= clears a control.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignments, err := parseAssignments(args[1:])
			if err != nil {
				return err
			}

			commentSet, err := parseAssignments(comments)
			if err != nil {
				return err
			}

			tree, e, err := a.loadTree(cmd, args[0], id)
			if err != nil {
				return err
			}

			for _, path := range adds {
				next, added, err := tree.AddMore(path)
				if err != nil {
					return err
				}

				tree = next
				fmt.Fprintf(cmd.OutOrStdout(), "added %s\n", added)
			}

			for _, path := range removes {
				if tree, err = tree.Remove(path); err != nil {
					return err
				}
			}

			for _, as := range assignments {
				if tree, err = tree.Select(as.path, as.keys...); err != nil {
					return err
				}
			}

			for _, as := range commentSet {
				if tree, err = tree.SetComment(as.path, strings.Join(as.keys, " ")); err != nil {
					return err
				}
			}

			tree, blocking := tree.Validate()
			reportErrors(cmd, tree)

			if blocking && !force {
				return errInvalid
			}

			s, err := a.store()
			if err != nil {
				return err
			}

			e.Observations = tree.Observations()

			saved, err := s.Save(cmd.Context(), e)
			if err != nil {
				return err
			}

			a.logger.Info().
				Str("encounter", saved.ID).
				Str("form", saved.FormName).
				Int("observations", len(saved.Observations)).
				Msg("saved encounter")

			fmt.Fprintln(cmd.OutOrStdout(), saved.ID)

			return nil
		},
	}

	cmd.Flags().StringVarP(&id, "encounter", "e", "", "encounter id to update (default: a new encounter)")
	cmd.Flags().StringArrayVar(&adds, "add-more", nil, "add an instance after the repeatable control at path")
	cmd.Flags().StringArrayVar(&removes, "remove", nil, "remove the repeated instance at path")
	cmd.Flags().StringArrayVar(&comments, "comment", nil, "set a comment as path=text")
	cmd.Flags().BoolVar(&force, "force", false, "save even when blocking validation errors remain")

	return cmd
}

func reportErrors(cmd *cobra.Command, tree *record.Tree) {
	tree.Walk(func(r *record.Record) bool {
		for _, e := range r.Errors() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s %s\n", r.Path(), e.Type, e.Message)
		}

		return true
	})
}

func newEncountersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encounters",
		Short: "List saved encounter ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}

			ids, err := s.List()
			if err != nil {
				return err
			}

			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}

			return nil
		},
	}
}
