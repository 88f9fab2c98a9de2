package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Read or change the repository's release version",
		Long:  `Manage the MAJOR.MINOR.PATCH version stored in the repository's version file (version.file, default version.json).`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, done, err := a.openSession(cmd)
				if err != nil {
					return err
				}
				defer done()

				current, err := s.CurrentVersion(cmd.Context())
				if err != nil {
					return fmt.Errorf("get version: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), current)
				return nil
			},
		},
		&cobra.Command{
			Use:   "bump",
			Short: "Increment the patch version",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				s, done, err := a.openSession(cmd)
				if err != nil {
					return err
				}
				defer done()

				next, err := s.BumpPatchVersion(cmd.Context())
				if err != nil {
					return fmt.Errorf("bump version: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), next)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <semver>",
			Short: "Force-set the version",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				s, done, err := a.openSession(cmd)
				if err != nil {
					return err
				}
				defer done()

				if err := s.SetVersion(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("set version: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Version set to %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}
