package main

import (
	"fmt"
	"os"

	"github.com/4thel00z/gitplug/internal"
	"github.com/spf13/cobra"
)

func NewInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and the version file",
		Long:  `Write a default config to .gitplug (or ~/.gitplug with --global) and create the repository's version file if it is missing.`,
		RunE:  makeInitRunner(a),
	}

	cmd.Flags().Bool("global", false, "Initialize global scope (~/.gitplug)")
	return cmd
}

func makeInitRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		isGlobal, _ := cmd.Flags().GetBool("global")

		scope := a.resolver.Local()
		if isGlobal {
			scope = a.resolver.Global()
		}

		s, done, err := a.openSession(cmd)
		if err != nil {
			return err
		}
		defer done()

		if _, err := os.Stat(scope.ConfigPath()); err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Config already present at %s\n", scope.ConfigPath())
		} else {
			if err := internal.SaveConfig(scope, internal.DefaultConfig()); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized gitplug config at %s\n", scope.ConfigPath())
		}

		if err := s.EnsureVersionFile(cmd.Context()); err != nil {
			return fmt.Errorf("create version file: %w", err)
		}
		current, err := s.CurrentVersion(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Version file %s at %s\n", s.Config().Version.File, current)
		return nil
	}
}
