package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show working tree status",
		Long:  `Show the current branch, the stored version and a summary of uncommitted changes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, done, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer done()

			repo, err := s.Repository()
			if err != nil {
				return err
			}

			pending, err := s.PendingChanges(cmd.Context())
			if err != nil {
				return fmt.Errorf("get pending changes: %w", err)
			}

			branch, err := repo.CurrentBranch()
			if err != nil {
				branch = "(no branch)"
			}

			if wantJSON(cmd) {
				return writeJSON(cmd, map[string]any{
					"branch":  branch,
					"pending": pending,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "On branch %s\n", branch)
			if pending.Files == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to commit, working tree clean")
				return nil
			}
			return renderDiff(cmd, pending)
		},
	}
}
