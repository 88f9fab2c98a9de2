package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewCommitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Stage everything and commit",
		Long:  `Stage all changes in the working tree and record them as one commit.`,
		Args:  cobra.NoArgs,
		RunE:  makeCommitRunner(a),
	}

	cmd.Flags().StringP("message", "m", "", "Commit message")
	cmd.Flags().String("author", "", "Author name (defaults to git.author_name)")
	cmd.Flags().String("email", "", "Author e-mail (defaults to git.author_email)")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}

func makeCommitRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		message, _ := cmd.Flags().GetString("message")
		author, _ := cmd.Flags().GetString("author")
		email, _ := cmd.Flags().GetString("email")

		s, done, err := a.openSession(cmd)
		if err != nil {
			return err
		}
		defer done()

		commit, err := s.CommitAll(cmd.Context(), message, author, email)
		if err != nil {
			return fmt.Errorf("commit: %w", err)
		}

		if wantJSON(cmd) {
			return writeJSON(cmd, commit)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", commit.SHA, commit.Message)
		return nil
	}
}
