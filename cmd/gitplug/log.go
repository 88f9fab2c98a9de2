package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewLogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show commit history",
		Long:  `Show the latest commits of the repository, newest first.`,
		Args:  cobra.NoArgs,
		RunE:  makeLogRunner(a),
	}

	cmd.Flags().IntP("number", "n", 10, "Limit number of commits")
	cmd.Flags().Bool("oneline", false, "Show each commit on one line")
	return cmd
}

func makeLogRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		limit, _ := cmd.Flags().GetInt("number")
		oneline, _ := cmd.Flags().GetBool("oneline")

		s, done, err := a.openSession(cmd)
		if err != nil {
			return err
		}
		defer done()

		commits, err := s.ListCommits(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("get log: %w", err)
		}

		if oneline && !wantJSON(cmd) {
			for _, c := range commits {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", c.SHA, c.Message)
			}
			return nil
		}
		return renderCommits(cmd, commits)
	}
}

func NewFindCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find <keyword>",
		Short: "Find commits by message",
		Long:  `Find commits whose message contains the keyword, ignoring case.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("number")

			s, done, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer done()

			commits, err := s.FindCommits(cmd.Context(), args[0], limit)
			if err != nil {
				return fmt.Errorf("find commits: %w", err)
			}
			return renderCommits(cmd, commits)
		},
	}

	cmd.Flags().IntP("number", "n", 10, "Limit number of results")
	return cmd
}
