package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <base> <head>",
		Short: "Show diff stats between two commits",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer done()

			summary, err := s.CompareCommits(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("compare: %w", err)
			}
			return renderDiff(cmd, summary)
		},
	}
}
