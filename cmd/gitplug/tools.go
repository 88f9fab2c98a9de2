package main

import (
	"errors"
	"fmt"

	"github.com/4thel00z/gitplug/internal"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func NewToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the tools exposed to LLM agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tools := internal.NewTools(internal.NewSession())

			if wantJSON(cmd) {
				infos := make([]map[string]any, 0, len(tools))
				for _, t := range tools {
					info := t.Info()
					infos = append(infos, map[string]any{
						"name":        info.Name,
						"description": info.Description,
						"parameters":  info.Parameters,
						"required":    info.Required,
					})
				}
				return writeJSON(cmd, infos)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Tool", "Description"})
			for _, tool := range tools {
				t.AppendRow(table.Row{tool.Info().Name, tool.Info().Description})
			}
			t.SetStyle(table.StyleRounded)
			t.Render()
			return nil
		},
	}
}

func NewCallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "call <tool> [json-args]",
		Short: "Run one tool directly",
		Long:  `Run a tool by name with JSON arguments, the way an agent would. The --repo repository is set first when it is a valid repository.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, done, err := a.newSession(cmd)
			if err != nil {
				return err
			}
			defer done()
			trySetRepository(cmd, s)

			input := ""
			if len(args) == 2 {
				input = args[1]
			}

			resp, err := internal.CallTool(cmd.Context(), internal.NewTools(s), args[0], input)
			if err != nil {
				return err
			}
			if resp.IsError {
				return errors.New(resp.Content)
			}

			fmt.Fprintln(cmd.OutOrStdout(), resp.Content)
			return nil
		},
	}
}

// trySetRepository points s at --repo when that is a repository; agents can
// still call set_repository themselves otherwise.
func trySetRepository(cmd *cobra.Command, s *internal.Session) {
	path, err := repoPath(cmd)
	if err != nil {
		return
	}
	_ = s.SetRepository(cmd.Context(), path)
}
