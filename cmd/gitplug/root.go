package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "gitplug",
		Short:         "Git and release-version tools for LLM agents",
		Long:          `Query history, commit, sync and version a local Git repository, directly or through an LLM agent.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	setHelpWithExternals(rootCmd)

	if a != nil {
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("repo", ".", "Path to the Git repository")
	cmd.PersistentFlags().String("scope", "", "Config scope (global|project)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
}

func addSubcommands(root *cobra.Command, a *app) {
	root.AddCommand(
		NewInitCmd(a),
		NewLogCmd(a),
		NewFindCmd(a),
		NewCompareCmd(a),
		NewStatusCmd(a),
		NewCommitCmd(a),
		NewPullCmd(a),
		NewPushCmd(a),
		NewVersionCmd(a),
		NewEchoCmd(),
		NewToolsCmd(),
		NewCallCmd(a),
		NewChatCmd(a),
		NewProviderCmd(a),
		NewWatchCmd(a),
	)
}

func setHelpWithExternals(cmd *cobra.Command) {
	defaultHelp := cmd.HelpFunc()

	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		defaultHelp(c, args)
		printExternalCommands(c)
	})
}

func printExternalCommands(cmd *cobra.Command) {
	externals := listExternalCommands()
	if len(externals) == 0 {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nExternal commands (gitplug-*):")
	for _, name := range externals {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
}
