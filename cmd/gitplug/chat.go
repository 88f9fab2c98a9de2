package main

import (
	"fmt"
	"strings"

	"github.com/4thel00z/gitplug/internal"
	"github.com/spf13/cobra"
)

func NewChatCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <prompt>",
		Short: "Ask an LLM agent to work on the repository",
		Long:  `Run one agent turn: the model can call every gitplug tool against the --repo repository until it answers.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  makeChatRunner(a),
	}

	cmd.Flags().StringP("provider", "p", "", "Provider name (defaults to default_provider)")
	cmd.Flags().Bool("no-stream", false, "Print the answer at the end instead of streaming it")
	return cmd
}

func makeChatRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		provider, _ := cmd.Flags().GetString("provider")
		noStream, _ := cmd.Flags().GetBool("no-stream")
		scopeHint, _ := cmd.Flags().GetString("scope")

		s, done, err := a.newSession(cmd)
		if err != nil {
			return err
		}
		defer done()
		trySetRepository(cmd, s)

		input := internal.ChatInput{
			Prompt:   strings.Join(args, " "),
			Provider: provider,
			Scope:    scopeHint,
		}
		if !noStream {
			input.OnText = func(text string) {
				fmt.Fprint(cmd.OutOrStdout(), text)
			}
		}

		agent := internal.NewAgentService(a.providers(), s.Logger())
		answer, err := agent.Chat(cmd.Context(), s, input)
		if err != nil {
			return fmt.Errorf("chat: %w", err)
		}

		if noStream {
			fmt.Fprintln(cmd.OutOrStdout(), answer)
		} else {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		return nil
	}
}
