package main

import (
	"fmt"
	"strings"

	"github.com/4thel00z/gitplug/internal"
	"github.com/spf13/cobra"
)

func NewEchoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "echo <text>",
		Short: "Echo text back",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), internal.Echo(strings.Join(args, " ")))
			return nil
		},
	}
}
