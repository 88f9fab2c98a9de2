package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/4thel00z/gitplug/internal"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func NewPullCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pull",
		Short: "Fast-forward the current branch from the remote",
		Long:  `Pull the current branch from the configured remote (git.remote). Uses GIT_USER and GIT_PAT for HTTP(S) remotes.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, done, err := a.openSession(cmd)
			if err != nil {
				return err
			}
			defer done()

			var status internal.MergeStatus
			err = withSpinner(cmd.ErrOrStderr(), "Pulling from "+s.Remote(), func() error {
				status, err = s.Pull(cmd.Context())
				return err
			})
			if err != nil {
				return fmt.Errorf("pull: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pull result: %s\n", status)
			return nil
		},
	}
}

func NewPushCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push [branch]",
		Short: "Push a branch to the remote",
		Long:  `Push the given branch, or the current one, to the configured remote. Asks for confirmation on a terminal unless --yes is given.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  makePushRunner(a),
	}

	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func makePushRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		s, done, err := a.openSession(cmd)
		if err != nil {
			return err
		}
		defer done()

		branch := ""
		if len(args) == 1 {
			branch = args[0]
		}

		if !yes && isTerminal(os.Stdin) && isTerminal(cmd.OutOrStdout()) {
			confirmed, err := confirmPush(s, branch)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Push cancelled.")
				return nil
			}
		}

		var pushed string
		err = withSpinner(cmd.ErrOrStderr(), "Pushing to "+s.Remote(), func() error {
			pushed, err = s.Push(cmd.Context(), branch)
			return err
		})
		if err != nil {
			return fmt.Errorf("push: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Pushed %s to %s\n", pushed, s.Remote())
		return nil
	}
}

func confirmPush(s *internal.Session, branch string) (bool, error) {
	if branch == "" {
		repo, err := s.Repository()
		if err != nil {
			return false, err
		}
		if branch, err = repo.CurrentBranch(); err != nil {
			return false, err
		}
	}

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Push %s to %s?", branch, s.Remote())).
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("get confirmation: %w", err)
	}
	return confirmed, nil
}
