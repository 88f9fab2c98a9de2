package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/4thel00z/gitplug/internal"
	"github.com/fsnotify/fsnotify"
	"github.com/go-git/go-git/v5"
	"github.com/spf13/cobra"
)

func NewWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the working tree and auto-commit",
		Long:  `Watch the repository's working tree for file changes and commit them after a quiet period. Paths ignored by .gitignore are skipped.`,
		Args:  cobra.NoArgs,
		RunE:  makeWatchRunner(a),
	}

	cmd.Flags().Duration("debounce", 500*time.Millisecond, "Debounce window for batching changes")
	cmd.Flags().StringP("message", "m", "auto: watch commit", "Commit message")
	return cmd
}

func makeWatchRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		debounce, _ := cmd.Flags().GetDuration("debounce")
		message, _ := cmd.Flags().GetString("message")

		s, done, err := a.openSession(cmd)
		if err != nil {
			return err
		}
		defer done()

		repo, err := s.Repository()
		if err != nil {
			return err
		}
		ignore, err := internal.NewIgnoreMatcher(repo.Filesystem())
		if err != nil {
			return fmt.Errorf("read ignore files: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		if err := addWatchDirs(watcher, repo.Root(), ignore); err != nil {
			return fmt.Errorf("add watch dirs: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", repo.Root())

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if shouldIgnoreEvent(event, ignore) {
					continue
				}
				if event.Has(fsnotify.Create) {
					// new directories need their own watch
					_ = addWatchDirs(watcher, event.Name, ignore)
				}
				if !pending {
					timer.Reset(debounce)
					pending = true
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			case <-timer.C:
				pending = false
				commit, err := s.CommitAll(cmd.Context(), message, "", "")
				if errors.Is(err, git.ErrEmptyCommit) {
					continue
				}
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "commit error: %v\n", err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", commit.SHA, commit.Message)
			}
		}
	}
}

// addWatchDirs watches root and every directory below it that is not ignored.
// A root that is not a directory is skipped.
func addWatchDirs(watcher *fsnotify.Watcher, root string, ignore *internal.IgnoreMatcher) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if ignore.MatchDir(path) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func shouldIgnoreEvent(event fsnotify.Event, ignore *internal.IgnoreMatcher) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}

	return ignore.Match(event.Name)
}
