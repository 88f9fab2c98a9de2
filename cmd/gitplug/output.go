package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/4thel00z/gitplug/internal"
	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// newSession builds a session from the resolved scope's config, logging to
// the scope's log file. done releases the log file.
func (a *app) newSession(cmd *cobra.Command) (s *internal.Session, done func(), err error) {
	scopeHint, _ := cmd.Flags().GetString("scope")
	scope := a.resolver.Resolve(scopeHint)

	cfg, err := internal.LoadConfig(scope)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	log, closer, err := internal.NewFileLogger(scope, cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	opts := []internal.SessionOption{internal.WithConfig(cfg), internal.WithLogger(log)}
	if a.creds != nil {
		opts = append(opts, internal.WithCredentials(a.creds))
	}

	return internal.NewSession(opts...), func() { _ = closer.Close() }, nil
}

// openSession is newSession with the --repo repository already set.
func (a *app) openSession(cmd *cobra.Command) (*internal.Session, func(), error) {
	s, done, err := a.newSession(cmd)
	if err != nil {
		return nil, nil, err
	}

	path, err := repoPath(cmd)
	if err != nil {
		done()
		return nil, nil, err
	}
	if err := s.SetRepository(cmd.Context(), path); err != nil {
		done()
		return nil, nil, err
	}
	return s, done, nil
}

func repoPath(cmd *cobra.Command) (string, error) {
	repo, _ := cmd.Flags().GetString("repo")
	if repo == "" {
		repo = "."
	}
	abs, err := filepath.Abs(repo)
	if err != nil {
		return "", fmt.Errorf("resolve repository path: %w", err)
	}
	return abs, nil
}

func wantJSON(cmd *cobra.Command) bool {
	asJSON, _ := cmd.Flags().GetBool("json")
	return asJSON
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// withSpinner runs fn behind a spinner when out is a terminal.
func withSpinner(out io.Writer, suffix string, fn func() error) error {
	if !isTerminal(out) {
		return fn()
	}

	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + suffix
	s.Start()
	defer s.Stop()

	return fn()
}

func renderCommits(cmd *cobra.Command, commits []internal.CommitRecord) error {
	if wantJSON(cmd) {
		return writeJSON(cmd, commits)
	}

	if len(commits) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No commits.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"SHA", "Date (UTC)", "Author", "Message"})
	for _, c := range commits {
		t.AppendRow(table.Row{c.SHA, c.Date.Format(time.DateTime), c.Author, c.Message})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

func renderDiff(cmd *cobra.Command, summary internal.DiffSummary) error {
	if wantJSON(cmd) {
		return writeJSON(cmd, summary)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d files changed, %d insertions(+), %d deletions(-)\n",
		summary.Files, summary.Added, summary.Deleted)
	return nil
}
