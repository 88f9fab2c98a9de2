package v1

import (
	"context"
	"fmt"

	"charm.land/fantasy"
	"github.com/4thel00z/gitplug/internal"
)

// Client provides programmatic access to a repository's history and release
// version. A Client is not safe for concurrent use; create one per caller.
type Client struct {
	session *internal.Session
}

// New creates a Client using the config of the resolved scope.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	resolver := internal.NewScopeResolver()
	conf, err := internal.LoadConfig(resolver.Resolve(cfg.scope))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	sessionOpts := []internal.SessionOption{
		internal.WithConfig(conf),
		internal.WithLogger(cfg.logger),
	}
	if cfg.token != "" {
		sessionOpts = append(sessionOpts, internal.WithCredentials(staticCredentials{
			username: cfg.username,
			token:    cfg.token,
		}))
	}

	c := &Client{session: internal.NewSession(sessionOpts...)}
	if cfg.repository != "" {
		if err := c.SetRepository(context.Background(), cfg.repository); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetRepository switches the client to the repository at path.
func (c *Client) SetRepository(ctx context.Context, path string) error {
	return c.session.SetRepository(ctx, path)
}

// ListCommits returns up to count commits, newest first.
func (c *Client) ListCommits(ctx context.Context, count int) ([]Commit, error) {
	records, err := c.session.ListCommits(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}
	return toCommits(records), nil
}

// FindCommits returns up to limit commits whose message contains keyword,
// ignoring case.
func (c *Client) FindCommits(ctx context.Context, keyword string, limit int) ([]Commit, error) {
	records, err := c.session.FindCommits(ctx, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("find commits: %w", err)
	}
	return toCommits(records), nil
}

func (c *Client) CompareCommits(ctx context.Context, base, head string) (DiffSummary, error) {
	summary, err := c.session.CompareCommits(ctx, base, head)
	if err != nil {
		return DiffSummary{}, fmt.Errorf("compare commits: %w", err)
	}
	return DiffSummary(summary), nil
}

func (c *Client) PendingChanges(ctx context.Context) (DiffSummary, error) {
	summary, err := c.session.PendingChanges(ctx)
	if err != nil {
		return DiffSummary{}, fmt.Errorf("pending changes: %w", err)
	}
	return DiffSummary(summary), nil
}

// CommitAll stages every change and commits it. Empty author and email use
// the configured identity.
func (c *Client) CommitAll(ctx context.Context, message, author, email string) (Commit, error) {
	record, err := c.session.CommitAll(ctx, message, author, email)
	if err != nil {
		return Commit{}, fmt.Errorf("commit: %w", err)
	}
	return Commit(record), nil
}

// Pull fast-forwards the current branch and reports PullUpToDate or
// PullFastForward.
func (c *Client) Pull(ctx context.Context) (string, error) {
	status, err := c.session.Pull(ctx)
	if err != nil {
		return "", fmt.Errorf("pull: %w", err)
	}
	return string(status), nil
}

// Push pushes branch, or the current branch when empty, and returns the
// branch name.
func (c *Client) Push(ctx context.Context, branch string) (string, error) {
	pushed, err := c.session.Push(ctx, branch)
	if err != nil {
		return "", fmt.Errorf("push: %w", err)
	}
	return pushed, nil
}

func (c *Client) CurrentVersion(ctx context.Context) (string, error) {
	return c.session.CurrentVersion(ctx)
}

func (c *Client) BumpPatchVersion(ctx context.Context) (string, error) {
	return c.session.BumpPatchVersion(ctx)
}

func (c *Client) SetVersion(ctx context.Context, version string) error {
	return c.session.SetVersion(ctx, version)
}

// Tools returns the client's operations as agent tools bound to this client.
func (c *Client) Tools() []fantasy.AgentTool {
	return internal.NewTools(c.session)
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	return nil
}

func toCommits(records []internal.CommitRecord) []Commit {
	commits := make([]Commit, 0, len(records))
	for _, r := range records {
		commits = append(commits, Commit(r))
	}
	return commits
}

type staticCredentials struct {
	username string
	token    string
}

func (s staticCredentials) Credentials(context.Context, string) (internal.Credentials, error) {
	if s.username == "" {
		return internal.Credentials{}, fmt.Errorf("%w: username required with a token", internal.ErrMissingCredentials)
	}
	return internal.Credentials{Username: s.username, Password: s.token}, nil
}
