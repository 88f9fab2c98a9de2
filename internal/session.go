package internal

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing/object"
)

// Session holds one caller's repository handle and everything the git and
// version operations need. Sessions are independent of each other; a single
// Session is not safe for concurrent use.
type Session struct {
	repo  *GitRepository
	cfg   *Config
	creds CredentialProvider
	log   *slog.Logger
	now   func() time.Time
}

type SessionOption func(*Session)

func WithConfig(cfg *Config) SessionOption {
	return func(s *Session) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

func WithCredentials(p CredentialProvider) SessionOption {
	return func(s *Session) {
		s.creds = p
	}
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		cfg: DefaultConfig(),
		log: discardLogger(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.creds == nil {
		s.creds = NewCredentialProvider(s.cfg.Git)
	}
	return s
}

// SetRepository opens path and replaces any repository held before.
func (s *Session) SetRepository(ctx context.Context, path string) error {
	repo, err := OpenRepository(path)
	if err != nil {
		s.log.Warn("set repository failed", "path", path, "err", err)
		return err
	}

	s.repo = repo
	s.log.Info("repository set", "path", path)
	return nil
}

// Repository returns the held repository or ErrRepositoryNotSet.
func (s *Session) Repository() (*GitRepository, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotSet
	}
	return s.repo, nil
}

func (s *Session) Config() *Config {
	return s.cfg
}

func (s *Session) Logger() *slog.Logger {
	return s.log
}

func (s *Session) ListCommits(ctx context.Context, count int) ([]CommitRecord, error) {
	repo, err := s.Repository()
	if err != nil {
		return nil, err
	}

	s.log.Debug("list commits", "count", count)
	return repo.Log(ctx, count)
}

func (s *Session) FindCommits(ctx context.Context, keyword string, limit int) ([]CommitRecord, error) {
	repo, err := s.Repository()
	if err != nil {
		return nil, err
	}

	s.log.Debug("find commits", "keyword", keyword, "limit", limit)
	return repo.Find(ctx, keyword, limit)
}

func (s *Session) CompareCommits(ctx context.Context, base, head string) (DiffSummary, error) {
	repo, err := s.Repository()
	if err != nil {
		return DiffSummary{}, err
	}

	s.log.Debug("compare commits", "base", base, "head", head)
	summary, err := repo.Compare(ctx, base, head)
	if err != nil {
		s.log.Warn("compare commits failed", "base", base, "head", head, "err", err)
		return DiffSummary{}, err
	}
	return summary, nil
}

func (s *Session) PendingChanges(ctx context.Context) (DiffSummary, error) {
	repo, err := s.Repository()
	if err != nil {
		return DiffSummary{}, err
	}
	return repo.PendingChanges(ctx)
}

// CommitAll stages every change and commits it. Empty author or email fall
// back to the configured identity.
func (s *Session) CommitAll(ctx context.Context, message, author, email string) (CommitRecord, error) {
	repo, err := s.Repository()
	if err != nil {
		return CommitRecord{}, err
	}
	if strings.TrimSpace(message) == "" {
		return CommitRecord{}, fmt.Errorf("%w: commit message required", ErrInvalidInput)
	}

	if author == "" {
		author = s.cfg.Git.AuthorName
	}
	if email == "" {
		email = s.cfg.Git.AuthorEmail
	}

	commit, err := repo.CommitAll(ctx, message, object.Signature{
		Name:  author,
		Email: email,
		When:  s.now(),
	})
	if err != nil {
		s.log.Warn("commit failed", "err", err)
		return CommitRecord{}, err
	}

	s.log.Info("committed", "sha", commit.SHA, "author", author)
	return commit, nil
}

func (s *Session) Pull(ctx context.Context) (MergeStatus, error) {
	repo, err := s.Repository()
	if err != nil {
		return "", err
	}

	remote := s.cfg.Git.Remote
	url, err := repo.RemoteURL(remote)
	if err != nil {
		return "", err
	}
	auth, err := AuthFor(ctx, s.creds, url)
	if err != nil {
		return "", err
	}

	status, err := repo.Pull(ctx, remote, auth)
	if err != nil {
		s.log.Warn("pull failed", "remote", remote, "err", err)
		return "", err
	}

	s.log.Info("pulled", "remote", remote, "status", status)
	return status, nil
}

// Push pushes branch, or the current branch when branch is empty, and
// returns the branch that was pushed.
func (s *Session) Push(ctx context.Context, branch string) (string, error) {
	repo, err := s.Repository()
	if err != nil {
		return "", err
	}

	if branch == "" {
		branch, err = repo.CurrentBranch()
		if err != nil {
			return "", err
		}
	}

	remote := s.cfg.Git.Remote
	url, err := repo.RemoteURL(remote)
	if err != nil {
		return "", err
	}
	auth, err := AuthFor(ctx, s.creds, url)
	if err != nil {
		return "", err
	}

	if err := repo.Push(ctx, remote, branch, auth); err != nil {
		s.log.Warn("push failed", "remote", remote, "branch", branch, "err", err)
		return "", err
	}

	s.log.Info("pushed", "remote", remote, "branch", branch)
	return branch, nil
}

func (s *Session) Remote() string {
	return s.cfg.Git.Remote
}

// version file

func (s *Session) versions() (*VersionStore, error) {
	repo, err := s.Repository()
	if err != nil {
		return nil, err
	}
	return NewVersionStore(repo.Filesystem(), s.cfg.Version.File), nil
}

func (s *Session) EnsureVersionFile(ctx context.Context) error {
	store, err := s.versions()
	if err != nil {
		return err
	}
	return store.Ensure()
}

func (s *Session) CurrentVersion(ctx context.Context) (string, error) {
	store, err := s.versions()
	if err != nil {
		return "", err
	}
	return store.Current()
}

// StoredVersion returns the version file content, or ErrNotFound when the
// file does not exist yet. Unlike CurrentVersion it never writes.
func (s *Session) StoredVersion(ctx context.Context) (string, error) {
	store, err := s.versions()
	if err != nil {
		return "", err
	}
	return store.Stored()
}

func (s *Session) BumpPatchVersion(ctx context.Context) (string, error) {
	store, err := s.versions()
	if err != nil {
		return "", err
	}

	next, err := store.BumpPatch()
	if err != nil {
		s.log.Warn("bump version failed", "file", store.Path(), "err", err)
		return "", err
	}

	s.log.Info("version bumped", "version", next)
	return next, nil
}

func (s *Session) SetVersion(ctx context.Context, version string) error {
	store, err := s.versions()
	if err != nil {
		return err
	}

	if err := store.Set(version); err != nil {
		s.log.Warn("set version failed", "version", version, "err", err)
		return err
	}

	s.log.Info("version set", "version", version)
	return nil
}
