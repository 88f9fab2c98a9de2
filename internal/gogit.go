package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	DefaultRemote      = "origin"
	DefaultAuthorName  = "ReleaseNotesBot"
	DefaultAuthorEmail = "bot@example.com"
)

type GitRepository struct {
	repo     *git.Repository
	worktree *git.Worktree
	path     string
}

func OpenRepository(path string) (*GitRepository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty repository path", ErrInvalidInput)
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: not a valid git repository %s: %v", ErrInvalidInput, path, err)
	}

	worktree, err := repo.Worktree()
	if errors.Is(err, git.ErrIsBareRepository) {
		return nil, fmt.Errorf("%w: %s is a bare repository", ErrInvalidInput, path)
	}
	if err != nil {
		return nil, fmt.Errorf("get worktree: %w", err)
	}
	// config and logs may live in the worktree and must never be staged
	worktree.Excludes = append(worktree.Excludes, gitignore.ParsePattern(ScopeDirName, nil))

	return &GitRepository{
		repo:     repo,
		worktree: worktree,
		path:     path,
	}, nil
}

func (r *GitRepository) Path() string {
	return r.path
}

// Filesystem is the working tree filesystem.
func (r *GitRepository) Filesystem() billy.Filesystem {
	return r.worktree.Filesystem
}

func (r *GitRepository) Root() string {
	return r.worktree.Filesystem.Root()
}

// history

func (r *GitRepository) Log(ctx context.Context, limit int) ([]CommitRecord, error) {
	return r.collect(ctx, limit, func(*object.Commit) bool { return true })
}

func (r *GitRepository) Find(ctx context.Context, keyword string, limit int) ([]CommitRecord, error) {
	needle := strings.ToLower(keyword)
	return r.collect(ctx, limit, func(c *object.Commit) bool {
		return strings.Contains(strings.ToLower(c.Message), needle)
	})
}

func (r *GitRepository) collect(ctx context.Context, limit int, match func(*object.Commit) bool) ([]CommitRecord, error) {
	records := []CommitRecord{}
	if limit <= 0 {
		return records, nil
	}

	iter, err := r.repo.Log(&git.LogOptions{})
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// unborn HEAD, nothing committed yet
		return records, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !match(c) {
			return nil
		}
		records = append(records, toCommitRecord(c))
		if len(records) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}

	return records, nil
}

func (r *GitRepository) Compare(ctx context.Context, base, head string) (DiffSummary, error) {
	baseCommit, err := r.resolveCommit(base)
	if err != nil {
		return DiffSummary{}, err
	}
	headCommit, err := r.resolveCommit(head)
	if err != nil {
		return DiffSummary{}, err
	}

	baseTree, err := baseCommit.Tree()
	if err != nil {
		return DiffSummary{}, fmt.Errorf("get base tree: %w", err)
	}
	headTree, err := headCommit.Tree()
	if err != nil {
		return DiffSummary{}, fmt.Errorf("get head tree: %w", err)
	}

	changes, err := baseTree.DiffContext(ctx, headTree)
	if err != nil {
		return DiffSummary{}, fmt.Errorf("diff trees: %w", err)
	}

	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return DiffSummary{}, fmt.Errorf("get patch: %w", err)
	}

	summary := DiffSummary{Files: len(changes)}
	for _, stat := range patch.Stats() {
		summary.Added += stat.Addition
		summary.Deleted += stat.Deletion
	}

	return summary, nil
}

// PendingChanges summarizes what CommitAll would record: every changed or
// untracked path in the working tree against HEAD.
func (r *GitRepository) PendingChanges(ctx context.Context) (DiffSummary, error) {
	var summary DiffSummary

	status, err := r.worktree.Status()
	if err != nil {
		return summary, fmt.Errorf("get status: %w", err)
	}
	if status.IsClean() {
		return summary, nil
	}

	headTree, err := r.headTree()
	if err != nil {
		return summary, err
	}

	dmp := diffmatchpatch.New()
	for path, s := range status {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if s.Staging == git.Unmodified && s.Worktree == git.Unmodified {
			continue
		}

		oldContent, err := treeContent(headTree, path)
		if err != nil {
			return summary, err
		}
		newContent, err := r.worktreeContent(path)
		if err != nil {
			return summary, err
		}
		if oldContent == newContent {
			continue
		}

		added, deleted := countLineChanges(dmp, oldContent, newContent)
		summary.Files++
		summary.Added += added
		summary.Deleted += deleted
	}

	return summary, nil
}

// mutations

func (r *GitRepository) CommitAll(ctx context.Context, message string, sig object.Signature) (CommitRecord, error) {
	if err := r.worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return CommitRecord{}, fmt.Errorf("stage changes: %w", err)
	}

	hash, err := r.worktree.Commit(message, &git.CommitOptions{
		Author:    &sig,
		Committer: &sig,
	})
	if err != nil {
		return CommitRecord{}, fmt.Errorf("commit: %w", err)
	}

	commit, err := r.repo.CommitObject(hash)
	if err != nil {
		return CommitRecord{}, fmt.Errorf("get commit: %w", err)
	}

	return toCommitRecord(commit), nil
}

func (r *GitRepository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("get HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("%w: HEAD is detached", ErrPrecondition)
	}
	return head.Name().Short(), nil
}

func (r *GitRepository) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if errors.Is(err, git.ErrRemoteNotFound) {
		return "", fmt.Errorf("%w: remote %q", ErrNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("get remote: %w", err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: remote %q has no URL", ErrPrecondition, name)
	}
	return urls[0], nil
}

func (r *GitRepository) Pull(ctx context.Context, remote string, auth transport.AuthMethod) (MergeStatus, error) {
	branch, err := r.CurrentBranch()
	if err != nil {
		return "", err
	}

	err = r.worktree.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		SingleBranch:  true,
		Auth:          auth,
	})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return MergeUpToDate, nil
	}
	if err != nil {
		return "", fmt.Errorf("pull: %w", err)
	}

	return MergeFastForward, nil
}

func (r *GitRepository) Push(ctx context.Context, remote, branch string, auth transport.AuthMethod) error {
	refName := plumbing.NewBranchReferenceName(branch)
	if _, err := r.repo.Reference(refName, false); err != nil {
		return fmt.Errorf("%w: branch %q", ErrNotFound, branch)
	}

	spec := config.RefSpec(fmt.Sprintf("%s:%s", refName, refName))
	err := r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{spec},
		Auth:       auth,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("push: %w", err)
	}

	return nil
}

// helpers

func (r *GitRepository) resolveCommit(ref string) (*object.Commit, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("%w: commit %q", ErrNotFound, ref)
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("%w: commit %q", ErrNotFound, ref)
	}

	return commit, nil
}

func (r *GitRepository) headTree() (*object.Tree, error) {
	head, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get HEAD: %w", err)
	}

	commit, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("get HEAD commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("get HEAD tree: %w", err)
	}
	return tree, nil
}

func (r *GitRepository) worktreeContent(path string) (string, error) {
	data, err := util.ReadFile(r.worktree.Filesystem, path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func treeContent(tree *object.Tree, path string) (string, error) {
	if tree == nil {
		return "", nil
	}

	f, err := tree.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s from HEAD: %w", path, err)
	}

	content, err := f.Contents()
	if err != nil {
		return "", fmt.Errorf("read %s from HEAD: %w", path, err)
	}
	return content, nil
}

func countLineChanges(dmp *diffmatchpatch.DiffMatchPatch, oldContent, newContent string) (added, deleted int) {
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += countLines(d.Text)
		case diffmatchpatch.DiffDelete:
			deleted += countLines(d.Text)
		}
	}
	return added, deleted
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

func toCommitRecord(c *object.Commit) CommitRecord {
	message := strings.TrimSpace(c.Message)
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		message = strings.TrimSpace(message[:i])
	}

	return CommitRecord{
		SHA:     shortHash(c.Hash.String()),
		Message: message,
		Author:  c.Author.Name,
		Date:    c.Author.When.UTC(),
	}
}
