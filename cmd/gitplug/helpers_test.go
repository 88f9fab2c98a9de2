package main

import (
	"bytes"
	"context"
	"os"
	"testing"
	"time"

	"github.com/4thel00z/gitplug/internal"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type fakeProvider struct {
	answer string
	tool   string
	args   string
}

func (p *fakeProvider) Name() string {
	return "fake"
}

func (p *fakeProvider) Complete(context.Context, string) (string, error) {
	return p.answer, nil
}

func (p *fakeProvider) Chat(ctx context.Context, req internal.ChatRequest) (string, error) {
	if p.tool != "" {
		resp, err := internal.CallTool(ctx, req.Tools, p.tool, p.args)
		if err != nil {
			return "", err
		}
		if req.OnText != nil {
			req.OnText(resp.Content)
		}
		return resp.Content, nil
	}
	if req.OnText != nil {
		req.OnText(p.answer)
	}
	return p.answer, nil
}

func newTestApp(t *testing.T, provider internal.Provider) *app {
	t.Helper()
	return &app{
		resolver: internal.NewScopeResolverAt(t.TempDir()),
		newProvider: func(context.Context, internal.FantasyConfig) (internal.Provider, error) {
			return provider, nil
		},
	}
}

func runCmd(t *testing.T, a *app, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd("test", a)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(orig) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
}

// setupRepo creates a repository with one commit per message.
func setupRepo(t *testing.T, messages ...string) (string, *internal.GitRepository) {
	t.Helper()
	dir := t.TempDir()
	if _, err := git.PlainInit(dir, false); err != nil {
		t.Fatalf("init repo: %v", err)
	}

	repo, err := internal.OpenRepository(dir)
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}

	for i, msg := range messages {
		writeRepoFile(t, repo, "file"+string(rune('a'+i))+".txt", msg+"\n")
		sig := object.Signature{Name: "Tester", Email: "tester@example.com", When: time.Now()}
		if _, err := repo.CommitAll(context.Background(), msg, sig); err != nil {
			t.Fatalf("commit %q: %v", msg, err)
		}
	}
	return dir, repo
}

func writeRepoFile(t *testing.T, repo *internal.GitRepository, name, content string) {
	t.Helper()
	if err := util.WriteFile(repo.Filesystem(), name, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// headFiles lists the paths recorded in the HEAD commit of the repository at dir.
func headFiles(t *testing.T, dir string) []string {
	t.Helper()
	repo, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatalf("open repo: %v", err)
	}
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("get HEAD: %v", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("get HEAD commit: %v", err)
	}
	tree, err := commit.Tree()
	if err != nil {
		t.Fatalf("get tree: %v", err)
	}

	var files []string
	_ = tree.Files().ForEach(func(f *object.File) error {
		files = append(files, f.Name)
		return nil
	})
	return files
}
