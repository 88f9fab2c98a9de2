package main

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/4thel00z/gitplug/internal"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noCredentials struct{}

func (noCredentials) Credentials(context.Context, string) (internal.Credentials, error) {
	return internal.Credentials{}, internal.ErrMissingCredentials
}

func addRemote(t *testing.T, dir, url string) {
	t.Helper()
	r, err := git.PlainOpen(dir)
	require.NoError(t, err)
	_, err = r.CreateRemote(&config.RemoteConfig{Name: internal.DefaultRemote, URLs: []string{url}})
	require.NoError(t, err)
}

func TestPushAndPullCmd(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available for local transport")
	}

	bare := filepath.Join(t.TempDir(), "remote.git")
	_, err := git.PlainInit(bare, true)
	require.NoError(t, err)

	dir, repo := setupRepo(t, "initial")
	addRemote(t, dir, bare)
	a := newTestApp(t, nil)

	out, err := runCmd(t, a, "push", "--repo", dir, "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Pushed master to origin\n", out)

	cloneDir := t.TempDir()
	_, err = git.PlainClone(cloneDir, false, &git.CloneOptions{URL: bare})
	require.NoError(t, err)

	out, err = runCmd(t, a, "pull", "--repo", cloneDir)
	require.NoError(t, err)
	assert.Equal(t, "Pull result: UpToDate\n", out)

	writeRepoFile(t, repo, "more.txt", "more\n")
	_, err = runCmd(t, a, "commit", "-m", "more", "--repo", dir)
	require.NoError(t, err)
	_, err = runCmd(t, a, "push", "master", "--repo", dir)
	require.NoError(t, err)

	out, err = runCmd(t, a, "pull", "--repo", cloneDir)
	require.NoError(t, err)
	assert.Equal(t, "Pull result: FastForward\n", out)
}

func TestPushCmdMissingCredentials(t *testing.T) {
	dir, _ := setupRepo(t, "initial")
	addRemote(t, dir, "https://example.com/o/r.git")
	a := newTestApp(t, nil)
	a.creds = noCredentials{}

	_, err := runCmd(t, a, "push", "--repo", dir, "--yes")
	assert.ErrorIs(t, err, internal.ErrMissingCredentials)

	_, err = runCmd(t, a, "pull", "--repo", dir)
	assert.ErrorIs(t, err, internal.ErrMissingCredentials)
}

func TestPushCmdNoRemote(t *testing.T) {
	dir, _ := setupRepo(t, "initial")

	_, err := runCmd(t, newTestApp(t, nil), "push", "--repo", dir, "--yes")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}
