package main

import (
	"testing"

	"github.com/4thel00z/gitplug/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func configureProvider(t *testing.T, a *app) {
	t.Helper()
	svc := a.providers()
	require.NoError(t, svc.Add("fake", internal.ProviderConfig{Type: "openai", Model: "m"}, "global"))
	require.NoError(t, svc.SetDefault("fake", "global"))
}

func TestChatCmd(t *testing.T) {
	dir, _ := setupRepo(t, "initial")
	a := newTestApp(t, &fakeProvider{tool: "bump_patch_version"})
	configureProvider(t, a)

	out, err := runCmd(t, a, "chat", "bump", "the", "version", "--repo", dir, "--scope", "global")
	require.NoError(t, err)
	assert.Equal(t, "0.0.1\n", out)
}

func TestChatCmdNoStream(t *testing.T) {
	a := newTestApp(t, &fakeProvider{answer: "hello there"})
	configureProvider(t, a)

	out, err := runCmd(t, a, "chat", "hi", "--no-stream", "--scope", "global", "--repo", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "hello there\n", out)
}

func TestChatCmdNoProvider(t *testing.T) {
	a := newTestApp(t, &fakeProvider{})

	_, err := runCmd(t, a, "chat", "hi", "--scope", "global", "--repo", t.TempDir())
	assert.ErrorIs(t, err, internal.ErrPrecondition)
}
