package main

import (
	"encoding/json"
	"testing"

	"github.com/4thel00z/gitplug/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoCmd(t *testing.T) {
	out, err := runCmd(t, newTestApp(t, nil), "echo", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "You said: hello world\n", out)
}

func TestToolsCmd(t *testing.T) {
	out, err := runCmd(t, newTestApp(t, nil), "tools")
	require.NoError(t, err)

	for _, name := range []string{"set_repository", "list_commits", "compare_commits", "bump_patch_version", "echo"} {
		assert.Contains(t, out, name)
	}
}

func TestToolsCmdJSON(t *testing.T) {
	out, err := runCmd(t, newTestApp(t, nil), "tools", "--json")
	require.NoError(t, err)

	var tools []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tools))
	assert.Len(t, tools, 12)
	assert.Equal(t, "set_repository", tools[0]["name"])
}

func TestCallCmd(t *testing.T) {
	dir, _ := setupRepo(t, "one", "two", "three")
	a := newTestApp(t, nil)

	out, err := runCmd(t, a, "call", "list_commits", `{"count":2}`, "--repo", dir)
	require.NoError(t, err)

	var commits []internal.CommitRecord
	require.NoError(t, json.Unmarshal([]byte(out), &commits))
	assert.Len(t, commits, 2)
}

func TestCallCmdWithoutRepository(t *testing.T) {
	a := newTestApp(t, nil)

	out, err := runCmd(t, a, "call", "echo", `{"text":"hi"}`, "--repo", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "You said: hi\n", out)

	_, err = runCmd(t, a, "call", "get_current_version", "--repo", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository not set")
}

func TestCallCmdUnknownTool(t *testing.T) {
	_, err := runCmd(t, newTestApp(t, nil), "call", "nope")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}
