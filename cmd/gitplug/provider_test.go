package main

import (
	"strings"
	"testing"

	"github.com/4thel00z/gitplug/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderListEmpty(t *testing.T) {
	out, err := runCmd(t, newTestApp(t, nil), "provider", "list", "--scope", "global")
	require.NoError(t, err)
	assert.Contains(t, out, "No providers configured.")
}

func TestProviderAddDefaultRemove(t *testing.T) {
	a := newTestApp(t, &fakeProvider{answer: "hello"})

	out, err := runCmd(t, a, "provider", "add", "work", "--type", "anthropic", "--model", "claude", "--api-key", "sk", "--scope", "global")
	require.NoError(t, err)
	assert.Equal(t, "Added provider work\n", out)

	out, err = runCmd(t, a, "provider", "list", "--scope", "global")
	require.NoError(t, err)
	assert.Equal(t, "work", strings.TrimSpace(out))

	out, err = runCmd(t, a, "provider", "default", "work", "--scope", "global")
	require.NoError(t, err)
	assert.Contains(t, out, "Default provider set to work")

	cfg, err := internal.LoadConfig(a.resolver.Global())
	require.NoError(t, err)
	assert.Equal(t, "work", cfg.DefaultProvider)
	assert.Equal(t, "anthropic", cfg.Providers["work"].Type)

	out, err = runCmd(t, a, "provider", "test", "work", "--scope", "global")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider work is working")

	out, err = runCmd(t, a, "provider", "remove", "work", "--scope", "global")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed provider work")

	_, err = runCmd(t, a, "provider", "remove", "work", "--scope", "global")
	assert.ErrorIs(t, err, internal.ErrNotFound)
}
