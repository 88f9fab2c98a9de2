package internal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testScope(t *testing.T) Scope {
	t.Helper()
	tmpDir := t.TempDir()
	return Scope{
		Type: ScopeProject,
		Path: tmpDir,
		Dir:  filepath.Join(tmpDir, ScopeDirName),
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.Equal(t, "ReleaseNotesBot", cfg.Git.AuthorName)
	assert.Equal(t, "bot@example.com", cfg.Git.AuthorEmail)
	assert.Equal(t, "version.json", cfg.Version.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotNil(t, cfg.Providers)
	assert.Empty(t, cfg.Providers)
}

func TestConfigSaveAndLoad(t *testing.T) {
	scope := testScope(t)

	cfg := DefaultConfig()
	cfg.DefaultProvider = "myp"
	cfg.Git.Remote = "upstream"
	cfg.Version.File = "build/VERSION"
	cfg.Providers["myp"] = ProviderConfig{
		Type:   "openai",
		APIKey: "sk-test",
		Model:  "gpt-4",
	}

	require.NoError(t, SaveConfig(scope, cfg))

	info, err := os.Stat(scope.ConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(scope)
	require.NoError(t, err)

	assert.Equal(t, "myp", loaded.DefaultProvider)
	assert.Equal(t, "upstream", loaded.Git.Remote)
	assert.Equal(t, "build/VERSION", loaded.Version.File)
	require.Contains(t, loaded.Providers, "myp")
	assert.Equal(t, "sk-test", loaded.Providers["myp"].APIKey)
	assert.Equal(t, "gpt-4", loaded.Providers["myp"].Model)
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := LoadConfig(testScope(t))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	scope := testScope(t)
	require.NoError(t, os.MkdirAll(scope.Dir, 0755))
	require.NoError(t, os.WriteFile(scope.ConfigPath(), []byte("{{invalid yaml:::"), 0644))

	_, err := LoadConfig(scope)
	assert.Error(t, err)
}

func TestLoadConfigPartialFillsDefaults(t *testing.T) {
	scope := testScope(t)
	require.NoError(t, os.MkdirAll(scope.Dir, 0755))
	require.NoError(t, os.WriteFile(scope.ConfigPath(), []byte("git:\n  remote: upstream\n"), 0644))

	cfg, err := LoadConfig(scope)
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Git.Remote)
	assert.Equal(t, DefaultAuthorName, cfg.Git.AuthorName)
	assert.Equal(t, DefaultVersionFile, cfg.Version.File)
	assert.NotNil(t, cfg.Providers)
}

func TestLoadConfigTOMLFallback(t *testing.T) {
	scope := testScope(t)
	require.NoError(t, os.MkdirAll(scope.Dir, 0755))

	content := `default_provider = "claude"

[git]
remote = "upstream"
author_name = "Release Bot"

[version]
file = "VERSION"

[providers.claude]
type = "anthropic"
model = "claude-sonnet"
`
	require.NoError(t, os.WriteFile(scope.TOMLConfigPath(), []byte(content), 0644))

	cfg, err := LoadConfig(scope)
	require.NoError(t, err)

	assert.Equal(t, "claude", cfg.DefaultProvider)
	assert.Equal(t, "upstream", cfg.Git.Remote)
	assert.Equal(t, "Release Bot", cfg.Git.AuthorName)
	assert.Equal(t, DefaultAuthorEmail, cfg.Git.AuthorEmail)
	assert.Equal(t, "VERSION", cfg.Version.File)
	assert.Equal(t, "anthropic", cfg.Providers["claude"].Type)
}

func TestLoadConfigPrefersYAML(t *testing.T) {
	scope := testScope(t)
	require.NoError(t, os.MkdirAll(scope.Dir, 0755))
	require.NoError(t, os.WriteFile(scope.ConfigPath(), []byte("git:\n  remote: from-yaml\n"), 0644))
	require.NoError(t, os.WriteFile(scope.TOMLConfigPath(), []byte("[git]\nremote = \"from-toml\"\n"), 0644))

	cfg, err := LoadConfig(scope)
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.Git.Remote)
}
