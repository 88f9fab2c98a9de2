package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(orig) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
}

func TestScopePaths(t *testing.T) {
	scope := Scope{Dir: "/home/user/.gitplug"}

	if got := scope.ConfigPath(); got != "/home/user/.gitplug/config.yaml" {
		t.Errorf("config path = %q", got)
	}
	if got := scope.TOMLConfigPath(); got != "/home/user/.gitplug/config.toml" {
		t.Errorf("toml config path = %q", got)
	}
	if got := scope.LogPath(); got != "/home/user/.gitplug/logs/gitplug.log" {
		t.Errorf("log path = %q", got)
	}
}

func TestScopeResolverGlobal(t *testing.T) {
	home := t.TempDir()
	scope := NewScopeResolverAt(home).Global()

	if scope.Type != ScopeGlobal {
		t.Errorf("expected ScopeGlobal, got %q", scope.Type)
	}
	if scope.Dir != filepath.Join(home, ScopeDirName) {
		t.Errorf("expected Dir under %s, got %q", home, scope.Dir)
	}
}

func TestScopeResolverProjectNotFound(t *testing.T) {
	chdir(t, t.TempDir())

	_, found := NewScopeResolverAt(t.TempDir()).Project()
	if found {
		t.Error("expected Project() to return false when no .gitplug exists")
	}
}

func TestScopeResolverProjectInParent(t *testing.T) {
	tmp := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmp, ScopeDirName), 0755); err != nil {
		t.Fatal(err)
	}
	subDir := filepath.Join(tmp, "sub", "dir")
	if err := os.MkdirAll(subDir, 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, subDir)

	scope, found := NewScopeResolverAt(t.TempDir()).Project()
	if !found {
		t.Fatal("expected Project() to find .gitplug in parent")
	}
	if scope.Type != ScopeProject {
		t.Errorf("expected ScopeProject, got %q", scope.Type)
	}

	// Resolve symlinks for comparison (macOS /var -> /private/var)
	expectedPath, _ := filepath.EvalSymlinks(tmp)
	actualPath, _ := filepath.EvalSymlinks(scope.Path)
	if actualPath != expectedPath {
		t.Errorf("expected Path %q, got %q", expectedPath, actualPath)
	}
}

func TestScopeResolverSkipsGlobalDirAsProject(t *testing.T) {
	home := t.TempDir()
	if err := os.Mkdir(filepath.Join(home, ScopeDirName), 0755); err != nil {
		t.Fatal(err)
	}
	chdir(t, home)

	if _, found := NewScopeResolverAt(home).Project(); found {
		t.Error("global .gitplug must not be treated as a project scope")
	}
}

func TestScopeResolverResolve(t *testing.T) {
	tmp := t.TempDir()
	chdir(t, tmp)
	resolver := NewScopeResolverAt(t.TempDir())

	if got := resolver.Resolve("global").Type; got != ScopeGlobal {
		t.Errorf("explicit global resolved to %q", got)
	}
	if got := resolver.Resolve("").Type; got != ScopeGlobal {
		t.Errorf("expected fallback to ScopeGlobal, got %q", got)
	}

	// project without an existing directory resolves to the working directory
	local := resolver.Resolve("project")
	if local.Type != ScopeProject {
		t.Errorf("explicit project resolved to %q", local.Type)
	}
	if filepath.Base(local.Dir) != ScopeDirName {
		t.Errorf("unexpected local dir %q", local.Dir)
	}
}

func TestScopeEnvVars(t *testing.T) {
	scope := Scope{
		Type: ScopeProject,
		Path: "/project",
		Dir:  "/project/.gitplug",
	}

	env := scope.EnvVars()

	want := map[string]string{
		"GITPLUG_SCOPE":      "project",
		"GITPLUG_SCOPE_PATH": "/project/.gitplug",
		"GITPLUG_ROOT":       "/project",
		"GITPLUG_CONFIG":     "/project/.gitplug/config.yaml",
	}
	for k, v := range want {
		if env[k] != v {
			t.Errorf("expected %s=%s, got %q", k, v, env[k])
		}
	}
	if len(env) != len(want) {
		t.Errorf("unexpected extra variables: %v", env)
	}
}
