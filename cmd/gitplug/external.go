package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/4thel00z/gitplug/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Executables named gitplug-<name> on PATH run as `gitplug <name>`.
const externalPrefix = "gitplug-"

// pluginCall is one external command invocation. Global flags given before
// the command name select the repository and scope; everything after the
// name goes to the plugin untouched.
type pluginCall struct {
	name  string
	args  []string
	repo  string
	scope string
}

// parsePluginCall reads leading global flags up to the first bare word. It
// reports false for anything cobra should handle instead (help, unknown
// flags, no command).
func parsePluginCall(args []string) (pluginCall, bool) {
	flags := pflag.NewFlagSet("gitplug", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.SetOutput(io.Discard)

	repo := flags.String("repo", ".", "")
	scope := flags.String("scope", "", "")
	flags.Bool("json", false, "")

	if err := flags.Parse(args); err != nil {
		return pluginCall{}, false
	}

	rest := flags.Args()
	if len(rest) == 0 || rest[0] == "" {
		return pluginCall{}, false
	}
	return pluginCall{name: rest[0], args: rest[1:], repo: *repo, scope: *scope}, true
}

// isBuiltin reports whether name is handled by root itself.
func isBuiltin(root *cobra.Command, name string) bool {
	if name == "help" || name == "completion" {
		return true
	}
	for _, c := range root.Commands() {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}

func findExternal(name string) (string, error) {
	binary := externalPrefix + name
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("unknown command %q: %s not found in PATH", name, binary)
	}
	return path, nil
}

// listExternalCommands returns the sorted names of gitplug-* executables on PATH.
func listExternalCommands() []string {
	found := make(map[string]bool)

	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name, ok := strings.CutPrefix(entry.Name(), externalPrefix)
			if !ok || name == "" || found[name] {
				continue
			}
			if isExecutable(filepath.Join(dir, entry.Name())) {
				found[name] = true
			}
		}
	}
	return slices.Sorted(maps.Keys(found))
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0111 != 0
}

func executeExternal(ctx context.Context, binaryPath string, args, env []string) error {
	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// pluginEnv is the process environment plus the resolved scope and the
// repository the plugin was pointed at.
func pluginEnv(ctx context.Context, a *app, call pluginCall, binVersion string) []string {
	scope := a.resolver.Resolve(call.scope)

	vars := scope.EnvVars()
	bin, _ := os.Executable()
	vars["GITPLUG_BIN"] = bin
	vars["GITPLUG_BIN_VERSION"] = binVersion
	maps.Copy(vars, repoEnv(ctx, scope, call.repo))

	env := os.Environ()
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		env = append(env, k+"="+vars[k])
	}
	return env
}

// repoEnv describes the repository at path: its root, branch, remote and
// release version. It is empty when path is not a repository, and it never
// creates the version file.
func repoEnv(ctx context.Context, scope internal.Scope, path string) map[string]string {
	vars := make(map[string]string)

	abs, err := filepath.Abs(path)
	if err != nil {
		return vars
	}

	cfg, err := internal.LoadConfig(scope)
	if err != nil {
		cfg = internal.DefaultConfig()
	}

	s := internal.NewSession(internal.WithConfig(cfg))
	if err := s.SetRepository(ctx, abs); err != nil {
		return vars
	}
	repo, err := s.Repository()
	if err != nil {
		return vars
	}

	vars["GITPLUG_REPO"] = repo.Root()
	vars["GITPLUG_REMOTE"] = s.Remote()
	vars["GITPLUG_VERSION_FILE"] = filepath.Join(repo.Root(), cfg.Version.File)
	if v, err := s.StoredVersion(ctx); err == nil {
		vars["GITPLUG_VERSION"] = v
	}
	if branch, err := repo.CurrentBranch(); err == nil {
		vars["GITPLUG_BRANCH"] = branch
	}
	return vars
}
