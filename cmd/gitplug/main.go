package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/4thel00z/gitplug/internal"
	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	a := newApp()
	rootCmd := NewRootCmd(version, a)
	if tryExternalCommand(ctx, a, rootCmd, os.Args[1:]) {
		return
	}

	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

// tryExternalCommand runs a gitplug-* plugin when args name one that is not
// a built-in command. A failing plugin's exit code is passed through.
func tryExternalCommand(ctx context.Context, a *app, root *cobra.Command, args []string) bool {
	call, ok := parsePluginCall(args)
	if !ok || isBuiltin(root, call.name) {
		return false
	}

	path, err := findExternal(call.name)
	if err != nil {
		return false
	}

	err = executeExternal(ctx, path, call.args, pluginEnv(ctx, a, call, version))
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.ExitCode())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "gitplug %s: %v\n", call.name, err)
		os.Exit(1)
	}

	return true
}

type app struct {
	resolver    *internal.ScopeResolver
	newProvider internal.ProviderFactory
	// creds overrides the configured credential source when set
	creds internal.CredentialProvider
}

func newApp() *app {
	return &app{
		resolver:    internal.NewScopeResolver(),
		newProvider: internal.DefaultProviderFactory,
	}
}

func (a *app) providers() *internal.ProviderService {
	return internal.NewProviderService(a.resolver, a.newProvider)
}
