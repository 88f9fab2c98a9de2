package internal

import (
	"os"
	"path/filepath"
)

const ScopeDirName = ".gitplug"

type ScopeType string

const (
	ScopeGlobal  ScopeType = "global"
	ScopeProject ScopeType = "project"
)

type Scope struct {
	Type ScopeType
	Path string // directory the scope belongs to
	Dir  string // .gitplug directory path
}

func (s Scope) ConfigPath() string {
	return filepath.Join(s.Dir, "config.yaml")
}

func (s Scope) TOMLConfigPath() string {
	return filepath.Join(s.Dir, "config.toml")
}

func (s Scope) LogPath() string {
	return filepath.Join(s.Dir, "logs", "gitplug.log")
}

// EnvVars describes the scope to external gitplug-* commands.
func (s Scope) EnvVars() map[string]string {
	return map[string]string{
		"GITPLUG_SCOPE":      string(s.Type),
		"GITPLUG_SCOPE_PATH": s.Dir,
		"GITPLUG_ROOT":       s.Path,
		"GITPLUG_CONFIG":     s.ConfigPath(),
	}
}

type ScopeResolver struct {
	homeDir string
}

func NewScopeResolver() *ScopeResolver {
	home, _ := os.UserHomeDir()
	return &ScopeResolver{homeDir: home}
}

// NewScopeResolverAt resolves the global scope under homeDir instead of the
// user's home directory.
func NewScopeResolverAt(homeDir string) *ScopeResolver {
	return &ScopeResolver{homeDir: homeDir}
}

func (r *ScopeResolver) Global() Scope {
	return Scope{
		Type: ScopeGlobal,
		Path: r.homeDir,
		Dir:  filepath.Join(r.homeDir, ScopeDirName),
	}
}

// Project finds the nearest .gitplug directory at or above the working directory.
func (r *ScopeResolver) Project() (Scope, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return Scope{}, false
	}
	return r.findProjectScope(cwd)
}

// Local is the project scope rooted at the working directory, whether or not
// it exists yet.
func (r *ScopeResolver) Local() Scope {
	cwd, _ := os.Getwd()
	return Scope{Type: ScopeProject, Path: cwd, Dir: filepath.Join(cwd, ScopeDirName)}
}

func (r *ScopeResolver) findProjectScope(dir string) (Scope, bool) {
	for {
		scopeDir := filepath.Join(dir, ScopeDirName)
		info, err := os.Stat(scopeDir)
		if err == nil && info.IsDir() && scopeDir != r.Global().Dir {
			return Scope{Type: ScopeProject, Path: dir, Dir: scopeDir}, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Scope{}, false
		}
		dir = parent
	}
}

func (r *ScopeResolver) Resolve(explicit string) Scope {
	switch ScopeType(explicit) {
	case ScopeGlobal:
		return r.Global()
	case ScopeProject:
		if scope, ok := r.Project(); ok {
			return scope
		}
		return r.Local()
	}

	if scope, ok := r.Project(); ok {
		return scope
	}
	return r.Global()
}
