package internal

import (
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

const IgnoreFilename = ".gitignore"

// IgnoreMatcher answers whether a working tree path is ignored by the
// repository's .gitignore files. The .git and .gitplug directories are
// always ignored.
type IgnoreMatcher struct {
	matcher  gitignore.Matcher
	basePath string
}

func NewIgnoreMatcher(fs billy.Filesystem) (*IgnoreMatcher, error) {
	patterns, err := gitignore.ReadPatterns(fs, nil)
	if err != nil {
		return nil, err
	}
	patterns = append(patterns,
		gitignore.ParsePattern(".git", nil),
		gitignore.ParsePattern(ScopeDirName, nil),
	)

	return &IgnoreMatcher{
		matcher:  gitignore.NewMatcher(patterns),
		basePath: fs.Root(),
	}, nil
}

// Match takes an absolute path or one relative to the working tree root.
func (m *IgnoreMatcher) Match(path string) bool {
	return m.match(path, false)
}

func (m *IgnoreMatcher) MatchDir(path string) bool {
	return m.match(path, true)
}

func (m *IgnoreMatcher) match(path string, isDir bool) bool {
	relPath := path
	if filepath.IsAbs(path) {
		rel, err := filepath.Rel(m.basePath, path)
		if err != nil {
			return false
		}
		relPath = rel
	}
	if relPath == "." || strings.HasPrefix(relPath, "..") {
		return false
	}

	parts := strings.Split(filepath.ToSlash(relPath), "/")
	return m.matcher.Match(parts, isDir)
}
