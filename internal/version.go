package internal

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"golang.org/x/mod/semver"
)

const (
	DefaultVersionFile = "version.json"
	DefaultVersion     = "0.0.0"
)

type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// ParseVersion reads the first three dot-separated integers of s. Extra
// components are tolerated and dropped.
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 3 {
		return Version{}, fmt.Errorf("%w: %q has fewer than three components", ErrFormat, s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Version{}, fmt.Errorf("%w: component %d of %q is not numeric", ErrFormat, i+1, s)
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// ValidateVersion accepts only a plain MAJOR.MINOR.PATCH triple: no "v"
// prefix, prerelease, build metadata or leading zeros.
func ValidateVersion(s string) error {
	v := "v" + s
	if !semver.IsValid(v) || semver.Canonical(v) != v || semver.Prerelease(v) != "" {
		return fmt.Errorf("%w: %q is not MAJOR.MINOR.PATCH", ErrFormat, s)
	}
	return nil
}

// VersionStore keeps a version string as the whole content of a file.
type VersionStore struct {
	fs   billy.Filesystem
	path string
}

func NewVersionStore(fs billy.Filesystem, path string) *VersionStore {
	if path == "" {
		path = DefaultVersionFile
	}
	return &VersionStore{fs: fs, path: path}
}

func (s *VersionStore) Path() string {
	return s.path
}

func (s *VersionStore) Ensure() error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	_, err := s.fs.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat version file: %w", err)
	}

	return s.write(DefaultVersion)
}

func (s *VersionStore) Current() (string, error) {
	if err := s.Ensure(); err != nil {
		return "", err
	}
	return s.Stored()
}

// Stored reads the version file without creating it.
func (s *VersionStore) Stored() (string, error) {
	data, err := util.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: version file %s", ErrNotFound, s.path)
	}
	if err != nil {
		return "", fmt.Errorf("read version file: %w", err)
	}
	return string(data), nil
}

func (s *VersionStore) BumpPatch() (string, error) {
	current, err := s.Current()
	if err != nil {
		return "", err
	}

	v, err := ParseVersion(current)
	if err != nil {
		return "", err
	}
	if v.Patch == math.MaxInt {
		return "", fmt.Errorf("%w: patch component of %q cannot be incremented", ErrFormat, current)
	}
	v.Patch++

	next := v.String()
	if err := s.write(next); err != nil {
		return "", err
	}
	return next, nil
}

func (s *VersionStore) Set(version string) error {
	if err := ValidateVersion(version); err != nil {
		return err
	}
	if err := s.ensureDir(); err != nil {
		return err
	}
	return s.write(version)
}

func (s *VersionStore) ensureDir() error {
	dir := filepath.Dir(s.path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create version directory: %w", err)
	}
	return nil
}

func (s *VersionStore) write(version string) error {
	if err := util.WriteFile(s.fs, s.path, []byte(version), 0644); err != nil {
		return fmt.Errorf("write version file: %w", err)
	}
	return nil
}
