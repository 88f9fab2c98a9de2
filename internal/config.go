package internal

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type GitConfig struct {
	Remote      string `yaml:"remote,omitempty" toml:"remote"`
	Username    string `yaml:"username,omitempty" toml:"username"`
	Token       string `yaml:"token,omitempty" toml:"token"`
	AuthorName  string `yaml:"author_name,omitempty" toml:"author_name"`
	AuthorEmail string `yaml:"author_email,omitempty" toml:"author_email"`
	GitHubAPI   string `yaml:"github_api,omitempty" toml:"github_api"`
}

type VersionConfig struct {
	File string `yaml:"file" toml:"file"`
}

type LogConfig struct {
	Level      string `yaml:"level" toml:"level"`
	File       string `yaml:"file,omitempty" toml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
}

type ProviderConfig struct {
	Type    string `yaml:"type,omitempty" toml:"type"`
	APIKey  string `yaml:"api_key,omitempty" toml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty" toml:"base_url"`
	Model   string `yaml:"model" toml:"model"`
}

type Config struct {
	Git             GitConfig                 `yaml:"git" toml:"git"`
	Version         VersionConfig             `yaml:"version" toml:"version"`
	Log             LogConfig                 `yaml:"log" toml:"log"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty" toml:"providers"`
	DefaultProvider string                    `yaml:"default_provider,omitempty" toml:"default_provider"`
}

func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			Remote:      DefaultRemote,
			AuthorName:  DefaultAuthorName,
			AuthorEmail: DefaultAuthorEmail,
		},
		Version: VersionConfig{
			File: DefaultVersionFile,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  1,
			MaxBackups: 2,
		},
		Providers: make(map[string]ProviderConfig),
	}
}

// LoadConfig reads config.yaml from the scope, falling back to config.toml,
// then to defaults. Fields left out of the file keep their defaults.
func LoadConfig(scope Scope) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(scope.ConfigPath())
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if _, err := toml.DecodeFile(scope.TOMLConfigPath(), cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg.fillDefaults()
	return cfg, nil
}

func SaveConfig(scope Scope, cfg *Config) error {
	if err := os.MkdirAll(scope.Dir, 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// may hold tokens and API keys
	if err := os.WriteFile(scope.ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Git.Remote == "" {
		c.Git.Remote = def.Git.Remote
	}
	if c.Git.AuthorName == "" {
		c.Git.AuthorName = def.Git.AuthorName
	}
	if c.Git.AuthorEmail == "" {
		c.Git.AuthorEmail = def.Git.AuthorEmail
	}
	if c.Version.File == "" {
		c.Version.File = def.Version.File
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Providers == nil {
		c.Providers = make(map[string]ProviderConfig)
	}
}
