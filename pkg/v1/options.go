package v1

import "log/slog"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	repository string
	scope      string
	logger     *slog.Logger
	username   string
	token      string
}

// WithRepository opens the repository at path when the client is created.
func WithRepository(path string) Option {
	return func(c *clientConfig) {
		c.repository = path
	}
}

// WithScope forces a specific config scope (global or project).
func WithScope(scope string) Option {
	return func(c *clientConfig) {
		c.scope = scope
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithCredentials sets the HTTP(S) credentials used by Pull and Push instead
// of GIT_USER / GIT_PAT and the config file.
func WithCredentials(username, token string) Option {
	return func(c *clientConfig) {
		c.username = username
		c.token = token
	}
}
