package internal

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
)

const (
	EnvGitUser  = "GIT_USER"
	EnvGitToken = "GIT_PAT"
)

const githubHost = "github.com"

type Credentials struct {
	Username string
	Password string
}

type CredentialProvider interface {
	Credentials(ctx context.Context, remoteURL string) (Credentials, error)
}

var _ CredentialProvider = (*EnvCredentialProvider)(nil)

// EnvCredentialProvider reads GIT_USER / GIT_PAT, then the git section of the
// config. A missing username is looked up through the GitHub API for GitHub
// remotes.
type EnvCredentialProvider struct {
	cfg          GitConfig
	lookupEnv    func(string) (string, bool)
	resolveLogin func(ctx context.Context, apiURL, token string) (string, error)
}

func NewCredentialProvider(cfg GitConfig) *EnvCredentialProvider {
	return &EnvCredentialProvider{
		cfg:          cfg,
		lookupEnv:    os.LookupEnv,
		resolveLogin: ResolveGitHubLogin,
	}
}

func (p *EnvCredentialProvider) Credentials(ctx context.Context, remoteURL string) (Credentials, error) {
	token := p.value(EnvGitToken, p.cfg.Token)
	if token == "" {
		return Credentials{}, fmt.Errorf("%w: set %s or git.token", ErrMissingCredentials, EnvGitToken)
	}

	username := p.value(EnvGitUser, p.cfg.Username)
	if username != "" {
		return Credentials{Username: username, Password: token}, nil
	}

	apiURL, ok := p.githubAPI(remoteURL)
	if !ok {
		return Credentials{}, fmt.Errorf("%w: set %s or git.username", ErrMissingCredentials, EnvGitUser)
	}

	login, err := p.resolveLogin(ctx, apiURL, token)
	if err != nil {
		return Credentials{}, fmt.Errorf("resolve github login: %w", err)
	}

	return Credentials{Username: login, Password: token}, nil
}

func (p *EnvCredentialProvider) value(env, fallback string) string {
	if v, ok := p.lookupEnv(env); ok && v != "" {
		return v
	}
	return fallback
}

// githubAPI reports the API base URL to query for the remote; empty means
// the public github.com API.
func (p *EnvCredentialProvider) githubAPI(remoteURL string) (string, bool) {
	if p.cfg.GitHubAPI != "" {
		return p.cfg.GitHubAPI, true
	}

	ep, err := transport.NewEndpoint(remoteURL)
	if err != nil {
		return "", false
	}
	return "", ep.Host == githubHost
}

// AuthFor returns basic auth for HTTP(S) remotes and nil for everything else
// (local paths, file://, ssh), which go-git handles on its own.
func AuthFor(ctx context.Context, provider CredentialProvider, remoteURL string) (transport.AuthMethod, error) {
	ep, err := transport.NewEndpoint(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote url: %w", err)
	}
	if ep.Protocol != "http" && ep.Protocol != "https" {
		return nil, nil
	}

	creds, err := provider.Credentials(ctx, remoteURL)
	if err != nil {
		return nil, err
	}

	return &githttp.BasicAuth{
		Username: creds.Username,
		Password: creds.Password,
	}, nil
}
