package internal

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"
)

// NewGitHubClient builds a token-authenticated client. An empty apiURL
// targets github.com; anything else is used as the REST base URL.
func NewGitHubClient(ctx context.Context, apiURL, token string) (*github.Client, error) {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	if apiURL != "" {
		if !strings.HasSuffix(apiURL, "/") {
			apiURL += "/"
		}
		baseURL, err := url.Parse(apiURL)
		if err != nil {
			return nil, fmt.Errorf("parse github api url %s: %w", apiURL, err)
		}
		client.BaseURL = baseURL
	}

	return client, nil
}

func ResolveGitHubLogin(ctx context.Context, apiURL, token string) (string, error) {
	client, err := NewGitHubClient(ctx, apiURL, token)
	if err != nil {
		return "", err
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("get authenticated user: %w", err)
	}

	login := user.GetLogin()
	if login == "" {
		return "", fmt.Errorf("github returned an empty login")
	}
	return login, nil
}
