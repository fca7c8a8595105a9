// Package github builds authenticated go-github clients for the files
// adapter in apps/server/internal/files/adapters/github.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gogithub "github.com/google/go-github/v75/github"
	"golang.org/x/oauth2"
)

const (
	defaultAPIURL = "https://api.github.com"
	userAgent     = "linkdesk"
)

// Auth selects how the client authenticates. A GitHub App installation wins
// over a token when both are configured.
type Auth struct {
	Token          string
	AppID          int64
	InstallationID int64
	PrivateKeyPath string
	// BaseURL is the API root. Empty means the public GitHub API; point it at
	// apps/mock-github for local development.
	BaseURL string
}

// NewClient returns a client for the configured authentication mode.
func NewClient(a Auth) (*gogithub.Client, error) {
	if a.AppID != 0 || a.InstallationID != 0 || a.PrivateKeyPath != "" {
		if a.AppID == 0 || a.InstallationID == 0 || a.PrivateKeyPath == "" {
			return nil, errors.New("github app auth needs app ID, installation ID and private key path")
		}
		return NewAppClient(a.AppID, a.InstallationID, a.PrivateKeyPath, a.BaseURL)
	}
	if a.Token == "" {
		return nil, errors.New("github auth: set a token or GitHub App credentials")
	}
	return NewTokenClient(a.Token, a.BaseURL), nil
}

// NewTokenClient creates a *github.Client that sends token as a bearer
// credential. Pass baseURL="" to use the real GitHub API.
func NewTokenClient(token, baseURL string) *gogithub.Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	c := gogithub.NewClient(httpClient)
	c.UserAgent = userAgent
	applyBaseURL(c, baseURL)
	return c
}

// NewAppClient creates a *github.Client authenticated as a GitHub App
// installation. privateKeyPath is the path to the app's PEM private key.
func NewAppClient(appID, installationID int64, privateKeyPath, baseURL string) (*gogithub.Client, error) {
	tr, err := ghinstallation.NewKeyFromFile(http.DefaultTransport, appID, installationID, privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("github app auth: %w", err)
	}
	if baseURL != "" {
		tr.BaseURL = strings.TrimSuffix(baseURL, "/")
	} else {
		tr.BaseURL = defaultAPIURL
	}

	c := gogithub.NewClient(&http.Client{Transport: tr})
	c.UserAgent = userAgent
	applyBaseURL(c, baseURL)
	return c, nil
}

// SplitRepo parses "owner/repo".
func SplitRepo(full string) (owner, repo string, err error) {
	parts := strings.SplitN(strings.TrimSpace(full), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" || strings.Contains(parts[1], "/") {
		return "", "", fmt.Errorf("invalid repository %q: expected owner/repo", full)
	}
	return parts[0], parts[1], nil
}

func applyBaseURL(c *gogithub.Client, baseURL string) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" || baseURL == defaultAPIURL {
		return
	}
	u, err := url.Parse(baseURL + "/")
	if err != nil {
		return
	}
	c.BaseURL = u
}
