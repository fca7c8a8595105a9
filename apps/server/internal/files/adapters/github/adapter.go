// Package github implements files.ContentStore on the GitHub Contents API
// using the official go-github library. Wire it up with an authenticated
// *github.Client from apps/server/internal/platform/github.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gogithub "github.com/google/go-github/v75/github"

	"github.com/tilsley/linkdesk/apps/server/internal/files"
)

// Compile-time check: *Adapter implements files.ContentStore.
var _ files.ContentStore = (*Adapter)(nil)

// Adapter wraps a go-github client bound to a single repository and,
// optionally, a single branch.
type Adapter struct {
	gh     *gogithub.Client
	owner  string
	repo   string
	branch string // empty means the repository's default branch
}

// New creates an Adapter for owner/repo from an authenticated *github.Client.
func New(gh *gogithub.Client, owner, repo, branch string) *Adapter {
	return &Adapter{gh: gh, owner: owner, repo: repo, branch: branch}
}

// GetFile fetches a single file and returns its decoded content and blob SHA.
func (a *Adapter) GetFile(ctx context.Context, path string) (*files.FileContent, error) {
	var opts *gogithub.RepositoryContentGetOptions
	if a.branch != "" {
		opts = &gogithub.RepositoryContentGetOptions{Ref: a.branch}
	}

	fc, _, _, err := a.gh.Repositories.GetContents(ctx, a.owner, a.repo, path, opts)
	if err != nil {
		return nil, a.readError(path, err)
	}
	if fc == nil {
		return nil, fmt.Errorf("path %s is a directory, not a file", path)
	}

	// GetContent undoes the API's base64 transport encoding.
	content, err := fc.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode content %s: %w", path, err)
	}
	return &files.FileContent{Path: path, Content: content, SHA: fc.GetSHA()}, nil
}

// UpdateFile overwrites path in a single commit. The content is sent base64
// encoded (go-github marshals the []byte field that way) together with the
// blob SHA being replaced.
func (a *Adapter) UpdateFile(ctx context.Context, path string, req files.UpdateRequest) (*files.FileContent, error) {
	opts := &gogithub.RepositoryContentFileOptions{
		Message: gogithub.Ptr(req.Message),
		Content: []byte(req.Content),
	}
	if req.SHA != "" {
		opts.SHA = gogithub.Ptr(req.SHA)
	}
	if a.branch != "" {
		opts.Branch = gogithub.Ptr(a.branch)
	}

	res, _, err := a.gh.Repositories.UpdateFile(ctx, a.owner, a.repo, path, opts)
	if err != nil {
		// A 404 here means the repository or branch is unreachable with this
		// token, not that the file is missing: PUT creates missing files.
		var apiErr *gogithub.ErrorResponse
		if errors.As(err, &apiErr) {
			return nil, files.UpstreamError{StatusCode: statusOf(apiErr), Message: apiErr.Message}
		}
		return nil, fmt.Errorf("%s/%s/%s: %w", a.owner, a.repo, path, err)
	}

	out := &files.FileContent{Path: path, Content: req.Content}
	if res != nil && res.Content != nil {
		out.SHA = res.Content.GetSHA()
	}
	return out, nil
}

// readError maps GetContents failures onto the files error types. Anything
// that is not an API answer (network, TLS, context) is wrapped unchanged.
func (a *Adapter) readError(path string, err error) error {
	var apiErr *gogithub.ErrorResponse
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("%s/%s/%s: %w", a.owner, a.repo, path, err)
	}

	status := statusOf(apiErr)
	if status == http.StatusNotFound {
		return files.FileNotFoundError{Path: path}
	}
	return files.UpstreamError{StatusCode: status, Message: apiErr.Message}
}

func statusOf(apiErr *gogithub.ErrorResponse) int {
	if apiErr.Response == nil {
		return 0
	}
	return apiErr.Response.StatusCode
}
