// Package github discovers open pull requests and their changed files
// through the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/go-github/v68/github"

	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/cheerioskun/prfilter/internal/utils"
)

const defaultPageSize = 100

// NewClient returns a GitHub API client. An empty token makes anonymous
// requests; a non-empty baseURL points the client at GitHub Enterprise.
func NewClient(httpClient *http.Client, token, baseURL string) (*github.Client, error) {
	client := github.NewClient(httpClient)
	if token != "" {
		client = client.WithAuthToken(token)
	}

	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL: %w", err)
		}
		client.BaseURL = u
	}

	return client, nil
}

// Request is one discovery pass over the open pull requests of a repository.
// The pull request list is fetched once and reused for every head.
type Request struct {
	client   *github.Client
	owner    string
	repo     string
	listener io.Writer
	pageSize int

	mu           sync.Mutex
	pullRequests []*models.PullRequest
}

// OptFunc enables specifying options for the request.
type OptFunc func(*Request)

// WithOutput sets where console lines are written.
func WithOutput(w io.Writer) OptFunc {
	return func(r *Request) {
		r.listener = w
	}
}

// WithPageSize sets the page size for list calls.
func WithPageSize(n int) OptFunc {
	return func(r *Request) {
		r.pageSize = n
	}
}

// NewRequest returns a request for owner/repo.
func NewRequest(client *github.Client, owner, repo string, opts ...OptFunc) (*Request, error) {
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("repository owner and name must be provided, got %q/%q", owner, repo)
	}

	r := &Request{
		client:   client,
		owner:    owner,
		repo:     repo,
		listener: io.Discard,
		pageSize: defaultPageSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Repository returns "owner/repo".
func (r *Request) Repository() string {
	return r.owner + "/" + r.repo
}

// Listener implements trait.Request.
func (r *Request) Listener() io.Writer {
	return r.listener
}

// PullRequests returns the open pull requests, following pagination.
func (r *Request) PullRequests(ctx context.Context) ([]*models.PullRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pullRequests != nil {
		return r.pullRequests, nil
	}

	opts := &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: r.pageSize},
	}

	result := make([]*models.PullRequest, 0)
	for {
		page, resp, err := r.client.PullRequests.List(ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull requests of %s: %w", r.Repository(), err)
		}

		for _, pr := range page {
			result = append(result, &models.PullRequest{
				Number: pr.GetNumber(),
				Title:  pr.GetTitle(),
				URL:    pr.GetHTMLURL(),
				Target: pr.GetBase().GetRef(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	utils.Debug("found %d open pull requests in %s", len(result), r.Repository())
	r.pullRequests = result
	return result, nil
}

// ListFiles returns the files changed by pull request number, following pagination.
func (r *Request) ListFiles(ctx context.Context, number int) ([]models.ChangedFile, error) {
	opts := &github.ListOptions{PerPage: r.pageSize}

	files := make([]models.ChangedFile, 0)
	for {
		page, resp, err := r.client.PullRequests.ListFiles(ctx, r.owner, r.repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list files of pull request #%d: %w", number, err)
		}

		for _, f := range page {
			files = append(files, models.ChangedFile{
				Filename:         f.GetFilename(),
				PreviousFilename: f.GetPreviousFilename(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// Heads returns one head per open pull request.
func (r *Request) Heads(ctx context.Context) ([]models.Head, error) {
	prs, err := r.PullRequests(ctx)
	if err != nil {
		return nil, err
	}

	heads := make([]models.Head, 0, len(prs))
	for _, pr := range prs {
		heads = append(heads, pr.Head())
	}
	return heads, nil
}
