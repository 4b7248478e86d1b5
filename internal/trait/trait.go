// Package trait adapts the path filter to the discovery host: it decides
// which pull request heads survive a discovery pass.
package trait

import (
	"context"
	"fmt"
	"io"

	"github.com/cheerioskun/prfilter/internal/filter"
	"github.com/cheerioskun/prfilter/internal/models"
	"github.com/cheerioskun/prfilter/internal/utils"
)

// Config is the user-facing trait configuration
type Config struct {
	Inclusion string `mapstructure:"inclusion" yaml:"inclusion" json:"inclusion"`
	Exclusion string `mapstructure:"exclusion" yaml:"exclusion,omitempty" json:"exclusion,omitempty"`
}

// DefaultConfig returns a configuration that keeps every pull request
func DefaultConfig() Config {
	return Config{Inclusion: filter.MatchAll}
}

// Request is one discovery pass as seen by a head filter
type Request interface {
	// Listener receives the console lines written while deciding.
	Listener() io.Writer
}

// PullRequestLister is implemented by requests against a service that
// hosts pull requests
type PullRequestLister interface {
	Request
	PullRequests(ctx context.Context) ([]*models.PullRequest, error)
	ListFiles(ctx context.Context, number int) ([]models.ChangedFile, error)
}

// Trait includes discovered pull requests by the paths of their changed files
type Trait struct {
	config Config
	filter *filter.Configuration
}

// New compiles the configured patterns into a trait
func New(cfg Config) (*Trait, error) {
	f, err := filter.Build(cfg.Inclusion, cfg.Exclusion)
	if err != nil {
		return nil, fmt.Errorf("failed to build path filter: %w", err)
	}

	return &Trait{config: cfg, filter: f}, nil
}

// Config returns the configuration the trait was built from
func (t *Trait) Config() Config {
	return t.config
}

// Filter returns the compiled path filter
func (t *Trait) Filter() *filter.Configuration {
	return t.filter
}

// IncludeCategory returns true only for pull request heads; every other
// category passes through this trait untouched.
func (t *Trait) IncludeCategory(category models.HeadCategory) bool {
	return category == models.ChangeRequestCategory
}

// DecorateContext registers the trait's head filter with a source context
func (t *Trait) DecorateContext(sc *SourceContext) {
	sc.WithFilter(t.HeadFilter())
}

// HeadFilter returns the head filter backed by this trait
func (t *Trait) HeadFilter() *HeadFilter {
	return &HeadFilter{trait: t}
}

// HeadFilter prunes pull request heads whose changed files do not match
type HeadFilter struct {
	trait *Trait
}

// IsExcluded decides whether head is dropped from the request's heads.
// Heads that are not pull requests, and requests that cannot list pull
// requests, are never excluded.
func (hf *HeadFilter) IsExcluded(ctx context.Context, req Request, head models.Head) (bool, error) {
	prHead, ok := head.(models.PullRequestHead)
	if !ok {
		return false, nil
	}
	lister, ok := req.(PullRequestLister)
	if !ok {
		return false, nil
	}

	cfg := hf.trait.config
	if cfg.Inclusion == filter.MatchAll && cfg.Exclusion == "" {
		// Nothing to filter on, skip listing files.
		return false, nil
	}

	pullRequests, err := lister.PullRequests(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list pull requests: %w", err)
	}

	for _, pr := range pullRequests {
		if pr.Number != prHead.Number {
			continue
		}

		files, err := lister.ListFiles(ctx, pr.Number)
		if err != nil {
			return false, fmt.Errorf("failed to list files of PR %s: %w", pr.Ref(), err)
		}

		excluded := hf.trait.filter.Evaluate(pr.Number, files, req.Listener())
		utils.Debug("PR %s: %d changed files, excluded=%t", pr.Ref(), len(files), excluded)
		return excluded, nil
	}

	utils.Debug("PR #%d is not among the open pull requests, excluding", prHead.Number)
	return true, nil
}
