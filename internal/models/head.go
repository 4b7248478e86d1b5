package models

import "fmt"

// HeadCategory groups discovered heads the way the host presents them
type HeadCategory int

const (
	UncategorizedCategory HeadCategory = iota
	BranchCategory
	ChangeRequestCategory
	TagCategory
)

// String returns a human-readable representation of the category
func (c HeadCategory) String() string {
	switch c {
	case BranchCategory:
		return "Branches"
	case ChangeRequestCategory:
		return "Pull Requests"
	case TagCategory:
		return "Tags"
	default:
		return "Uncategorized"
	}
}

// Head is a named, buildable unit of source discovered from a repository.
// The set of variants is closed: Branch, PullRequestHead and Tag.
type Head interface {
	Name() string
	Category() HeadCategory
	isHead()
}

// Branch is a branch head
type Branch struct {
	BranchName string `json:"branch"`
}

func (b Branch) Name() string           { return b.BranchName }
func (b Branch) Category() HeadCategory { return BranchCategory }
func (Branch) isHead()                  {}

// Tag is a tag head
type Tag struct {
	TagName string `json:"tag"`
}

func (t Tag) Name() string           { return t.TagName }
func (t Tag) Category() HeadCategory { return TagCategory }
func (Tag) isHead()                  {}

// PullRequestHead is the head of an open pull request
type PullRequestHead struct {
	Number int    `json:"number"`
	Target string `json:"target,omitempty"`
}

func (h PullRequestHead) Name() string           { return fmt.Sprintf("PR-%d", h.Number) }
func (h PullRequestHead) Category() HeadCategory { return ChangeRequestCategory }
func (PullRequestHead) isHead()                  {}
