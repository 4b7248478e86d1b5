package models

import "fmt"

// ChangedFile is one file touched by a pull request
type ChangedFile struct {
	Filename         string `json:"filename" yaml:"filename"`                                       // Current path
	PreviousFilename string `json:"previous_filename,omitempty" yaml:"previous_filename,omitempty"` // Source path, set only for renames
}

// IsRename returns true if the file was moved from a different path
func (cf ChangedFile) IsRename() bool {
	return cf.PreviousFilename != "" && cf.PreviousFilename != cf.Filename
}

// PullRequest represents an open pull request and the files it changes
type PullRequest struct {
	Number int           `json:"number" yaml:"number"`      // Pull request number
	Title  string        `json:"title" yaml:"title"`        // Pull request title
	URL    string        `json:"url" yaml:"url"`            // HTML URL on the hosting service
	Target string        `json:"target" yaml:"target"`      // Base branch the PR merges into
	Files  []ChangedFile `json:"files" yaml:"files"`        // Changed files, in the order the host lists them
	Source string        `json:"source,omitempty" yaml:"-"` // Manifest the PR was loaded from, if any
}

// Head returns the discovery head for this pull request
func (pr *PullRequest) Head() PullRequestHead {
	return PullRequestHead{Number: pr.Number, Target: pr.Target}
}

// Ref returns the short "#<number>" reference used in console output
func (pr *PullRequest) Ref() string {
	return fmt.Sprintf("#%d", pr.Number)
}

// GetFilenames returns every current and previous filename touched by the PR
func (pr *PullRequest) GetFilenames() []string {
	names := make([]string, 0, len(pr.Files))
	for _, file := range pr.Files {
		if file.Filename != "" {
			names = append(names, file.Filename)
		}
		if file.IsRename() {
			names = append(names, file.PreviousFilename)
		}
	}
	return names
}
