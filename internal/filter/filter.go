// Package filter decides whether a pull request is worth building by
// matching its changed file paths against an inclusion and an exclusion
// regular expression.
package filter

import (
	"fmt"
	"io"
	"regexp"
	"regexp/syntax"

	"github.com/cheerioskun/prfilter/internal/models"
)

// MatchAll is the "match everything" pattern. As an inclusion it means no
// filter; as an exclusion it excludes every pull request.
const MatchAll = ".*"

// Configuration holds the compiled inclusion and exclusion patterns.
// It is immutable once built and safe for concurrent use.
type Configuration struct {
	inclusion string
	exclusion string

	include *regexp.Regexp
	exclude *regexp.Regexp // nil when no exclusion is configured
}

// Build compiles both patterns. Matching is case-insensitive and always
// against the whole path. An empty exclusion means nothing is excluded.
func Build(inclusion, exclusion string) (*Configuration, error) {
	include, err := compileField("inclusion", inclusion)
	if err != nil {
		return nil, err
	}

	c := &Configuration{
		inclusion: inclusion,
		exclusion: exclusion,
		include:   include,
	}

	if exclusion != "" {
		c.exclude, err = compileField("exclusion", exclusion)
		if err != nil {
			return nil, err
		}
	}

	return c, nil
}

func compileField(field, pattern string) (*regexp.Regexp, error) {
	re, err := compile(pattern)
	if err != nil {
		return nil, &RegexError{Field: field, Pattern: pattern, Err: err}
	}
	return re, nil
}

// compile anchors the parsed pattern at both ends of the text. The anchors
// go into the syntax tree so an unterminated \Q cannot quote them.
func compile(pattern string) (*regexp.Regexp, error) {
	re, err := syntax.Parse(pattern, syntax.Perl|syntax.FoldCase)
	if err != nil {
		return nil, err
	}
	anchored := &syntax.Regexp{
		Op:  syntax.OpConcat,
		Sub: []*syntax.Regexp{{Op: syntax.OpBeginText}, re, {Op: syntax.OpEndText}},
	}
	return regexp.Compile(anchored.String())
}

// Inclusion returns the inclusion pattern as configured.
func (c *Configuration) Inclusion() string {
	return c.inclusion
}

// Exclusion returns the exclusion pattern as configured, empty when unset.
func (c *Configuration) Exclusion() string {
	return c.exclusion
}

// ShouldInclude reports whether path satisfies the inclusion pattern.
func (c *Configuration) ShouldInclude(path string) bool {
	if path == "" {
		return false
	}
	if c.inclusion == MatchAll {
		return true
	}
	return c.include.MatchString(path)
}

// NotExcluded reports whether path escapes the exclusion pattern.
func (c *Configuration) NotExcluded(path string) bool {
	if path == "" || c.exclude == nil {
		return true
	}
	if c.exclusion == MatchAll {
		return false
	}
	return !c.exclude.MatchString(path)
}

// Matches reports whether path is included and not excluded.
func (c *Configuration) Matches(path string) bool {
	return c.ShouldInclude(path) && c.NotExcluded(path)
}

// Match is the file that made a pull request buildable.
type Match struct {
	Filename string
	Previous bool // matched on the rename source
}

// FirstMatch returns the first changed file that matches, checking the
// current filename before the previous one.
func (c *Configuration) FirstMatch(files []models.ChangedFile) (Match, bool) {
	for _, file := range files {
		if c.Matches(file.Filename) {
			return Match{Filename: file.Filename}, true
		}
		if c.Matches(file.PreviousFilename) {
			return Match{Filename: file.PreviousFilename, Previous: true}, true
		}
	}
	return Match{}, false
}

// Evaluate decides whether the pull request should be excluded. When a
// file matches, one line naming it is written to out and the walk stops.
// A pull request with no matching file, or no files at all, is excluded.
func (c *Configuration) Evaluate(number int, files []models.ChangedFile, out io.Writer) bool {
	m, ok := c.FirstMatch(files)
	if !ok {
		return true
	}
	if out != nil {
		fmt.Fprint(out, FormatMatch(number, m))
	}
	return false
}

// FormatMatch renders the console line announcing a buildable pull request.
func FormatMatch(number int, m Match) string {
	if m.Previous {
		return fmt.Sprintf("\n    Will Build PR #%d. Found matching (previous) file : %s\n", number, m.Filename)
	}
	return fmt.Sprintf("\n    Will Build PR #%d. Found matching file : %s\n", number, m.Filename)
}
