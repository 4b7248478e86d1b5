package filter

import (
	"errors"
	"fmt"
)

// ErrInvalidRegex indicates a pattern that does not compile.
var ErrInvalidRegex = errors.New("invalid regex")

// RegexError reports which pattern failed to compile and why.
type RegexError struct {
	Field   string // "inclusion" or "exclusion"
	Pattern string
	Err     error // diagnostic from regexp
}

func (e *RegexError) Error() string {
	return fmt.Sprintf("%s pattern %q: %v", e.Field, e.Pattern, e.Err)
}

// Diagnostic returns the regex engine's own message.
func (e *RegexError) Diagnostic() string {
	return e.Err.Error()
}

func (e *RegexError) Unwrap() []error {
	return []error{ErrInvalidRegex, e.Err}
}
