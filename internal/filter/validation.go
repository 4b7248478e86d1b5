package filter

import (
	"errors"
	"strings"
)

// Kind is the severity of a validation result
type Kind int

const (
	KindOK Kind = iota
	KindWarning
	KindError
)

// String returns a human-readable representation of the kind
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "OK"
	case KindWarning:
		return "Warning"
	case KindError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Validation is the outcome of checking a single pattern field
type Validation struct {
	Kind    Kind
	Message string
}

// Blocking returns true if the configuration must not be saved
func (v Validation) Blocking() bool {
	return v.Kind == KindError
}

func valid() Validation { return Validation{Kind: KindOK} }

func warning(msg string) Validation { return Validation{Kind: KindWarning, Message: msg} }

func invalid(msg string) Validation { return Validation{Kind: KindError, Message: msg} }

func invalidMessage(err error) string {
	var re *RegexError
	if errors.As(err, &re) {
		return "Invalid Regex : " + re.Diagnostic()
	}
	return "Invalid Regex : " + err.Error()
}

// CheckInclusion validates an inclusion pattern as typed by a user.
// A blank pattern is an error; the match-all pattern is redundant.
func CheckInclusion(value string) Validation {
	if strings.TrimSpace(value) == "" {
		return invalid("Cannot have empty or blank regex.")
	}
	if _, err := compileField("inclusion", value); err != nil {
		return invalid(invalidMessage(err))
	}
	if value == MatchAll {
		return warning("You should remove this trait instead of matching all paths")
	}
	return valid()
}

// CheckExclusion validates an exclusion pattern. Blank means exclude nothing.
func CheckExclusion(value string) Validation {
	if value == "" {
		return valid()
	}
	if strings.TrimSpace(value) == "" {
		return warning("Blank exclusion regex only matches whitespace paths; leave it empty to exclude nothing")
	}
	if _, err := compileField("exclusion", value); err != nil {
		return invalid(invalidMessage(err))
	}
	if value == MatchAll {
		return warning("This will exclude all pull requests")
	}
	return valid()
}

// Check validates both patterns and returns the results keyed by field name.
func Check(inclusion, exclusion string) map[string]Validation {
	return map[string]Validation{
		"inclusion": CheckInclusion(inclusion),
		"exclusion": CheckExclusion(exclusion),
	}
}
