package models

import "time"

// DecisionReport represents the result of one discovery pass
type DecisionReport struct {
	Criteria  FilterCriteria `json:"criteria"`   // Patterns the heads were filtered with
	Decisions []HeadDecision `json:"decisions"`  // One entry per evaluated head
	Included  int            `json:"included"`   // Heads kept as buildable
	Excluded  int            `json:"excluded"`   // Heads pruned by the filter
	Failed    int            `json:"failed"`     // Heads whose evaluation errored
	CreatedAt time.Time      `json:"created_at"` // When the pass finished
}

// FilterCriteria represents the patterns used to create a DecisionReport
type FilterCriteria struct {
	Inclusion string `json:"inclusion"` // Inclusion pattern
	Exclusion string `json:"exclusion"` // Exclusion pattern, empty when unset
	Source    string `json:"source"`    // Where pull requests were discovered
}

// HeadDecision is the filter outcome for a single head
type HeadDecision struct {
	Head     string       `json:"head"`             // Head name, e.g. PR-12
	Category HeadCategory `json:"category"`         // Head category
	Excluded bool         `json:"excluded"`         // Whether the head was pruned
	Output   string       `json:"output,omitempty"` // Console lines written while deciding
	Error    string       `json:"error,omitempty"`  // Evaluation error, if any
}

// NewDecisionReport creates an empty report for the given criteria
func NewDecisionReport(criteria FilterCriteria) *DecisionReport {
	return &DecisionReport{
		Criteria:  criteria,
		Decisions: make([]HeadDecision, 0),
	}
}

// AddDecision appends a decision and updates the counters
func (r *DecisionReport) AddDecision(d HeadDecision) {
	r.Decisions = append(r.Decisions, d)
	switch {
	case d.Error != "":
		r.Failed++
	case d.Excluded:
		r.Excluded++
	default:
		r.Included++
	}
}

// IncludedHeads returns the names of the heads that were kept
func (r *DecisionReport) IncludedHeads() []string {
	heads := make([]string, 0, r.Included)
	for _, d := range r.Decisions {
		if !d.Excluded && d.Error == "" {
			heads = append(heads, d.Head)
		}
	}
	return heads
}

// Finish stamps the report
func (r *DecisionReport) Finish() {
	r.CreatedAt = time.Now()
}

// IsEmpty returns true if no heads were evaluated
func (r *DecisionReport) IsEmpty() bool {
	return len(r.Decisions) == 0
}
