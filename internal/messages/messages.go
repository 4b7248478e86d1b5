package messages

import (
	"github.com/cheerioskun/prfilter/internal/filter"
	"github.com/cheerioskun/prfilter/internal/trait"
)

// PatternsChangedMsg is sent when the inclusion or exclusion pattern is edited
type PatternsChangedMsg struct {
	Config          trait.Config          // Patterns as typed
	Filter          *filter.Configuration // Compiled filter, nil while a pattern is invalid
	SourceComponent string                // Which component sent this
}

// DecisionsUpdatedMsg is sent when every pull request has been re-evaluated
type DecisionsUpdatedMsg struct {
	Included int // Pull requests that would be built
	Excluded int // Pull requests pruned by the filter
}
