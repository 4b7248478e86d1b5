package trait

import (
	"context"

	"github.com/cheerioskun/prfilter/internal/models"
)

// Filterer is any head filter a source context can apply
type Filterer interface {
	IsExcluded(ctx context.Context, req Request, head models.Head) (bool, error)
}

// SourceContext collects the head filters contributed by configured traits
type SourceContext struct {
	filters []Filterer
}

// NewSourceContext creates a source context and lets each trait decorate it
func NewSourceContext(traits ...*Trait) *SourceContext {
	sc := &SourceContext{filters: make([]Filterer, 0, len(traits))}
	for _, t := range traits {
		t.DecorateContext(sc)
	}
	return sc
}

// WithFilter adds a head filter
func (sc *SourceContext) WithFilter(f Filterer) *SourceContext {
	sc.filters = append(sc.filters, f)
	return sc
}

// IsExcluded returns true as soon as one filter excludes the head
func (sc *SourceContext) IsExcluded(ctx context.Context, req Request, head models.Head) (bool, error) {
	for _, f := range sc.filters {
		excluded, err := f.IsExcluded(ctx, req, head)
		if err != nil {
			return false, err
		}
		if excluded {
			return true, nil
		}
	}
	return false, nil
}
