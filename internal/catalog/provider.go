package catalog

import (
	"context"

	"github.com/alexanderramin/tripwise/internal/domain"
)

// Query narrows a catalog request. Empty fields do not filter.
type Query struct {
	DestinationCountry string
	StudyLevel         domain.StudyLevel
	StudyField         string
}

// QueryFor builds the query the flow issues for the current draft.
func QueryFor(d domain.PlanDraft) Query {
	return Query{
		DestinationCountry: d.DestinationCountry,
		StudyLevel:         d.StudyLevel,
		StudyField:         d.StudyField,
	}
}

// Response mirrors the provider envelope. A nil Data means the provider sent
// no list at all, which is distinct from an empty one.
type Response struct {
	Success bool
	Data    []domain.CatalogEntity
}

// Provider fetches catalog entities. Implementations may fail at any time.
type Provider interface {
	Fetch(ctx context.Context, kind domain.EntityKind, q Query) (*Response, error)
}
