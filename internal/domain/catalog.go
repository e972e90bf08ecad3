package domain

import "strings"

// CatalogEntity is a selectable item supplied by a catalog provider. Only ID
// matters to the planning flow; everything else is display payload.
type CatalogEntity struct {
	ID      string            `json:"id"`
	Kind    EntityKind        `json:"kind"`
	Name    string            `json:"name"`
	Country string            `json:"country,omitempty"`
	City    string            `json:"city,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// AvailableIn reports whether the entity is offered in country. Entities with
// no country apply everywhere, and an empty country matches everything.
func (e CatalogEntity) AvailableIn(country string) bool {
	if country == "" || e.Country == "" {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(e.Country), strings.TrimSpace(country))
}

// FindEntity returns the entity with the given id from list.
func FindEntity(list []CatalogEntity, id string) (CatalogEntity, bool) {
	for _, e := range list {
		if e.ID == id {
			return e, true
		}
	}
	return CatalogEntity{}, false
}
