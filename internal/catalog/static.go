package catalog

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tripwise/internal/domain"
)

func institution(id, name, country, city, tuition, language string) domain.CatalogEntity {
	return domain.CatalogEntity{
		ID:      id,
		Kind:    domain.EntityInstitution,
		Name:    name,
		Country: country,
		City:    city,
		Details: map[string]string{"tuition": tuition, "language": language},
	}
}

func accommodation(id, name, priceRange string) domain.CatalogEntity {
	return domain.CatalogEntity{
		ID:      id,
		Kind:    domain.EntityAccommodation,
		Name:    name,
		Details: map[string]string{"priceRange": priceRange},
	}
}

var staticInstitutions = []domain.CatalogEntity{
	institution("1", "Sorbonne University", "France", "Paris", "€170-€380 / year", "French"),
	institution("2", "Sciences Po", "France", "Paris", "€0-€14,000 / year", "French, English"),
	institution("3", "Université de Lyon", "France", "Lyon", "€170-€380 / year", "French"),
	institution("4", "Technical University of Munich", "Germany", "Munich", "€2,000-€6,000 / semester", "German, English"),
	institution("5", "Heidelberg University", "Germany", "Heidelberg", "€1,500 / semester", "German"),
	institution("6", "Humboldt University of Berlin", "Germany", "Berlin", "€315 / semester", "German"),
	institution("7", "RWTH Aachen University", "Germany", "Aachen", "€300 / semester", "German, English"),
	institution("8", "University of Toronto", "Canada", "Toronto", "CA$45,000-CA$60,000 / year", "English"),
	institution("9", "McGill University", "Canada", "Montreal", "CA$25,000-CA$50,000 / year", "English, French"),
	institution("10", "University of Manchester", "United Kingdom", "Manchester", "£24,000-£31,000 / year", "English"),
	institution("11", "King's College London", "United Kingdom", "London", "£26,000-£35,000 / year", "English"),
	institution("12", "University of Barcelona", "Spain", "Barcelona", "€1,000-€3,000 / year", "Spanish, Catalan"),
}

var staticAccommodations = []domain.CatalogEntity{
	accommodation("dorm", "University dormitory", "€250-€500 / month"),
	accommodation("shared", "Shared apartment", "€400-€800 / month"),
	accommodation("studio", "Private studio", "€700-€1,400 / month"),
	accommodation("homestay", "Homestay with a host family", "€500-€900 / month"),
}

// StaticList returns the built-in list for kind filtered to the destination
// country. The returned entities are copies.
func StaticList(kind domain.EntityKind, q Query) ([]domain.CatalogEntity, error) {
	var src []domain.CatalogEntity
	switch kind {
	case domain.EntityInstitution:
		src = staticInstitutions
	case domain.EntityAccommodation:
		src = staticAccommodations
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	out := make([]domain.CatalogEntity, 0, len(src))
	for _, e := range src {
		if !e.AvailableIn(q.DestinationCountry) {
			continue
		}
		c := e
		c.Details = make(map[string]string, len(e.Details))
		for k, v := range e.Details {
			c.Details[k] = v
		}
		out = append(out, c)
	}
	return out, nil
}

// StaticProvider serves the built-in lists. It never fails for known kinds.
type StaticProvider struct{}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{}
}

func (StaticProvider) Fetch(_ context.Context, kind domain.EntityKind, q Query) (*Response, error) {
	list, err := StaticList(kind, q)
	if err != nil {
		return nil, err
	}
	return &Response{Success: true, Data: list}, nil
}
