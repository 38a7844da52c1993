package store

import (
	"strings"

	"github.com/cityinfohq/cityinfo-api/internal/domain"
)

// CityFilter narrows a city list query. Both fields are optional; blank
// values impose no constraint and both constraints combine with AND.
// Implementations must apply the filter before computing pagination counts.
type CityFilter struct {
	// Name matches case-insensitively against the exact city name after
	// trimming surrounding whitespace from the filter value.
	Name string

	// SearchQuery matches case-insensitively as a substring of the city name
	// or description.
	SearchQuery string
}

// Normalized returns a copy of the filter with surrounding whitespace
// stripped from both values.
func (f CityFilter) Normalized() CityFilter {
	return CityFilter{
		Name:        strings.TrimSpace(f.Name),
		SearchQuery: strings.TrimSpace(f.SearchQuery),
	}
}

// IsZero reports whether the normalized filter imposes no constraint.
func (f CityFilter) IsZero() bool {
	n := f.Normalized()
	return n.Name == "" && n.SearchQuery == ""
}

// Match reports whether the city satisfies the filter. This is the reference
// predicate; SQL-backed stores express the same semantics in their queries.
func (f CityFilter) Match(c *domain.City) bool {
	n := f.Normalized()

	if n.Name != "" && !strings.EqualFold(n.Name, c.Name) {
		return false
	}

	if n.SearchQuery != "" {
		q := strings.ToLower(n.SearchQuery)
		name := strings.ToLower(c.Name)
		desc := strings.ToLower(c.Description)
		if !strings.Contains(name, q) && !strings.Contains(desc, q) {
			return false
		}
	}

	return true
}
